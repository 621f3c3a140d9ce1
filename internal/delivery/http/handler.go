package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoscore/backend/internal/domain"
	"github.com/ecoscore/backend/internal/logger"
)

const (
	apiName    = "Eco-Score API"
	apiVersion = "2.0"
)

// EcoScoreEvaluator turns an eco score request into a response envelope
type EcoScoreEvaluator interface {
	Evaluate(ctx context.Context, req *domain.EcoScoreRequest) (*domain.EcoScoreResponse, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ecoScoreService EcoScoreEvaluator
	logger          logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(ecoScoreService EcoScoreEvaluator, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		ecoScoreService: ecoScoreService,
		logger:          log,
	}
}

// Root describes the running API
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    apiName,
		"version": apiVersion,
		"status":  "running",
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Eco-Score API is running",
	})
}

// EcoScore handles eco score requests from the browser extension
func (h *Handler) EcoScore(c *gin.Context) {
	if h.ecoScoreService == nil {
		respondServerError(c, errors.New("eco score service not configured"))
		return
	}

	var req domain.EcoScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid eco score request body", logger.Error(err))
		respondServerError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	resp, err := h.ecoScoreService.Evaluate(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingURL.Error()})
		case errors.Is(err, domain.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": domain.ErrRateLimited.Error()})
		default:
			h.logger.Error("Eco score evaluation failed",
				logger.String("url", req.URL), logger.Error(err))
			respondServerError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func respondServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error: " + err.Error()})
}
