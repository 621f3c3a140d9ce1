package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ecoscore/backend/internal/domain"
	"github.com/ecoscore/backend/internal/logger"
)

// Score sources reported to observers
const (
	SourceBrowserText = "browser_text"
	SourceFetcher     = "fetcher"
	SourceCache       = "cache"
)

const (
	defaultMinTextLength = 100
	defaultCacheTTL      = 24 * time.Hour
	logTitleLength       = 50
)

// ScoreObserver is notified about every result the service hands out
type ScoreObserver interface {
	ObserveScore(source string, result *domain.EcoResult)
}

// EcoScoreServiceConfig holds configuration for the eco score service
type EcoScoreServiceConfig struct {
	CacheTTL      time.Duration
	MinTextLength int // Browser text must be longer than this to be scored directly
}

// EcoScoreService decides how a request is scored and shapes the response
type EcoScoreService struct {
	scorer        domain.ProductScorer
	fetcher       domain.ProductFetcher
	cache         domain.CacheRepository
	observer      ScoreObserver
	logger        logger.Logger
	cacheTTL      time.Duration
	minTextLength int
}

// NewEcoScoreService creates a new eco score service with dependencies.
// cache and observer may be nil.
func NewEcoScoreService(
	scorer domain.ProductScorer,
	fetcher domain.ProductFetcher,
	cache domain.CacheRepository,
	observer ScoreObserver,
	log logger.Logger,
	config EcoScoreServiceConfig,
) *EcoScoreService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}
	minTextLength := config.MinTextLength
	if minTextLength <= 0 {
		minTextLength = defaultMinTextLength
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &EcoScoreService{
		scorer:        scorer,
		fetcher:       fetcher,
		cache:         cache,
		observer:      observer,
		logger:        log,
		cacheTTL:      cacheTTL,
		minTextLength: minTextLength,
	}
}

// Evaluate scores the product described by the request.
// Flow: validate url -> browser text long enough ? score it : fetch by url (cached) -> envelope
func (s *EcoScoreService) Evaluate(ctx context.Context, request *domain.EcoScoreRequest) (*domain.EcoScoreResponse, error) {
	if request == nil || request.URL == "" {
		return nil, domain.ErrMissingURL
	}

	textLength := utf8.RuneCountInString(request.Text)
	s.logger.Info("Eco score requested",
		logger.String("platform", request.Platform),
		logger.String("title", truncateRunes(request.Title, logTitleLength)),
		logger.Int("text_length", textLength),
	)

	var (
		result *domain.EcoResult
		source string
	)

	if textLength > s.minTextLength {
		s.logger.Debug("Using browser-extracted text directly")
		scored := s.scorer.Score(domain.ProductInput{
			Title:    orDefault(request.Title, domain.LabelUnknownProduct),
			Text:     request.Text,
			URL:      request.URL,
			Platform: TitleCase(request.Platform),
		})
		result, source = &scored, SourceBrowserText
	} else {
		s.logger.Debug("Browser text not available, fetching product page")
		fetched, fromCache, err := s.fetchCached(ctx, request.URL)
		if err != nil {
			return nil, err
		}
		result, source = fetched, SourceFetcher
		if fromCache {
			source = SourceCache
		}
	}

	if s.observer != nil {
		s.observer.ObserveScore(source, result)
	}

	s.logger.Info("Eco score computed",
		logger.Int("score", result.Score),
		logger.String("grade", string(result.Grade)),
		logger.String("source", source),
		logger.Bool("greenwashing", result.GreenwashingDetected),
	)

	return buildResponse(result, request.Platform), nil
}

// fetchCached consults the cache before delegating to the fetcher
func (s *EcoScoreService) fetchCached(ctx context.Context, productURL string) (*domain.EcoResult, bool, error) {
	key := generateCacheKey(productURL)

	if cached, err := s.getFromCache(ctx, key); err == nil && cached != nil {
		return cached, true, nil
	}

	result, err := s.fetcher.FetchAndScore(ctx, productURL)
	if errors.Is(err, domain.ErrFallbackResult) && result != nil {
		s.logger.Info("Serving fallback result without caching",
			logger.String("url", productURL), logger.Error(err))
		return result, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("fetch and score %s: %w", productURL, err)
	}

	if err := s.setInCache(ctx, key, result); err != nil {
		s.logger.Warn("Failed to cache fetched result", logger.String("key", key), logger.Error(err))
	}

	return result, false, nil
}

// buildResponse maps a result into the extension's response envelope
func buildResponse(result *domain.EcoResult, requestPlatform string) *domain.EcoScoreResponse {
	return &domain.EcoScoreResponse{
		EcoScore: result.Score,
		Grade:    result.Grade,
		Details: domain.EcoScoreDetails{
			ProductName:          orDefault(result.Title, domain.LabelUnknownProduct),
			Platform:             orDefault(result.Platform, requestPlatform),
			Materials:            nonNil(result.Materials),
			Certifications:       nonNil(result.Certifications),
			PositiveFactors:      nonNil(result.PositiveFactors),
			NegativeFactors:      nonNil(result.NegativeFactors),
			GreenwashingDetected: mentionsGreenwashing(result.NegativeFactors),
			Recommendations:      nonNil(result.Recommendations),
		},
	}
}

// mentionsGreenwashing reports whether any negative factor names greenwashing.
// This is independent of the scorer's own flag, which the envelope does not expose.
func mentionsGreenwashing(factors []string) bool {
	for _, f := range factors {
		if strings.Contains(strings.ToLower(f), "greenwashing") {
			return true
		}
	}
	return false
}

// generateCacheKey creates a cache key from the product URL.
// Format: "ecoscore:url:{url without fragment}"
func generateCacheKey(productURL string) string {
	u := strings.TrimSpace(productURL)
	if idx := strings.Index(u, "#"); idx >= 0 {
		u = u[:idx]
	}
	return "ecoscore:url:" + u
}

// getFromCache retrieves a fetched result from cache
func (s *EcoScoreService) getFromCache(ctx context.Context, key string) (*domain.EcoResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	result, err := decodeCachedResult(value)
	if err != nil {
		// Drop entries that no longer decode so the next request refetches
		if delErr := s.cache.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to delete undecodable cache entry",
				logger.String("key", key), logger.Error(delErr))
		}
		return nil, err
	}
	return result, nil
}

// setInCache stores a fetched result in cache
func (s *EcoScoreService) setInCache(ctx context.Context, key string, result *domain.EcoResult) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, result, s.cacheTTL)
}

// decodeCachedResult converts whatever the cache handed back into an EcoResult.
// The memory cache round-trips values through JSON and returns maps.
func decodeCachedResult(value interface{}) (*domain.EcoResult, error) {
	switch v := value.(type) {
	case *domain.EcoResult:
		return v, nil
	case domain.EcoResult:
		return &v, nil
	case map[string]interface{}:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, domain.ErrCacheMiss
		}
		var result domain.EcoResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, domain.ErrCacheMiss
		}
		return &result, nil
	default:
		return nil, domain.ErrCacheMiss
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
