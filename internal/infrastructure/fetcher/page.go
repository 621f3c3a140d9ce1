package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/ecoscore/backend/internal/domain"
	"github.com/ecoscore/backend/internal/logger"
)

const maxPageBytes = 5 << 20

// PageFetcherConfig holds configuration for the page fetcher
type PageFetcherConfig struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	RetryBackoff      time.Duration // base delay, doubled per attempt
	MaxTextLength     int           // description is cut to this many characters
	MinTextLength     int           // extracted text must be longer than this to be scored
}

func (c *PageFetcherConfig) setDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "EcoScore/2.0"
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 1
	}
	if c.Burst <= 0 {
		c.Burst = 5
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 500 * time.Millisecond
	}
	if c.MaxTextLength <= 0 {
		c.MaxTextLength = 3000
	}
	if c.MinTextLength <= 0 {
		c.MinTextLength = 100
	}
}

// PageFetcher downloads a product page, extracts its description and scores it.
// Whenever the page cannot be used it defers to the fallback fetcher.
type PageFetcher struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	scorer      domain.ProductScorer
	fallback    domain.ProductFetcher
	config      PageFetcherConfig
	logger      logger.Logger
}

// NewPageFetcher creates a new page fetcher
func NewPageFetcher(scorer domain.ProductScorer, fallback domain.ProductFetcher, config PageFetcherConfig, log logger.Logger) *PageFetcher {
	config.setDefaults()
	if fallback == nil {
		fallback = NewPlaceholderFetcher()
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &PageFetcher{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		scorer:      scorer,
		fallback:    fallback,
		config:      config,
		logger:      log.With(logger.String("component", "page_fetcher")),
	}
}

// FetchAndScore fetches productURL and scores the extracted product text.
// When the page cannot be used the fallback result is returned together with
// an error wrapping domain.ErrFallbackResult.
func (f *PageFetcher) FetchAndScore(ctx context.Context, productURL string) (*domain.EcoResult, error) {
	page, err := f.fetchPage(ctx, productURL)
	if err != nil {
		f.logger.Warn("Page fetch failed, using fallback",
			logger.String("url", productURL), logger.Error(err))
		return f.useFallback(ctx, productURL, err)
	}

	product, err := extractProduct(productURL, bytes.NewReader(page), f.config.MaxTextLength)
	if err != nil {
		f.logger.Warn("Page extraction failed, using fallback",
			logger.String("url", productURL), logger.Error(err))
		return f.useFallback(ctx, productURL, err)
	}

	if n := utf8.RuneCountInString(product.Text); n <= f.config.MinTextLength {
		f.logger.Info("Extracted text too short, using fallback",
			logger.String("url", productURL), logger.Int("text_length", n))
		return f.useFallback(ctx, productURL, fmt.Errorf("extracted text too short: %d characters", n))
	}

	f.logger.Debug("Scoring extracted page",
		logger.String("platform", product.Platform),
		logger.Int("text_length", utf8.RuneCountInString(product.Text)))

	result := f.scorer.Score(product)
	return &result, nil
}

// useFallback scores productURL with the fallback fetcher and marks the
// result as a fallback
func (f *PageFetcher) useFallback(ctx context.Context, productURL string, cause error) (*domain.EcoResult, error) {
	result, err := f.fallback.FetchAndScore(ctx, productURL)
	if err != nil {
		return nil, err
	}
	return result, fmt.Errorf("%w: %v", domain.ErrFallbackResult, cause)
}

// fetchPage GETs the page, retrying transport errors, 429 and 5xx responses
func (f *PageFetcher) fetchPage(ctx context.Context, productURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= f.config.MaxRetries; attempt++ {
		if err := f.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := f.doRequest(ctx, productURL)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
			resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusOK && readErr == nil:
				return body, nil
			case resp.StatusCode == http.StatusOK:
				lastErr = fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, readErr)
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
				lastErr = fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
			default:
				return nil, fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
			}
		}

		f.logger.Debug("Page fetch attempt failed",
			logger.Int("attempt", attempt), logger.Error(lastErr))

		if attempt < f.config.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(f.config.RetryBackoff, attempt)):
			}
		}
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with browser-like headers
func (f *PageFetcher) doRequest(ctx context.Context, productURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, productURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	return resp, nil
}

// exponentialBackoff returns base, 2*base, 4*base... for attempts 1, 2, 3...
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base * time.Duration(1<<(attempt-1))
}
