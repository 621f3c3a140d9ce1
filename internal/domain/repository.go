package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductScorer turns product text into an eco result
type ProductScorer interface {
	Score(input ProductInput) EcoResult
}

// ProductFetcher scores a product when only its URL is known.
// A non-nil result returned with an error wrapping ErrFallbackResult is
// still served to the client.
type ProductFetcher interface {
	FetchAndScore(ctx context.Context, url string) (*EcoResult, error)
}
