package domain

import "errors"

var (
	// ErrMissingURL is returned when a request carries no product URL
	ErrMissingURL = errors.New("Product URL is required")

	// ErrInvalidRequest is returned when the request body cannot be decoded
	ErrInvalidRequest = errors.New("invalid request body")

	// ErrFetchFailed is returned when a product page cannot be downloaded
	ErrFetchFailed = errors.New("product page fetch failed")

	// ErrFallbackResult accompanies a usable result that came from a fallback
	// fetcher because the product page could not be used. Such results must
	// not be cached.
	ErrFallbackResult = errors.New("fallback result served")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
