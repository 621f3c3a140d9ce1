// Package fetcher scores products when the extension could only send a URL.
package fetcher

import (
	"context"

	"github.com/ecoscore/backend/internal/domain"
)

// PlaceholderFetcher never touches the network. It returns a fixed neutral
// result that asks the shopper to check the product page themselves.
type PlaceholderFetcher struct{}

// NewPlaceholderFetcher creates a new placeholder fetcher
func NewPlaceholderFetcher() *PlaceholderFetcher {
	return &PlaceholderFetcher{}
}

// FetchAndScore ignores the URL and returns the neutral placeholder result
func (p *PlaceholderFetcher) FetchAndScore(ctx context.Context, url string) (*domain.EcoResult, error) {
	return &domain.EcoResult{
		Score:                55,
		Grade:                domain.GradeD,
		Title:                domain.LabelUnknown,
		Platform:             domain.LabelUnknown,
		Materials:            []string{"Not available"},
		Certifications:       []string{domain.LabelNoCertification},
		PositiveFactors:      []string{"Check page"},
		NegativeFactors:      []string{"Insufficient info"},
		GreenwashingDetected: false,
		Recommendations:      []string{"Visit product page"},
	}, nil
}
