package fetcher

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/ecoscore/backend/internal/domain"
)

// Platforms recognised from the product URL
const (
	PlatformAmazon   = "Amazon"
	PlatformFlipkart = "Flipkart"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Amazon renders the listing into stable element ids
var (
	amazonTitleSelector        = "#productTitle"
	amazonBrandSelector        = "#bylineInfo"
	amazonDescriptionSelectors = []string{"#feature-bullets", "#productDescription", "#detailBullets_feature_div", "#aplus"}
)

// Flipkart class names rotate; try the known ones in order
var (
	flipkartTitleSelectors  = []string{`span[data-test-id="title"]`, "h1._3wU53n", "h1", ".B_NuCI"}
	flipkartDetailSelectors = []string{".fRt4Ns", "._2t4dHl", "._3Djpqc", ".N6nrg"}
)

// detectPlatform names the marketplace a URL belongs to
func detectPlatform(productURL string) string {
	u := strings.ToLower(productURL)
	switch {
	case strings.Contains(u, "amazon"):
		return PlatformAmazon
	case strings.Contains(u, "flipkart"):
		return PlatformFlipkart
	default:
		return domain.LabelUnknown
	}
}

// extractProduct pulls the product name, brand and description out of a page.
// The returned Text is the lowercase concatenation of all three.
func extractProduct(productURL string, page io.Reader, maxTextLength int) (domain.ProductInput, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return domain.ProductInput{}, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	platform := detectPlatform(productURL)
	docTitle := doc.Find("title").First().Text()

	var name, brand string
	var description strings.Builder

	switch platform {
	case PlatformAmazon:
		name = strings.TrimSpace(doc.Find(amazonTitleSelector).First().Text())
		brand = strings.TrimSpace(doc.Find(amazonBrandSelector).First().Text())
		for _, sel := range amazonDescriptionSelectors {
			if s := doc.Find(sel).First(); s.Length() > 0 {
				description.WriteString(" " + s.Text())
			}
		}
	case PlatformFlipkart:
		name = flipkartTitle(doc)
		for _, sel := range flipkartDetailSelectors {
			doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
				description.WriteString(" " + s.Text())
			})
		}
	default:
		name = docTitle
		description.WriteString(doc.Find("body").Text())
	}
	description.WriteString(" " + docTitle)

	name = collapseWhitespace(name)
	brand = collapseWhitespace(brand)
	desc := truncateRunes(collapseWhitespace(description.String()), maxTextLength)

	// Text keeps the raw name; only the title gets the placeholder
	text := strings.ToLower(name + " " + brand + " " + desc)
	if name == "" {
		name = domain.LabelUnknownProduct
	}

	return domain.ProductInput{
		Title:    name,
		Text:     text,
		URL:      productURL,
		Platform: platform,
	}, nil
}

// flipkartTitle keeps the last candidate over 5 characters, stopping early
// once one is over 10
func flipkartTitle(doc *goquery.Document) string {
	name := ""
	for _, sel := range flipkartTitleSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if utf8.RuneCountInString(text) > 5 {
			name = text
			if utf8.RuneCountInString(name) > 10 {
				break
			}
		}
	}
	return name
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
