package usecase

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ecoscore/backend/internal/domain"
)

// Scoring constants
const (
	baseScore          = 50 // Neutral starting point
	noSignalScore      = 55 // Used when nothing eco-related was detected
	greenwashPenalty   = -8
	minScore           = 0
	maxScore           = 100
	maxMaterials       = 5
	maxPositiveFactors = 5
	maxNegativeFactors = 5
	maxRecommendations = 4
	maxFactorCerts     = 2
)

// EcoScorer rates product descriptions with a keyword-weighted heuristic.
// It holds no mutable state and is safe for concurrent use.
type EcoScorer struct {
	index      *keywordIndex
	goodLabels []string
	badLabels  []string
}

// NewEcoScorer builds the keyword index and material labels once
func NewEcoScorer() *EcoScorer {
	index := newKeywordIndex(
		keywordsOf(positiveKeywords),
		keywordsOf(negativeKeywords),
		keywordsOf(goodMaterials),
		keywordsOf(badMaterials),
		ecoPackagingTerms,
		plasticPackagingTerms,
		paperPackagingTerms,
		certificationKeywords(),
		probeTerms,
	)

	return &EcoScorer{
		index:      index,
		goodLabels: materialLabels(goodMaterials),
		badLabels:  materialLabels(badMaterials),
	}
}

// Score computes the eco result for a product. It never fails: missing
// fields behave as empty strings.
func (s *EcoScorer) Score(input domain.ProductInput) domain.EcoResult {
	text := strings.ToLower(input.Text)
	title := strings.ToLower(input.Title)

	inText := s.index.find(text)
	inTitle := s.index.find(title)

	score := baseScore

	// Keyword pass: text or title
	posCount := 0
	for _, kw := range positiveKeywords {
		if inText.has(kw.keyword) || inTitle.has(kw.keyword) {
			score += kw.weight
			posCount++
		}
	}
	negCount := 0
	for _, kw := range negativeKeywords {
		if inText.has(kw.keyword) || inTitle.has(kw.keyword) {
			score += kw.weight
			negCount++
		}
	}

	// Material pass: text only
	materials := make([]string, 0, len(goodMaterials)+len(badMaterials))
	goodMaterialScore := 0
	for i, mat := range goodMaterials {
		if inText.has(mat.keyword) {
			goodMaterialScore += mat.weight
			materials = append(materials, s.goodLabels[i])
		}
	}
	badMaterialScore := 0
	for i, mat := range badMaterials {
		if inText.has(mat.keyword) && !slices.Contains(materials, s.badLabels[i]) {
			badMaterialScore += mat.weight
			materials = append(materials, s.badLabels[i])
		}
	}

	score += goodMaterialScore
	if goodMaterialScore > 0 && badMaterialScore < 0 {
		// Blended fabrics only take half the penalty
		score += floorDiv(badMaterialScore, 2)
	} else {
		score += badMaterialScore
	}

	score += packagingAdjustment(inText)

	certs := make([]string, 0, len(certifications))
	for _, c := range certifications {
		if inText.has(c.keyword) {
			score += certificationBonus
			certs = append(certs, c.label)
		}
	}

	greenwash := false
	if (inText.has(termEcoFriendly) || inText.has(termSustainable)) &&
		inText.has(termPlastic) && !inText.has(termRecyclable) {
		score += greenwashPenalty
		greenwash = true
	}

	if posCount == 0 && negCount == 0 && len(materials) == 0 {
		score = noSignalScore
	}

	score = clampScore(score)
	grade := GradeFor(score)

	return domain.EcoResult{
		Score:                score,
		Grade:                grade,
		Title:                orDefault(input.Title, domain.LabelUnknown),
		Platform:             orDefault(input.Platform, domain.LabelUnknown),
		Materials:            orSentinel(truncate(materials, maxMaterials), domain.LabelNotSpecified),
		Certifications:       orSentinel(certs, domain.LabelNoCertification),
		PositiveFactors:      positiveFactors(inText, goodMaterialScore, certs),
		NegativeFactors:      negativeFactors(inText),
		GreenwashingDetected: greenwash,
		Recommendations:      recommendations(grade, inText, certs, greenwash),
	}
}

// packagingAdjustment applies the first matching packaging tier
func packagingAdjustment(inText keywordHits) int {
	switch {
	case inText.hasAny(ecoPackagingTerms):
		return ecoPackagingBonus
	case inText.hasAny(plasticPackagingTerms):
		return plasticPackagingPenalty
	case inText.hasAny(paperPackagingTerms):
		return paperPackagingBonus
	default:
		return 0
	}
}

func clampScore(score int) int {
	return max(minScore, min(maxScore, score))
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func materialLabels(table []weightedKeyword) []string {
	labels := make([]string, len(table))
	for i, mat := range table {
		labels[i] = TitleCase(mat.keyword)
	}
	return labels
}

// TitleCase title-cases every run of cased letters independently, so any
// non-letter starts a new word: "flipkart.com" becomes "Flipkart.Com" and
// "amazon's" becomes "Amazon'S".
func TitleCase(s string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(s))

	start, inWord := 0, false
	flush := func(end int) {
		if inWord {
			b.WriteString(caser.String(s[start:end]))
		} else {
			b.WriteString(s[start:end])
		}
	}
	for i, r := range s {
		if cased := isCased(r); cased != inWord {
			flush(i)
			start, inWord = i, cased
		}
	}
	flush(len(s))

	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orSentinel(list []string, sentinel string) []string {
	if len(list) == 0 {
		return []string{sentinel}
	}
	return list
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
