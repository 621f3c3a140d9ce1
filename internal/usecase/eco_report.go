package usecase

import "github.com/ecoscore/backend/internal/domain"

// Grade thresholds (inclusive lower bounds)
const (
	gradeAThreshold = 85
	gradeBThreshold = 75
	gradeCThreshold = 60
	gradeDThreshold = 45
)

// gradeVerdicts is always the first recommendation
var gradeVerdicts = map[domain.Grade]string{
	domain.GradeA: "✅ Excellent eco-friendly choice!",
	domain.GradeB: "✅ Good eco-friendly option",
	domain.GradeC: "⚠️ Moderate impact - has eco features",
	domain.GradeD: "⚠️ Limited eco-features - seek alternatives",
	domain.GradeF: "❌ Poor environmental choice",
}

const (
	recOrganicCotton = "Look for organic cotton options"
	recPlasticFree   = "Choose plastic-free alternatives"
	recCertification = "Look for eco certifications"
	recVerifyClaims  = "Verify claims with certifications"
)

// GradeFor maps a clamped score onto its letter grade
func GradeFor(score int) domain.Grade {
	switch {
	case score >= gradeAThreshold:
		return domain.GradeA
	case score >= gradeBThreshold:
		return domain.GradeB
	case score >= gradeCThreshold:
		return domain.GradeC
	case score >= gradeDThreshold:
		return domain.GradeD
	default:
		return domain.GradeF
	}
}

func recommendations(grade domain.Grade, inText keywordHits, certs []string, greenwash bool) []string {
	recs := []string{gradeVerdicts[grade]}

	if !inText.has(termOrganic) && inText.has(termCotton) {
		recs = append(recs, recOrganicCotton)
	}
	if inText.has(termPlastic) && !inText.has(termRecyclable) {
		recs = append(recs, recPlasticFree)
	}
	if len(certs) == 0 {
		recs = append(recs, recCertification)
	}
	if greenwash {
		recs = append(recs, recVerifyClaims)
	}

	return truncate(recs, maxRecommendations)
}

func positiveFactors(inText keywordHits, goodMaterialScore int, certs []string) []string {
	factors := make([]string, 0, maxPositiveFactors+maxFactorCerts)

	if inText.has(termOrganic) {
		factors = append(factors, "Organic")
	}
	if inText.has(termSustainable) {
		factors = append(factors, "Sustainable")
	}
	if inText.has(termRecyclable) || inText.has(termRecycled) {
		factors = append(factors, "Recyclable")
	}
	if inText.has(termBiodegradable) {
		factors = append(factors, "Biodegradable")
	}
	if inText.has(termNatural) {
		factors = append(factors, "Natural")
	}
	if goodMaterialScore > 0 {
		factors = append(factors, "Good materials")
	}
	factors = append(factors, truncate(certs, maxFactorCerts)...)

	return truncate(orSentinel(factors, domain.LabelStandardProduct), maxPositiveFactors)
}

func negativeFactors(inText keywordHits) []string {
	factors := make([]string, 0, maxNegativeFactors)

	if inText.has(termPlastic) && !inText.has(termRecyclable) {
		factors = append(factors, "Non-recyclable plastic")
	}
	if inText.has(termSingleUse) {
		factors = append(factors, "Single-use")
	}
	if inText.has(termToxic) {
		factors = append(factors, "Toxic materials")
	}
	if inText.has(termChemical) && !inText.has(termChemicalFree) {
		factors = append(factors, "Chemical content")
	}

	return truncate(orSentinel(factors, domain.LabelNoConcerns), maxNegativeFactors)
}
