package domain

// ProductInput is the product information scraped by the browser extension
type ProductInput struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Platform string `json:"platform"` // e.g., "Amazon", "Flipkart"
}

// Grade is the letter bucket derived from an eco score
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Sentinel labels used when a list would otherwise be empty
const (
	LabelUnknown         = "Unknown"
	LabelUnknownProduct  = "Unknown Product"
	LabelNotSpecified    = "Not specified"
	LabelNoCertification = "None found"
	LabelStandardProduct = "Standard product"
	LabelNoConcerns      = "No major concerns"
)

// EcoResult is the outcome of scoring a single product
type EcoResult struct {
	Score                int      `json:"score"` // 0-100
	Grade                Grade    `json:"grade"`
	Title                string   `json:"title"`
	Platform             string   `json:"platform"`
	Materials            []string `json:"materials"`
	Certifications       []string `json:"certifications"`
	PositiveFactors      []string `json:"positive_factors"`
	NegativeFactors      []string `json:"negative_factors"`
	GreenwashingDetected bool     `json:"greenwashing_detected"`
	Recommendations      []string `json:"recommendations"`
}
