package domain

// EcoScoreRequest is the JSON body posted by the extension
type EcoScoreRequest struct {
	URL      string `json:"url"`
	Text     string `json:"text,omitempty"`
	Title    string `json:"title,omitempty"`
	Platform string `json:"platform,omitempty"`
}

// EcoScoreResponse is the envelope returned to the extension
type EcoScoreResponse struct {
	EcoScore int             `json:"eco_score"`
	Grade    Grade           `json:"grade"`
	Details  EcoScoreDetails `json:"details"`
}

// EcoScoreDetails carries the itemised analysis for the popup
type EcoScoreDetails struct {
	ProductName          string   `json:"product_name"`
	Platform             string   `json:"platform"`
	Materials            []string `json:"materials"`
	Certifications       []string `json:"certifications"`
	PositiveFactors      []string `json:"positive_factors"`
	NegativeFactors      []string `json:"negative_factors"`
	GreenwashingDetected bool     `json:"greenwashing_detected"`
	Recommendations      []string `json:"recommendations"`
}
