package analysis

import (
	"strconv"
	"strings"
	"time"
)

// Request is one user action: the text to check plus the credential and model it runs under.
type Request struct {
	Text       string
	ModelID    string
	Credential string
}

// Validate rejects requests that must never reach the model.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Credential) == "" {
		return &ValidationError{Field: "api_key", Message: "Please enter your Groq API Key."}
	}
	if strings.TrimSpace(r.Text) == "" {
		return &ValidationError{Field: "text", Message: "Please paste some text to analyze."}
	}
	return nil
}

// ExplanationItem is one bullet of the model's explanation.
type ExplanationItem struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Result is what Parse recovers from the model's free text.
type Result struct {
	// ReliabilityScore holds the digits as written by the model; empty when absent.
	ReliabilityScore  string            `json:"reliability_score,omitempty"`
	Classification    string            `json:"classification,omitempty"`
	HasClassification bool              `json:"-"`
	Explanation       []ExplanationItem `json:"explanation"`
}

// Score returns the reliability score as an int. ok is false when no score
// was found or the digits overflow int.
func (r Result) Score() (int, bool) {
	if r.ReliabilityScore == "" {
		return 0, false
	}
	n, err := strconv.Atoi(r.ReliabilityScore)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Badge derives the display category from the classification text.
func (r Result) Badge() Badge {
	return BadgeFor(r.Classification)
}

// ReportID identifier type
type ReportID string

// Report is a finished analysis, ready for rendering.
type Report struct {
	ID         ReportID      `json:"id"`
	Model      string        `json:"model"`
	Result     Result        `json:"result"`
	Badge      Badge         `json:"badge"`
	Raw        string        `json:"raw"`
	AnalyzedAt time.Time     `json:"analyzed_at"`
	Duration   time.Duration `json:"duration_ns"`
}
