package prompt

import "strings"

// Quote marks the start and end of the caller's text inside the prompt.
// Embedded occurrences are not escaped; the model only needs approximate framing.
const Quote = `"""`

const analystTemplate = `You are an advanced Fake News Detection AI.

Analyze the following text for:
- Misinformation patterns
- Emotional manipulation
- Logical consistency
- Source reliability
- Plausibility of claims

Output:
- Reliability score (0–100)
- Classification: Likely Fake / Possibly Fake / Likely Real
- A short explanation

Text:
`

// Build returns the analyst prompt with text embedded verbatim.
func Build(text string) string {
	var b strings.Builder
	b.Grow(len(analystTemplate) + len(text) + 2*len(Quote) + 1)
	b.WriteString(analystTemplate)
	b.WriteString(Quote)
	b.WriteString(text)
	b.WriteString(Quote)
	b.WriteString("\n")
	return b.String()
}
