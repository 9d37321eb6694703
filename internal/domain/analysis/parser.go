package analysis

import "strings"

const (
	keyReliabilityScore = "reliability score"
	keyClassification   = "classification"
	keyExplanation      = "explanation"

	bulletRunes = "-•"
)

type parseState int

const (
	stateSeeking parseState = iota
	stateInExplanation
)

// parser walks the model output one line at a time. The score and
// classification rules run in every state; only the explanation body
// depends on state.
type parser struct {
	state    parseState
	result   Result
	hasScore bool
	open     *ExplanationItem
}

// Parse extracts score, classification and explanation bullets from the
// model's answer. It never fails: anything it cannot recognise is dropped.
func Parse(raw string) Result {
	p := &parser{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p.feed(line)
	}
	p.flush()
	return p.result
}

func (p *parser) feed(line string) {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, keyReliabilityScore):
		p.score(line)
	case strings.Contains(lower, keyClassification):
		p.classification(line)
	case strings.Contains(lower, keyExplanation):
		p.state = stateInExplanation
	case p.state == stateInExplanation:
		p.explanation(line)
	}
}

// score scans everything after the first colon, so
// "Reliability Score: N/A (confidence: 80)" yields "80".
func (p *parser) score(line string) {
	if p.hasScore {
		return
	}
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	if digits := firstDigitRun(rest); digits != "" {
		p.result.ReliabilityScore = digits
		p.hasScore = true
	}
}

func (p *parser) classification(line string) {
	if p.result.HasClassification {
		return
	}
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	p.result.Classification = strings.TrimSpace(rest)
	p.result.HasClassification = true
}

func (p *parser) explanation(line string) {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
		p.flush()
		p.open = newItem(line)
		return
	}
	if p.open != nil {
		p.open.Text += " " + line
	}
}

// flush appends the open item, if any.
func (p *parser) flush() {
	if p.open == nil {
		return
	}
	p.result.Explanation = append(p.result.Explanation, *p.open)
	p.open = nil
}

func newItem(line string) *ExplanationItem {
	body := strings.TrimSpace(strings.TrimLeft(line, bulletRunes))
	label, text, ok := strings.Cut(body, ":")
	if !ok {
		return &ExplanationItem{Text: body}
	}
	return &ExplanationItem{
		Label: strings.TrimSpace(label),
		Text:  strings.TrimSpace(text),
	}
}

// firstDigitRun returns the first maximal run of ASCII digits in s.
func firstDigitRun(s string) string {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return ""
	}
	end := strings.IndexFunc(s[start:], func(r rune) bool { return !isDigit(r) })
	if end < 0 {
		return s[start:]
	}
	return s[start : start+end]
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
