package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		classification string
		want           Badge
	}{
		{"Likely Fake", BadgeFake},
		{"FAKE", BadgeFake},
		{"Possibly Fake", BadgeUncertain},
		{"Likely Real", BadgeReal},
		{"real news", BadgeReal},
		{"Unverifiable", BadgeUncertain},
		{"", BadgeUncertain},
	}

	for _, tt := range tests {
		t.Run(tt.classification, func(t *testing.T) {
			assert.Equal(t, tt.want, BadgeFor(tt.classification))
		})
	}
}

func TestEndToEndBadge(t *testing.T) {
	r := Parse("Reliability Score: 85\nClassification: Likely Real\nExplanation:\n- Sourcing: Multiple credible citations present")
	assert.Equal(t, BadgeReal, r.Badge())
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"missing credential", Request{Text: "news"}, "api_key"},
		{"blank credential", Request{Text: "news", Credential: "  "}, "api_key"},
		{"blank text", Request{Text: " \n\t", Credential: "gsk_x"}, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, Request{Text: "news", Credential: "gsk_x"}.Validate())
}
