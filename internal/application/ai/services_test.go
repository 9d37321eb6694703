package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/truthcheck/internal/application"
	domai "github.com/bryanwahyu/truthcheck/internal/domain/ai"
	"github.com/bryanwahyu/truthcheck/internal/domain/analysis"
)

type fakeClient struct {
	reply string
	err   error

	calls      int
	credential string
	prompt     string
	model      string
}

func (f *fakeClient) Invoke(_ context.Context, credential, prompt, modelID string) (string, error) {
	f.calls++
	f.credential = credential
	f.prompt = prompt
	f.model = modelID
	return f.reply, f.err
}

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) application.Clock {
	now := start
	return application.ClockFunc(func() time.Time {
		t := now
		now = now.Add(step)
		return t
	})
}

const modelReply = `Reliability Score: 85
Classification: Likely Real
Explanation:
- Sourcing: Multiple credible citations present
- Tone: Neutral, fact-based language`

func TestAnalyze(t *testing.T) {
	client := &fakeClient{reply: modelReply}
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewService(client, "openai/gpt-oss-20b", WithClock(steppingClock(start, 1500*time.Millisecond)))

	report, err := svc.Analyze(context.Background(), "Breaking: water is wet", "gsk_secret")
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "gsk_secret", client.credential)
	assert.Equal(t, "openai/gpt-oss-20b", client.model)
	assert.Contains(t, client.prompt, `"""Breaking: water is wet"""`)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "openai/gpt-oss-20b", report.Model)
	assert.Equal(t, "85", report.Result.ReliabilityScore)
	assert.Equal(t, "Likely Real", report.Result.Classification)
	assert.Len(t, report.Result.Explanation, 2)
	assert.Equal(t, analysis.BadgeReal, report.Badge)
	assert.Equal(t, modelReply, report.Raw)
	assert.Equal(t, start, report.AnalyzedAt)
	assert.Equal(t, 1500*time.Millisecond, report.Duration)
}

func TestAnalyzeValidationSkipsModel(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		credential string
		field      string
	}{
		{"missing credential", "some news", "", "api_key"},
		{"whitespace text", "   \n ", "gsk_secret", "text"},
		{"too long", strings.Repeat("a", 11), "gsk_secret", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{reply: modelReply}
			svc := NewService(client, "m", WithMaxInputBytes(10))

			report, err := svc.Analyze(context.Background(), tt.text, tt.credential)
			assert.Nil(t, report)

			var verr *analysis.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, client.calls)
		})
	}
}

func TestAnalyzeInvocationError(t *testing.T) {
	upstream := errors.New("error, status code: 401, message: Invalid API Key")
	svc := NewService(&fakeClient{err: upstream}, "m")

	_, err := svc.Analyze(context.Background(), "news", "gsk_bad")

	var ierr *domai.InvocationError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, upstream.Error(), err.Error())
	assert.ErrorIs(t, err, upstream)
}

func TestAnalyzeMalformedReplyIsNotAnError(t *testing.T) {
	svc := NewService(&fakeClient{reply: "I'm not sure what you mean."}, "m")

	report, err := svc.Analyze(context.Background(), "news", "gsk_secret")
	require.NoError(t, err)

	assert.Empty(t, report.Result.ReliabilityScore)
	assert.False(t, report.Result.HasClassification)
	assert.Empty(t, report.Result.Explanation)
	assert.NotNil(t, report.Result.Explanation, "encodes as [] rather than null")
	assert.Equal(t, analysis.BadgeUncertain, report.Badge)
}
