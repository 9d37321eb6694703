package ai

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bryanwahyu/truthcheck/internal/application"
	domai "github.com/bryanwahyu/truthcheck/internal/domain/ai"
	"github.com/bryanwahyu/truthcheck/internal/domain/analysis"
	"github.com/bryanwahyu/truthcheck/internal/infra/ai/prompt"
)

// Service runs one analysis per call: validate, prompt, invoke, parse.
// It keeps no per-request state and is safe for concurrent use.
type Service struct {
	client   domai.Client
	model    string
	maxInput int
	clock    application.Clock
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the system clock.
func WithClock(c application.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithMaxInputBytes rejects texts longer than n bytes. Zero disables the check.
func WithMaxInputBytes(n int) Option {
	return func(s *Service) { s.maxInput = n }
}

func NewService(client domai.Client, model string, opts ...Option) *Service {
	s := &Service{client: client, model: model, clock: application.SystemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model is the identifier sent upstream.
func (s *Service) Model() string {
	return s.model
}

// Analyze validates the text, asks the model, and parses its answer.
// Validation failures return *analysis.ValidationError without any I/O;
// upstream failures return *ai.InvocationError.
func (s *Service) Analyze(ctx context.Context, text, credential string) (*analysis.Report, error) {
	req := analysis.Request{Text: text, ModelID: s.model, Credential: credential}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.maxInput > 0 && len(req.Text) > s.maxInput {
		return nil, &analysis.ValidationError{Field: "text", Message: "The text is too long to analyze."}
	}

	id := analysis.ReportID(uuid.New().String())
	start := s.clock.Now()

	raw, err := s.client.Invoke(ctx, req.Credential, prompt.Build(req.Text), req.ModelID)
	if err != nil {
		slog.Error("model invocation failed", "id", id, "model", req.ModelID, "error", err)
		return nil, &domai.InvocationError{Err: err}
	}

	result := analysis.Parse(raw)
	if result.Explanation == nil {
		result.Explanation = []analysis.ExplanationItem{}
	}
	report := &analysis.Report{
		ID:         id,
		Model:      req.ModelID,
		Result:     result,
		Badge:      result.Badge(),
		Raw:        raw,
		AnalyzedAt: start,
		Duration:   s.clock.Now().Sub(start),
	}

	slog.Info("analysis complete",
		"id", id,
		"model", req.ModelID,
		"duration", report.Duration,
		"badge", report.Badge,
		"score", result.ReliabilityScore,
		"items", len(result.Explanation),
	)
	return report, nil
}
