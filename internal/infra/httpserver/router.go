package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	domai "github.com/bryanwahyu/truthcheck/internal/domain/ai"
	"github.com/bryanwahyu/truthcheck/internal/domain/analysis"
	"github.com/bryanwahyu/truthcheck/internal/middleware"
)

// Analyzer is the use case the router drives.
type Analyzer interface {
	Analyze(ctx context.Context, text, credential string) (*analysis.Report, error)
	Model() string
}

// Options tunes the router; the zero value disables rate limiting and CORS.
type Options struct {
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
	MaxBodyBytes   int64
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only set it behind a proxy that overwrites those headers.
	TrustProxy bool
}

type Router struct {
	svc  Analyzer
	page Page
}

func NewRouter(svc Analyzer, page Page, opts Options) http.Handler {
	r := &Router{svc: svc, page: page}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	if opts.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(middleware.LoggingMiddleware, middleware.MetricsMiddleware)
	mux.Use(chimw.Recoverer)
	if opts.RateLimiter != nil {
		mux.Use(middleware.RateLimitMiddleware(opts.RateLimiter))
	}
	if opts.MaxBodyBytes > 0 {
		mux.Use(chimw.RequestSize(opts.MaxBodyBytes))
	}

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"templates": middleware.CheckerFunc(checkTemplates),
		"model":     middleware.CheckerFunc(r.checkModel),
	}))
	mux.Get("/healthz", middleware.LivenessHandler)
	mux.Get("/readyz", middleware.ReadinessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Handle("/static/*", staticHandler())

	mux.Get("/", r.handleIndex)
	mux.Post("/analyze", r.handleAnalyzeForm)

	mux.Route("/v1", func(rt chi.Router) {
		if len(opts.AllowedOrigins) > 0 {
			rt.Use(cors.Handler(cors.Options{
				AllowedOrigins: opts.AllowedOrigins,
				AllowedMethods: []string{http.MethodPost, http.MethodOptions},
				AllowedHeaders: []string{"Authorization", "Content-Type"},
				MaxAge:         300,
			}))
		}
		rt.Use(middleware.BearerCredential)
		rt.Post("/analyze", r.wrap(r.handleAnalyzeJSON))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap turns handler errors into JSON error responses.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status, msg := errorStatus(err)
			writeJSON(w, status, map[string]string{"error": msg})
		}
	}
}

// errorStatus maps an error to its HTTP status and the message shown to the user.
func errorStatus(err error) (int, string) {
	var verr *analysis.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, "request body too large"
	}
	if errors.Is(err, domai.ErrQuotaExceeded) {
		return http.StatusTooManyRequests, err.Error()
	}
	var ierr *domai.InvocationError
	if errors.As(err, &ierr) {
		return http.StatusBadGateway, ierr.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

// recordOutcome feeds the analysis counters.
func recordOutcome(report *analysis.Report, err error) {
	var verr *analysis.ValidationError
	switch {
	case err == nil:
		middleware.RecordAnalysis(report.Badge)
	case errors.As(err, &verr):
		middleware.RecordValidationRejected()
	default:
		middleware.RecordAnalysisFailed()
	}
}

// GET /
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	renderPage(w, http.StatusOK, pageView{Page: r.page})
}

// POST /analyze
// Form: api_key, text. Renders the page with either the result or an error alert.
func (r *Router) handleAnalyzeForm(w http.ResponseWriter, req *http.Request) {
	view := pageView{Page: r.page}

	if err := req.ParseForm(); err != nil {
		status, msg := errorStatus(err)
		if status == http.StatusInternalServerError {
			status, msg = http.StatusBadRequest, "could not read the form"
		}
		view.Error = msg
		renderPage(w, status, view)
		return
	}

	view.Text = middleware.SanitizeString(req.PostFormValue("text"))
	report, err := r.svc.Analyze(req.Context(), view.Text, req.PostFormValue("api_key"))
	recordOutcome(report, err)
	if err != nil {
		status, msg := errorStatus(err)
		view.Error = msg
		renderPage(w, status, view)
		return
	}

	view.Result = newResultView(report)
	renderPage(w, http.StatusOK, view)
}

type analyzeRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"api_key"`
}

// POST /v1/analyze
// Body: {"text": "...", "api_key": "..."}; the key may come from Authorization instead.
func (r *Router) handleAnalyzeJSON(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return &analysis.ValidationError{Field: "body", Message: "request body must be a JSON object"}
	}

	credential := middleware.GetCredentialFromContext(req.Context())
	if credential == "" {
		credential = body.APIKey
	}

	report, err := r.svc.Analyze(req.Context(), middleware.SanitizeString(body.Text), credential)
	recordOutcome(report, err)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, report)
	return nil
}

func (r *Router) checkModel(context.Context) error {
	return middleware.ValidateModelID(r.svc.Model())
}

func checkTemplates(context.Context) error {
	if pageTemplates.Lookup("index") == nil || pageTemplates.Lookup("result") == nil {
		return errors.New("page templates missing")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
