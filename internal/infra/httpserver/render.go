package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/bryanwahyu/truthcheck/internal/domain/analysis"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Page is the fixed page chrome, built once at startup.
type Page struct {
	Title    string
	Icon     string
	Tagline  string
	Model    string
	Features []string
}

// NewPage fills the sidebar feature list; the rest comes from config.
func NewPage(title, icon, tagline, model string) Page {
	return Page{
		Title:   title,
		Icon:    icon,
		Tagline: tagline,
		Model:   model,
		Features: []string{
			"Pattern detection",
			"Emotional analysis",
			"Logical consistency check",
			"Source reliability scoring",
		},
	}
}

type pageView struct {
	Page   Page
	Text   string
	Error  string
	Result *resultView
}

type resultView struct {
	ID             analysis.ReportID
	Model          string
	Duration       string
	Score          string
	Classification string
	Badge          analysis.Badge
	BadgeClass     string
	Items          []analysis.ExplanationItem
	Empty          bool
	Raw            string
}

var badgeClasses = map[analysis.Badge]string{
	analysis.BadgeFake:      "classification-fake",
	analysis.BadgeReal:      "classification-real",
	analysis.BadgeUncertain: "classification-possibly",
}

// BadgeClass returns the CSS class for a badge.
func BadgeClass(b analysis.Badge) string {
	if c, ok := badgeClasses[b]; ok {
		return c
	}
	return badgeClasses[analysis.BadgeUncertain]
}

func newResultView(r *analysis.Report) *resultView {
	res := r.Result
	return &resultView{
		ID:             r.ID,
		Model:          r.Model,
		Duration:       r.Duration.Round(10 * time.Millisecond).String(),
		Score:          res.ReliabilityScore,
		Classification: res.Classification,
		Badge:          r.Badge,
		BadgeClass:     BadgeClass(r.Badge),
		Items:          res.Explanation,
		Empty:          res.ReliabilityScore == "" && res.Classification == "" && len(res.Explanation) == 0,
		Raw:            r.Raw,
	}
}

// renderPage buffers the template so a failure can still produce a clean 500.
func renderPage(w http.ResponseWriter, status int, v pageView) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index", v); err != nil {
		slog.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
