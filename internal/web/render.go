package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/food"
	"github.com/mkyawt/nutrilog/internal/ops"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "dashboard", "foods"
	UserID  string
}

// DashboardPageData is the template data for the daily dashboard page.
type DashboardPageData struct {
	PageData
	Date         string
	Summary      *ops.DailySummaryOutput
	ReportHTML   template.HTML
	HasProfile   bool
}

// FoodsPageData is the template data for the catalog page.
type FoodsPageData struct {
	PageData
	Query string
	Items []food.Record
	Count int
}

// LoginPageData is the template data for the login page.
type LoginPageData struct {
	PageData
	Error string
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"round1":     round1,
		"formatTime": formatTime,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"dashboard": "dashboard.html",
		"foods":     "foods.html",
		"login":     "login.html",
		"error":     "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternal(err)
	}

	status := appErr.Status
	message := appErr.Message

	if strings.Contains(req.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(req.URL.Path, "/api/") {
		renderJSONError(w, appErr)
		return
	}

	r.renderPageStatus(w, req, status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", status),
			Version: r.version,
		},
		StatusCode: status,
		Message:    message,
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderJSONError writes a structured error as JSON, mapping the error's
// own HTTP status.
func renderJSONError(w http.ResponseWriter, err error) {
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternal(err)
	}
	errorObj := map[string]any{
		"code":    string(appErr.Code),
		"message": appErr.Message,
		"status":  appErr.Status,
	}
	if appErr.Code != errors.ErrInternal && appErr.Details != nil {
		errorObj["details"] = appErr.Details
	}
	renderJSON(w, appErr.Status, map[string]any{"error": errorObj})
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// dayReportMarkdown builds the markdown day report shown on the dashboard.
func dayReportMarkdown(s *ops.DailySummaryOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Daily report for %s\n\n", s.Date)

	if len(s.Entries) == 0 {
		b.WriteString("Nothing logged yet today.\n")
	} else {
		b.WriteString("| Food | Servings | Logged at |\n|---|---|---|\n")
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "| %s | %g | %s |\n", e.Food, e.Quantity, e.Timestamp)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**Totals:** %.1f kcal, %.1fg protein, %.1fg fat, %.1fg carbs\n\n",
		s.Totals.Calories, s.Totals.Protein, s.Totals.Fat, s.Totals.Carbs)

	if s.Profile != nil {
		fmt.Fprintf(&b, "Target: %.0f kcal (%s)\n", s.TargetCalories, strings.ReplaceAll(s.CalorieStatus, "_", " "))
	}
	return b.String()
}

// formatTime formats an RFC3339 timestamp as "2006-01-02 15:04".
func formatTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04")
}

// round1 rounds to one decimal for display.
func round1(f float64) string {
	return fmt.Sprintf("%.1f", f)
}
