package viewer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

// Server renders the saved-report index and individual reports.
type Server struct {
	outputDir string
	logger    *zap.Logger
	mux       *http.ServeMux
}

func NewServer(outputDir string, logger *zap.Logger) *Server {
	s := &Server{
		outputDir: outputDir,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /report/{filename}", s.handleReport)

	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe blocks serving the viewer on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("report viewer listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	reports, err := ListReports(s.outputDir)
	if err != nil {
		s.logger.Error("listing reports", zap.Error(err))
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	sortBy := r.URL.Query().Get("sort")
	reverse := r.URL.Query().Get("order") != "asc"
	SortReports(reports, sortBy, reverse)

	s.render(w, indexTemplate, map[string]any{
		"Reports": reports,
		"SortBy":  sortBy,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if filename != filepath.Base(filename) || !reportNamePattern.MatchString(filename) {
		http.NotFound(w, r)
		return
	}

	markdown, err := os.ReadFile(filepath.Join(s.outputDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("reading report", zap.String("filename", filename), zap.Error(err))
		http.Error(w, "failed to read report", http.StatusInternalServerError)
		return
	}

	var html bytes.Buffer
	if err := goldmark.Convert(markdown, &html); err != nil {
		s.logger.Error("rendering report", zap.String("filename", filename), zap.Error(err))
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	s.render(w, reportTemplate, map[string]any{
		"Filename": filename,
		"Body":     template.HTML(html.String()),
	})
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("executing template", zap.Error(err))
	}
}

var indexTemplate = template.Must(template.New("index").Parse(fmt.Sprintf(pageShell, `
<h1>Company Research Reports</h1>
<p>
  Sort by:
  <a href="/?sort=date">date</a> |
  <a href="/?sort=company">company</a>
</p>
{{if .Reports}}
<table>
  <thead>
    <tr><th>Company</th><th>Generated</th><th>Location restrictions</th></tr>
  </thead>
  <tbody>
  {{range .Reports}}
    <tr>
      <td><a href="/report/{{.Filename}}">{{.CompanyName}}</a></td>
      <td>{{.Timestamp.Format "2006-01-02 15:04"}}</td>
      <td>
        {{if .Restriction}}{{if .Restriction.HasRestrictions}}
          <span class="badge {{.Restriction.RestrictionLevel}}">{{.Restriction.RestrictionLevel}}</span>
          {{.Restriction.Description}}
        {{else}}none{{end}}{{else}}&mdash;{{end}}
      </td>
    </tr>
  {{end}}
  </tbody>
</table>
{{else}}
<p>No reports yet. Run <code>company-scout run</code> first.</p>
{{end}}
`)))

var reportTemplate = template.Must(template.New("report").Parse(fmt.Sprintf(pageShell, `
<p><a href="/">&larr; All reports</a></p>
<article>{{.Body}}</article>
`)))

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>company-scout reports</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; max-width: 56em; margin: 2em auto; padding: 0 1em; line-height: 1.5; }
table { border-collapse: collapse; width: 100%%; }
th, td { text-align: left; padding: 0.4em 0.8em; border-bottom: 1px solid #ddd; }
.badge { padding: 0.1em 0.5em; border-radius: 0.3em; color: #fff; font-size: 0.85em; }
.badge.high { background: #c0392b; }
.badge.medium { background: #e67e22; }
.badge.low { background: #f1c40f; color: #333; }
blockquote { border-left: 3px solid #c33; padding-left: 1em; color: #600; }
</style>
</head>
<body>
%s
</body>
</html>`
