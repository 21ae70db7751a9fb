package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const documentTemplate = `<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; font-size: 14px; margin: 2em; line-height: 1.6; color: #222; }
pre { background-color: #f4f4f4; padding: 10px; border-radius: 4px; overflow-x: auto; font-family: monospace; font-size: 13px; white-space: pre-wrap; }
code { font-family: monospace; color: #c7254e; background-color: #f9f2f4; padding: 2px 4px; border-radius: 4px; }
h1, h2, h3 { margin-top: 1.5em; }
</style>
</head>
<body>
<h1>Session Report: {{.Session}}</h1>
<p><em>Generated: {{.Generated}}</em></p>
{{.Body}}
</body>
</html>
`

// HTMLExporter renders the markdown summary into a standalone styled HTML
// document under a fixed export directory
type HTMLExporter struct {
	dir      string
	markdown goldmark.Markdown
	tmpl     *template.Template
	now      func() time.Time
}

var _ Exporter = (*HTMLExporter)(nil)

// NewHTMLExporter creates an exporter writing into dir, creating it if
// needed
func NewHTMLExporter(dir string) (*HTMLExporter, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &HTMLExporter{
		dir:      dir,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		tmpl:     template.Must(template.New("report").Parse(documentTemplate)),
		now:      time.Now,
	}, nil
}

// Export writes <dir>/<session>.html and returns its path
func (e *HTMLExporter) Export(sessionName, summary string) (string, error) {
	var body bytes.Buffer
	if err := e.markdown.Convert([]byte(summary), &body); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}

	var doc bytes.Buffer
	err := e.tmpl.Execute(&doc, struct {
		Session   string
		Generated string
		Body      template.HTML
	}{
		Session:   sessionName,
		Generated: e.now().Format("2006-01-02 15:04:05"),
		Body:      template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to build report document: %w", err)
	}

	path := filepath.Join(e.dir, sessionName+".html")
	if err := os.WriteFile(path, doc.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
