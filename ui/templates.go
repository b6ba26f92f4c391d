package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// templateFuncs is shared by the gin server and the chi app
var templateFuncs = template.FuncMap{
	"markdown": renderMarkdown,
	"value": func(v interface{}) string {
		switch t := v.(type) {
		case float64:
			return formatNumber(t)
		case []float64:
			parts := make([]string, len(t))
			for i, x := range t {
				parts[i] = formatNumber(x)
			}
			return "[" + strings.Join(parts, ", ") + "]"
		case bool:
			if t {
				return "yes"
			}
			return "no"
		default:
			return fmt.Sprint(v)
		}
	},
}

// parseTemplates loads every page under templates/ from files
func parseTemplates(files fs.FS) (*template.Template, error) {
	templates, err := template.New("").Funcs(templateFuncs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

// renderMarkdown converts catalog descriptions to HTML
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.Render(doc, renderer))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// executeTemplate renders into a buffer so a failing template never leaves a
// half-written page behind
func executeTemplate(templates *template.Template, templateName string, data interface{}) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		log.Printf("Template data type: %T", data)
		return nil, err
	}
	if !strings.Contains(buf.String(), "</html>") {
		log.Printf("WARNING: Rendered template %s appears truncated - missing </html> tag", templateName)
	}
	return &buf, nil
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	buf, err := executeTemplate(s.templates, templateName, data)
	if err != nil {
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}
