// Package renderer turns engine results into markdown reports. Each
// report has a view struct holding pre-formatted fields and a template
// rendering it; the engine types never format themselves.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderHistory renders the daily valuation history to a markdown string.
func RenderHistory(h *History) string {
	partials := map[string]string{
		"history_title": "templates/history_title.md",
	}
	return renderTemplate("history", "templates/history.md", partials, h)
}

// RenderAllocation renders the allocation breakdown to a markdown string.
func RenderAllocation(a *Allocation) string {
	partials := map[string]string{
		"allocation_title": "templates/allocation_title.md",
	}
	return renderTemplate("allocation", "templates/allocation.md", partials, a)
}

// RenderSummary renders the one-look portfolio summary to a markdown string.
func RenderSummary(s *Summary) string {
	return renderTemplate("summary", "templates/summary.md", nil, s)
}

// renderTemplate is a generic utility to render a main template that
// depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
