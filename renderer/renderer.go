// Package renderer turns the outcome of the peerfunds workflows into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderCompare renders the Compare report to a markdown string.
func RenderCompare(c *Compare) string {
	partials := map[string]string{
		"compare_title":   "compare_title.md",
		"compare_summary": "compare_summary.md",
		"compare_new":     "compare_new.md",
		"compare_stale":   "compare_stale.md",
		"compare_skipped": "compare_skipped.md",
	}
	return renderTemplate("compare", "compare.md", partials, c)
}

// RenderMerge renders the Merge report to a markdown string.
func RenderMerge(m *Merge) string {
	partials := map[string]string{
		"merge_summary": "merge_summary.md",
	}
	return renderTemplate("merge", "merge.md", partials, m)
}

// RenderGenerate renders the Generate report to a markdown string.
func RenderGenerate(g *Generate) string {
	partials := map[string]string{
		"merge_summary":       "merge_summary.md",
		"generate_enrichment": "generate_enrichment.md",
	}
	return renderTemplate("generate", "generate.md", partials, g)
}

// RenderMissing renders the Missing report to a markdown string.
func RenderMissing(m *Missing) string {
	partials := map[string]string{
		"merge_summary": "merge_summary.md",
	}
	return renderTemplate("missing", "missing.md", partials, m)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
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
