// Package renderer turns reports into display tables, and tables into
// markdown or plain text.
//
// Reports know nothing about column names, this package owns them.
package renderer

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/template"

	"github.com/olekukonko/tablewriter"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are available to every template.
var funcs = template.FuncMap{
	"join": func(cells []string) string {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		return strings.Join(escaped, " | ")
	},
}

// document is a titled sequence of tables.
type document struct {
	Title  string
	Tables []Table
}

// Markdown renders the tables as a markdown document.
func Markdown(title string, tables ...Table) string {
	partials := map[string]string{
		"table": "table.md",
	}
	return renderTemplate("document", "document.md", partials, document{Title: title, Tables: tables})
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
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

// Text writes the tables as plain text tables.
func Text(w io.Writer, tables ...Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeText(w, t); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, t Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return err
		}
	}
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No data.")
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	alignment := make([]int, len(t.Align))
	for i, a := range t.Align {
		alignment[i] = tablewriter.ALIGN_LEFT
		if a.IsRight() {
			alignment[i] = tablewriter.ALIGN_RIGHT
		}
	}
	tw.SetColumnAlignment(alignment)
	tw.AppendBulk(t.Rows)
	tw.Render()
	return nil
}
