// Package render turns comparison reports into terminal text, HTML or JSON.
package render

import (
	"fmt"
	"io"
	"sort"

	schemadiff "github.com/perangel/schema-diff"
)

// Report formats
const (
	FormatTerminal = "terminal"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Renderer writes a report to w. Renderers never modify the report.
type Renderer interface {
	Render(w io.Writer, report *schemadiff.Report) error
	ContentType() string
}

// ForFormat returns the renderer for a format name.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case FormatTerminal, "":
		return &Terminal{}, nil
	case FormatHTML:
		return &HTML{}, nil
	case FormatJSON:
		return &JSON{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid report format. Must be one of `terminal`, `html` or `json`", format)
	}
}

// tableNames returns the tables of the columns diff in sorted order.
func tableNames(columns map[string]schemadiff.TableColumnDiff) []string {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// section is a keyed category of a result, in report order.
type section struct {
	Title string
	Diff  schemadiff.ObjectDiff
}

func objectSections(r *schemadiff.Result) []section {
	return []section{
		{Title: "Indexes", Diff: r.Indexes},
		{Title: "Foreign keys", Diff: r.ForeignKeys},
		{Title: "Policies", Diff: r.Policies},
		{Title: "Functions", Diff: r.Functions},
		{Title: "Triggers", Diff: r.Triggers},
	}
}

func (s section) empty() bool {
	return len(s.Diff.OnlyInA) == 0 && len(s.Diff.OnlyInB) == 0 && len(s.Diff.Changed) == 0
}
