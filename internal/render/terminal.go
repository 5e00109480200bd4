package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	schemadiff "github.com/perangel/schema-diff"
)

// Terminal renders a report as colored text followed by a summary table.
type Terminal struct {
	// NoColor disables color regardless of the terminal.
	NoColor bool
}

type palette struct {
	header  *color.Color
	removed *color.Color
	added   *color.Color
	changed *color.Color
	muted   *color.Color
}

func (t *Terminal) palette() palette {
	p := palette{
		header:  color.New(color.Bold, color.FgCyan),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		changed: color.New(color.FgYellow),
		muted:   color.New(color.Faint),
	}
	if t.NoColor {
		for _, c := range []*color.Color{p.header, p.removed, p.added, p.changed, p.muted} {
			c.DisableColor()
		}
	}
	return p
}

// ContentType implements Renderer.
func (t *Terminal) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render implements Renderer.
func (t *Terminal) Render(w io.Writer, report *schemadiff.Report) error {
	bw := bufio.NewWriter(w)
	p := t.palette()
	r := report.Result

	fmt.Fprintf(bw, "%s %s %s\n", p.header.Sprint("Schema diff:"), p.removed.Sprint(r.LabelA), p.added.Sprint(r.LabelB))
	fmt.Fprintf(bw, "%s\n\n", p.muted.Sprintf("  - only in %s, + only in %s, ~ changed", r.LabelA, r.LabelB))

	fmt.Fprintln(bw, p.header.Sprint("Tables"))
	writeKeys(bw, p, r.Tables.OnlyInA, r.Tables.OnlyInB)
	fmt.Fprintf(bw, "  %s\n\n", p.muted.Sprintf("%d in common", len(r.Tables.Common)))

	fmt.Fprintln(bw, p.header.Sprint("Columns"))
	if len(r.Columns) == 0 {
		fmt.Fprintf(bw, "  %s\n", p.muted.Sprint("no differences"))
	}
	for _, table := range tableNames(r.Columns) {
		d := r.Columns[table]
		fmt.Fprintf(bw, "  %s\n", table)
		for _, c := range d.OnlyInA {
			fmt.Fprintf(bw, "    %s\n", p.removed.Sprint("- "+c))
		}
		for _, c := range d.OnlyInB {
			fmt.Fprintf(bw, "    %s\n", p.added.Sprint("+ "+c))
		}
		for _, c := range d.Changed {
			fmt.Fprintf(bw, "    %s\n", p.changed.Sprint("~ "+c.Column))
			for _, f := range c.Differences {
				fmt.Fprintf(bw, "        %s: %s -> %s\n", f.Field, p.removed.Sprint(quote(f.ValueA)), p.added.Sprint(quote(f.ValueB)))
			}
		}
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, p.header.Sprint("Enums"))
	writeKeys(bw, p, r.Enums.OnlyInA, r.Enums.OnlyInB)
	for _, e := range r.Enums.Changed {
		fmt.Fprintf(bw, "  %s\n", p.changed.Sprint("~ "+e.Name))
		fmt.Fprintf(bw, "      %s: %s\n", r.LabelA, strings.Join(e.ValuesA, ", "))
		fmt.Fprintf(bw, "      %s: %s\n", r.LabelB, strings.Join(e.ValuesB, ", "))
	}
	if len(r.Enums.OnlyInA)+len(r.Enums.OnlyInB)+len(r.Enums.Changed) == 0 {
		fmt.Fprintf(bw, "  %s\n", p.muted.Sprint("no differences"))
	}
	fmt.Fprintln(bw)

	for _, s := range objectSections(r) {
		fmt.Fprintln(bw, p.header.Sprint(s.Title))
		if s.empty() {
			fmt.Fprintf(bw, "  %s\n\n", p.muted.Sprint("no differences"))
			continue
		}
		writeKeys(bw, p, s.Diff.OnlyInA, s.Diff.OnlyInB)
		for _, c := range s.Diff.Changed {
			fmt.Fprintf(bw, "  %s\n", p.changed.Sprint("~ "+c.Key))
			fmt.Fprintf(bw, "      %s: %s\n", r.LabelA, c.ValueA)
			fmt.Fprintf(bw, "      %s: %s\n", r.LabelB, c.ValueB)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, p.header.Sprint("Summary"))
	writeSummary(bw, report)

	return bw.Flush()
}

func writeKeys(w io.Writer, p palette, onlyInA, onlyInB []string) {
	for _, k := range onlyInA {
		fmt.Fprintf(w, "  %s\n", p.removed.Sprint("- "+k))
	}
	for _, k := range onlyInB {
		fmt.Fprintf(w, "  %s\n", p.added.Sprint("+ "+k))
	}
}

func writeSummary(w io.Writer, report *schemadiff.Report) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Category", "Only in " + report.Result.LabelA, "Only in " + report.Result.LabelB, "Changed"})
	for _, c := range report.Stats.Categories() {
		table.Append([]string{c.Category, strconv.Itoa(c.OnlyInA), strconv.Itoa(c.OnlyInB), strconv.Itoa(c.Changed)})
	}
	table.SetFooter([]string{"Total", "", "", strconv.Itoa(report.Stats.Total())})
	table.Render()
}

func quote(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
