package render

import (
	"html/template"
	"io"
	"strings"

	schemadiff "github.com/perangel/schema-diff"
)

// HTML renders a report as a standalone HTML page.
type HTML struct{}

type htmlTable struct {
	Name string
	Diff schemadiff.TableColumnDiff
}

type htmlView struct {
	Result   *schemadiff.Result
	Stats    schemadiff.Stats
	Columns  []htmlTable
	Sections []section
	Summary  []schemadiff.CategoryStats
	Duration string
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Schema diff: {{.Result.LabelA}} vs {{.Result.LabelB}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; vertical-align: top; }
.a { color: #b00020; }
.b { color: #1b7f3b; }
.changed { color: #a66b00; }
code { white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Schema diff: <span class="a">{{.Result.LabelA}}</span> vs <span class="b">{{.Result.LabelB}}</span></h1>
<p>{{.Stats.Total}} differences, {{.Stats.TablesCommon}} tables in common.{{if .Duration}} Compared in {{.Duration}}.{{end}}</p>

<h2>Summary</h2>
<table>
<tr><th>Category</th><th>Only in {{.Result.LabelA}}</th><th>Only in {{.Result.LabelB}}</th><th>Changed</th></tr>
{{range .Summary}}<tr><td>{{.Category}}</td><td>{{.OnlyInA}}</td><td>{{.OnlyInB}}</td><td>{{.Changed}}</td></tr>
{{end}}</table>

<h2>Tables</h2>
{{if or .Result.Tables.OnlyInA .Result.Tables.OnlyInB}}<ul>
{{range .Result.Tables.OnlyInA}}<li class="a">{{.}} (only in {{$.Result.LabelA}})</li>
{{end}}{{range .Result.Tables.OnlyInB}}<li class="b">{{.}} (only in {{$.Result.LabelB}})</li>
{{end}}</ul>{{else}}<p>No differences.</p>{{end}}

<h2>Columns</h2>
{{range .Columns}}<h3>{{.Name}}</h3>
<ul>
{{range .Diff.OnlyInA}}<li class="a">{{.}} (only in {{$.Result.LabelA}})</li>
{{end}}{{range .Diff.OnlyInB}}<li class="b">{{.}} (only in {{$.Result.LabelB}})</li>
{{end}}</ul>
{{if .Diff.Changed}}<table>
<tr><th>Column</th><th>Field</th><th>{{$.Result.LabelA}}</th><th>{{$.Result.LabelB}}</th></tr>
{{range $c := .Diff.Changed}}{{range .Differences}}<tr><td class="changed">{{$c.Column}}</td><td>{{.Field}}</td><td><code>{{.ValueA}}</code></td><td><code>{{.ValueB}}</code></td></tr>
{{end}}{{end}}</table>{{end}}
{{else}}<p>No differences.</p>
{{end}}
<h2>Enums</h2>
{{if or .Result.Enums.OnlyInA .Result.Enums.OnlyInB .Result.Enums.Changed}}<ul>
{{range .Result.Enums.OnlyInA}}<li class="a">{{.}} (only in {{$.Result.LabelA}})</li>
{{end}}{{range .Result.Enums.OnlyInB}}<li class="b">{{.}} (only in {{$.Result.LabelB}})</li>
{{end}}</ul>
{{if .Result.Enums.Changed}}<table>
<tr><th>Enum</th><th>{{.Result.LabelA}}</th><th>{{.Result.LabelB}}</th></tr>
{{range .Result.Enums.Changed}}<tr><td class="changed">{{.Name}}</td><td>{{join .ValuesA ", "}}</td><td>{{join .ValuesB ", "}}</td></tr>
{{end}}</table>{{end}}{{else}}<p>No differences.</p>{{end}}

{{range .Sections}}<h2>{{.Title}}</h2>
{{if or .Diff.OnlyInA .Diff.OnlyInB .Diff.Changed}}<ul>
{{range .Diff.OnlyInA}}<li class="a">{{.}} (only in {{$.Result.LabelA}})</li>
{{end}}{{range .Diff.OnlyInB}}<li class="b">{{.}} (only in {{$.Result.LabelB}})</li>
{{end}}</ul>
{{if .Diff.Changed}}<table>
<tr><th>Key</th><th>{{$.Result.LabelA}}</th><th>{{$.Result.LabelB}}</th></tr>
{{range .Diff.Changed}}<tr><td class="changed">{{.Key}}</td><td><code>{{.ValueA}}</code></td><td><code>{{.ValueB}}</code></td></tr>
{{end}}</table>{{end}}{{else}}<p>No differences.</p>{{end}}
{{end}}</body>
</html>
`))

// ContentType implements Renderer.
func (h *HTML) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements Renderer.
func (h *HTML) Render(w io.Writer, report *schemadiff.Report) error {
	view := htmlView{
		Result:   report.Result,
		Stats:    report.Stats,
		Sections: objectSections(report.Result),
		Summary:  report.Stats.Categories(),
	}
	if report.Duration > 0 {
		view.Duration = report.Duration.String()
	}
	for _, name := range tableNames(report.Result.Columns) {
		view.Columns = append(view.Columns, htmlTable{Name: name, Diff: report.Result.Columns[name]})
	}
	return htmlTemplate.Execute(w, view)
}
