package render

import (
	"encoding/json"
	"io"

	schemadiff "github.com/perangel/schema-diff"
)

// JSON renders the structured result of a report. The output decodes back
// into an equal schemadiff.Result.
type JSON struct {
	Indent string
}

// ContentType implements Renderer.
func (j *JSON) ContentType() string {
	return "application/json"
}

// Render implements Renderer.
func (j *JSON) Render(w io.Writer, report *schemadiff.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", j.Indent)
	return enc.Encode(report.Result)
}
