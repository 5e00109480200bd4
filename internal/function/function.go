// Package function serves comparisons as an API Gateway proxy handler.
package function

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	schemadiff "github.com/perangel/schema-diff"
	"github.com/perangel/schema-diff/internal/render"
	"github.com/sirupsen/logrus"
)

// Handler compares a fixed pair of databases on each invocation.
type Handler struct {
	comparer *schemadiff.Comparer
	a, b     schemadiff.Source
	labelA   string
	labelB   string
	logger   *logrus.Entry
}

// NewHandler returns a Handler comparing a and b. The labels are used unless
// a request overrides them.
func NewHandler(comparer *schemadiff.Comparer, a, b schemadiff.Source, labelA, labelB string, logger *logrus.Logger) *Handler {
	return &Handler{
		comparer: comparer,
		a:        a,
		b:        b,
		labelA:   labelA,
		labelB:   labelB,
		logger:   logger.WithField("component", "function"),
	}
}

// Handle accepts the `format`, `labelA` and `labelB` query parameters.
// Failures are answered with a JSON error body; the returned error is always
// nil so API Gateway relays the response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	q := req.QueryStringParameters

	format := q["format"]
	if format == "" {
		format = render.FormatJSON
	}
	renderer, err := render.ForFormat(format)
	if err != nil {
		return errorResponse(http.StatusBadRequest, err), nil
	}
	if t, ok := renderer.(*render.Terminal); ok {
		t.NoColor = true
	}

	labelA, labelB := h.labelA, h.labelB
	if v := q["labelA"]; v != "" {
		labelA = v
	}
	if v := q["labelB"]; v != "" {
		labelB = v
	}

	log := h.logger.WithField("request_id", req.RequestContext.RequestID)
	report, err := h.comparer.Compare(ctx, h.a, h.b, labelA, labelB)
	if err != nil {
		log.WithError(err).Error("comparison failed")
		return errorResponse(http.StatusInternalServerError, err), nil
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, report); err != nil {
		log.WithError(err).Error("unable to render report")
		return errorResponse(http.StatusInternalServerError, err), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": renderer.ContentType()},
		Body:       buf.String(),
	}, nil
}

func errorResponse(status int, err error) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
