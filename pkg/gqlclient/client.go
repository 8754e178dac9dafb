// Package gqlclient sends queries and mutations to the remote workflow
// platform's single RPC endpoint and normalizes its response shapes.
package gqlclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowform/flowform-go/pkg/log"
	"github.com/flowform/flowform-go/pkg/otelhelper"
)

const defaultTimeout = 30 * time.Second

// request is the wire shape accepted by the endpoint.
type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// response is the wire shape returned by the endpoint.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Client executes operations against one endpoint. It performs no retries;
// retry policy belongs to higher layers where it is semantically safe.
type Client struct {
	http     *resty.Client
	endpoint string
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the given endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		endpoint: endpoint,
		logger:   log.WithModule("gqlclient"),
		tracer:   otel.Tracer("flowform/gqlclient"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Execute posts one operation and returns the raw data payload. It fails
// with *TransportError on a non-2xx status and with *RemoteError when the
// endpoint returned an errors list.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	requestID := uuid.New().String()[:8]

	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "gqlclient.execute",
		attribute.String(otelhelper.RequestIDKey, requestID),
	)
	defer span.End()

	var result response

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request{Query: query, Variables: variables}).
		SetResult(&result).
		Post(c.endpoint)
	if err != nil {
		otelhelper.SetError(span, err)
		return nil, err
	}

	if resp.IsError() {
		terr := &TransportError{StatusCode: resp.StatusCode(), Body: resp.String()}
		c.logger.ErrorContext(ctx, "Query endpoint returned transport error",
			"requestId", requestID, "status", resp.StatusCode())
		otelhelper.SetError(span, terr)

		return nil, terr
	}

	// A 2xx body may still carry an errors list. The full payload is kept
	// on the error value for caller-side logging.
	if len(result.Errors) > 0 {
		rerr := &RemoteError{Errors: result.Errors}
		c.logger.ErrorContext(ctx, "Query endpoint returned errors",
			"requestId", requestID, "message", rerr.Error(), "count", len(result.Errors))
		otelhelper.SetError(span, rerr)

		return nil, rerr
	}

	c.logger.DebugContext(ctx, "Query completed", "requestId", requestID)

	return result.Data, nil
}
