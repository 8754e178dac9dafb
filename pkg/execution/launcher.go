package execution

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowform/flowform-go/pkg/cache"
	"github.com/flowform/flowform-go/pkg/log"
	"github.com/flowform/flowform-go/pkg/models"
	"github.com/flowform/flowform-go/pkg/otelhelper"
)

// Launcher starts remote executions and waits for their results, consulting
// the result cache before going to the network.
type Launcher struct {
	exec         Executor
	poller       *Poller
	results      *cache.ResultCache
	orgID        string
	disableCache bool
	logger       *slog.Logger
	tracer       trace.Tracer
}

// NewLauncher wires a launcher. disableCache is the global opt-out; per-call
// options can still override it in either direction.
func NewLauncher(exec Executor, poller *Poller, results *cache.ResultCache, orgID string, disableCache bool) *Launcher {
	return &Launcher{
		exec:         exec,
		poller:       poller,
		results:      results,
		orgID:        orgID,
		disableCache: disableCache,
		logger:       log.WithModule("launcher"),
		tracer:       otel.Tracer("flowform/execution"),
	}
}

// SetOrganization switches the organization identity used for launches.
func (l *Launcher) SetOrganization(orgID string) {
	l.orgID = orgID
}

type launchOptions struct {
	ignoreCache *bool
	noCache     bool
	onProgress  ProgressFunc
	inputSchema string
}

// LaunchOption configures one Launch call.
type LaunchOption func(*launchOptions)

// WithIgnoreCache is the explicit per-call override: true disables the
// cache for this call, false forces it on regardless of other settings.
func WithIgnoreCache(ignore bool) LaunchOption {
	return func(o *launchOptions) {
		o.ignoreCache = &ignore
	}
}

// WithoutCache opts this call out of the cache unless an explicit override
// is also present.
func WithoutCache() LaunchOption {
	return func(o *launchOptions) {
		o.noCache = true
	}
}

// WithProgress registers a progress callback invoked on each successful
// poll with the observed status and completed-task count.
func WithProgress(fn ProgressFunc) LaunchOption {
	return func(o *launchOptions) {
		o.onProgress = fn
	}
}

// WithInputSchema validates the input payload against the given JSON
// schema before launching. Violations fail with *InputValidationError.
func WithInputSchema(schemaJSON string) LaunchOption {
	return func(o *launchOptions) {
		o.inputSchema = schemaJSON
	}
}

// cacheEnabled resolves the effective cache-use flag. Priority: explicit
// per-call override, then per-call opt-out, then the global opt-out, then
// enabled.
func (l *Launcher) cacheEnabled(o *launchOptions) bool {
	if o.ignoreCache != nil {
		return !*o.ignoreCache
	}

	if o.noCache {
		return false
	}

	return !l.disableCache
}

// Launch runs workflowID with input and returns the terminal result. When
// the cache holds a result for the same (workflowID, input) fingerprint,
// that result is returned without any network call. A fresh result is
// cached best-effort after a successful terminal poll, never before.
func (l *Launcher) Launch(ctx context.Context, workflowID string, input map[string]any, opts ...LaunchOption) (*models.ExecutionResult, error) {
	options := &launchOptions{}
	for _, opt := range opts {
		opt(options)
	}

	ctx, span := otelhelper.StartSpan(ctx, l.tracer, "execution.launch",
		attribute.String(otelhelper.WorkflowIDKey, workflowID),
		attribute.String(otelhelper.OrganizationIDKey, l.orgID),
	)
	defer span.End()

	key := cache.Fingerprint(StartWorkflowOperation, launchFingerprintPayload(workflowID, input))
	useCache := l.cacheEnabled(options)

	if useCache {
		if cached := l.results.Get(ctx, key); cached != nil {
			l.logger.DebugContext(ctx, "Returning cached execution result", "workflowId", workflowID)
			span.SetAttributes(attribute.Bool("flowform.cache.hit", true))

			return cached, nil
		}
	}

	if options.inputSchema != "" {
		if err := validateInput(workflowID, options.inputSchema, input); err != nil {
			otelhelper.SetError(span, err)
			return nil, err
		}
	}

	handle, err := l.start(ctx, workflowID, input)
	if err != nil {
		otelhelper.SetError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String(otelhelper.ExecutionIDKey, handle.ExecutionID))
	l.logger.InfoContext(ctx, "Execution started",
		"workflowId", workflowID, "executionId", handle.ExecutionID)

	result, err := l.poller.Wait(ctx, handle.ExecutionID, options.onProgress)
	if err != nil {
		otelhelper.SetError(span, err)
		return nil, err
	}

	if useCache {
		l.results.Put(ctx, key, result)
	}

	return result, nil
}

func (l *Launcher) start(ctx context.Context, workflowID string, input map[string]any) (*models.ExecutionHandle, error) {
	data, err := l.exec.Execute(ctx, startWorkflowMutation, map[string]any{
		"id":    workflowID,
		"orgId": l.orgID,
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		StartWorkflow *models.ExecutionHandle `json:"startWorkflow"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	if payload.StartWorkflow == nil || payload.StartWorkflow.ExecutionID == "" {
		return nil, &LaunchError{WorkflowID: workflowID}
	}

	return payload.StartWorkflow, nil
}

// launchFingerprintPayload keys the cache on both job identity and input.
func launchFingerprintPayload(workflowID string, input map[string]any) map[string]any {
	return map[string]any{
		"workflowId": workflowID,
		"input":      input,
	}
}

func validateInput(workflowID, schemaJSON string, input map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(input),
	)
	if err != nil {
		return &InputValidationError{WorkflowID: workflowID, Violations: []string{err.Error()}}
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		violations = append(violations, violation.String())
	}

	return &InputValidationError{WorkflowID: workflowID, Violations: violations}
}
