// Package execution launches remote workflow executions and polls them to
// completion under bounded retry budgets.
package execution

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowform/flowform-go/pkg/log"
	"github.com/flowform/flowform-go/pkg/models"
	"github.com/flowform/flowform-go/pkg/otelhelper"
)

// Executor sends one operation to the remote endpoint. Satisfied by
// gqlclient.Client.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
}

// ProgressFunc receives the status and completed-task count observed on
// each successful poll. Errors and panics inside the callback are
// swallowed; they never affect the poll loop.
type ProgressFunc func(status string, completedTasks int)

// Polling budgets. These values are part of the platform contract and must
// not drift: clients and server-side job retention are tuned against them.
const (
	maxPollAttempts       = 150
	pollInterval          = 2000 * time.Millisecond
	notFoundGraceAttempts = 5
	notFoundRetryInterval = 500 * time.Millisecond
	emptyOutputBudget     = 10
	emptyOutputInterval   = 2500 * time.Millisecond
	errorRetryInterval    = 1000 * time.Millisecond
)

// Poller repeatedly queries execution status until a terminal state is
// observed. Two budgets are tracked independently: the main attempt budget
// bounds "the job is slow", while the empty-output budget bounds "the job
// finished but its result payload lags". Each empty-output retry refunds
// one main attempt (floored at zero) so output races are not misreported
// as timeouts.
type Poller struct {
	exec   Executor
	logger *slog.Logger
	tracer trace.Tracer

	// sleep is replaceable in tests; the default waits on a timer or the
	// context, whichever fires first.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a poller over the given executor.
func NewPoller(exec Executor) *Poller {
	return &Poller{
		exec:   exec,
		logger: log.WithModule("poller"),
		tracer: otel.Tracer("flowform/execution"),
		sleep:  sleepContext,
	}
}

// Wait polls executionID until terminal and returns the canonical result.
// It fails with *ExecutionNotFoundError, *PollTimeoutError, or the
// propagated executor error once the relevant budget is exhausted.
func (p *Poller) Wait(ctx context.Context, executionID string, onProgress ProgressFunc) (*models.ExecutionResult, error) {
	ctx, span := otelhelper.StartSpan(ctx, p.tracer, "execution.wait",
		attribute.String(otelhelper.ExecutionIDKey, executionID),
	)
	defer span.End()

	attempts := 0
	emptyRetries := 0

	for attempts < maxPollAttempts {
		state, err := p.queryState(ctx, executionID)
		if err != nil {
			attempts++
			if attempts >= maxPollAttempts {
				otelhelper.SetError(span, err)
				return nil, err
			}

			p.logger.WarnContext(ctx, "Status query failed, retrying",
				"executionId", executionID, "attempt", attempts, "error", err)

			if err := p.sleep(ctx, errorRetryInterval); err != nil {
				return nil, err
			}

			continue
		}

		if state == nil {
			// The execution may not be queryable yet right after launch.
			if attempts < notFoundGraceAttempts {
				attempts++

				if err := p.sleep(ctx, notFoundRetryInterval); err != nil {
					return nil, err
				}

				continue
			}

			nfErr := &ExecutionNotFoundError{ExecutionID: executionID, Attempts: attempts + 1}
			otelhelper.SetError(span, nfErr)

			return nil, nfErr
		}

		notifyProgress(onProgress, state.Status, state.NumSuccessfulTasks)

		if !models.IsTerminalStatus(state.Status) {
			attempts++

			if err := p.sleep(ctx, pollInterval); err != nil {
				return nil, err
			}

			continue
		}

		if outputMissing(state.Conductor) && emptyRetries < emptyOutputBudget {
			emptyRetries++
			if attempts > 0 {
				attempts--
			}

			p.logger.DebugContext(ctx, "Terminal status but output not materialized, retrying",
				"executionId", executionID, "status", state.Status, "emptyRetries", emptyRetries)

			if err := p.sleep(ctx, emptyOutputInterval); err != nil {
				return nil, err
			}

			continue
		}

		result := buildResult(state)
		span.SetAttributes(
			attribute.String(otelhelper.ExecutionStatusKey, result.Conductor.Status),
			attribute.Int(otelhelper.PollAttemptKey, attempts),
		)
		p.logger.InfoContext(ctx, "Execution reached terminal state",
			"executionId", executionID, "status", result.Conductor.Status, "attempts", attempts)

		return result, nil
	}

	timeoutErr := &PollTimeoutError{ExecutionID: executionID, Attempts: attempts}
	otelhelper.SetError(span, timeoutErr)

	return nil, timeoutErr
}

// queryState returns nil with no error when the execution is absent from
// the response.
func (p *Poller) queryState(ctx context.Context, executionID string) (*models.ExecutionState, error) {
	data, err := p.exec.Execute(ctx, executionStatusQuery, map[string]any{"id": executionID})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Execution *models.ExecutionState `json:"execution"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	return payload.Execution, nil
}

func notifyProgress(onProgress ProgressFunc, status string, completedTasks int) {
	if onProgress == nil {
		return
	}

	defer func() {
		_ = recover()
	}()

	onProgress(status, completedTasks)
}

// outputMissing reports a terminal execution whose result payload has not
// materialized yet: no conductor block, a nil output, or an output with
// zero entries.
func outputMissing(conductor *models.ConductorResult) bool {
	return conductor == nil || len(conductor.Output) == 0
}

// buildResult assembles the canonical result from the last observed state.
// Output defaults to an empty object once the empty-output budget is spent;
// returning empty is a deliberate give-up policy, not a failure.
func buildResult(state *models.ExecutionState) *models.ExecutionResult {
	result := &models.ExecutionResult{
		Conductor: models.ConductorResult{
			Output: map[string]any{},
			Errors: []string{},
			Status: state.Status,
		},
	}

	if state.Conductor != nil {
		if state.Conductor.Output != nil {
			result.Conductor.Output = state.Conductor.Output
		}

		if state.Conductor.Errors != nil {
			result.Conductor.Errors = state.Conductor.Errors
		}

		if state.Conductor.Status != "" {
			result.Conductor.Status = state.Conductor.Status
		}
	}

	return result
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
