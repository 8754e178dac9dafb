package forms

import (
	"context"
	"log/slog"

	"github.com/flowform/flowform-go/pkg/execution"
	"github.com/flowform/flowform-go/pkg/log"
	"github.com/flowform/flowform-go/pkg/models"
)

// Runner starts a workflow and waits for its result. Satisfied by
// execution.Launcher.
type Runner interface {
	Launch(ctx context.Context, workflowID string, input map[string]any, opts ...execution.LaunchOption) (*models.ExecutionResult, error)
}

// Hooks receive the outcome of a submission. When OnError is set, failures
// are delivered through it and Submit returns nil; without it the error is
// returned directly.
type Hooks struct {
	OnSuccess func(*models.ExecutionResult)
	OnError   func(error)
}

// Submitter drives the full submission flow: snapshot the form, resolve
// visibility, validate, and launch the workflow with the visible values.
type Submitter struct {
	evaluator *Evaluator
	provider  models.FormStateProvider
	sink      models.VisibilitySink
	runner    Runner
	logger    *slog.Logger
}

// NewSubmitter wires a submitter. sink may be nil when the caller applies
// visibility itself.
func NewSubmitter(evaluator *Evaluator, provider models.FormStateProvider, sink models.VisibilitySink, runner Runner) *Submitter {
	return &Submitter{
		evaluator: evaluator,
		provider:  provider,
		sink:      sink,
		runner:    runner,
		logger:    log.WithModule("submitter"),
	}
}

// Submit validates the current form state and, when valid, launches
// workflowID with the visible field values as input.
func (s *Submitter) Submit(ctx context.Context, workflowID string, fields []models.FieldConfig, hooks Hooks, opts ...execution.LaunchOption) error {
	state := s.provider.Snapshot()
	visible := s.evaluator.ApplyVisibility(fields, state, s.sink)

	validation := Validate(state, fields, visible)
	if !validation.IsValid {
		s.logger.InfoContext(ctx, "Submission rejected by validation",
			"workflowId", workflowID, "invalidFields", len(validation.Errors))

		return s.fail(hooks, &ValidationError{Result: validation})
	}

	result, err := s.runner.Launch(ctx, workflowID, submissionInput(fields, state, visible), opts...)
	if err != nil {
		s.logger.ErrorContext(ctx, "Submission launch failed", "workflowId", workflowID, "error", err)
		return s.fail(hooks, err)
	}

	if hooks.OnSuccess != nil {
		hooks.OnSuccess(result)
	}

	return nil
}

func (s *Submitter) fail(hooks Hooks, err error) error {
	if hooks.OnError != nil {
		hooks.OnError(err)
		return nil
	}

	return err
}

// submissionInput collects the values of visible fields.
func submissionInput(fields []models.FieldConfig, state models.FormSnapshot, visible map[string]bool) map[string]any {
	input := make(map[string]any, len(fields))

	for _, field := range fields {
		if !visible[field.FieldName] {
			continue
		}

		if value, ok := state[field.FieldName]; ok {
			input[field.FieldName] = value
		}
	}

	return input
}
