package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowform/flowform-go/pkg/execution"
	"github.com/flowform/flowform-go/pkg/models"
)

type staticProvider struct {
	state models.FormSnapshot
}

func (p *staticProvider) Snapshot() models.FormSnapshot { return p.state }

type recordingRunner struct {
	calls  int
	input  map[string]any
	result *models.ExecutionResult
	err    error
}

func (r *recordingRunner) Launch(_ context.Context, _ string, input map[string]any, _ ...execution.LaunchOption) (*models.ExecutionResult, error) {
	r.calls++
	r.input = input

	return r.result, r.err
}

func submitFields() []models.FieldConfig {
	return []models.FieldConfig{
		{FieldName: "name", FieldDisplayName: "Name", Required: true},
		{
			FieldName:        "state",
			FieldDisplayName: "State",
			Required:         true,
			Hidden:           true,
			Condition1:       `country == "US"`,
			Condition1Action: "show",
		},
		{FieldName: "country", FieldDisplayName: "Country", Required: true},
	}
}

func TestSubmit_ValidFormLaunchesVisibleValues(t *testing.T) {
	provider := &staticProvider{state: models.FormSnapshot{
		"name":    "Alice",
		"country": "DE",
		"state":   nil,
	}}
	runner := &recordingRunner{result: &models.ExecutionResult{
		Conductor: models.ConductorResult{Output: map[string]any{"ok": true}, Status: "COMPLETED"},
	}}
	sink := &recordingSink{}
	submitter := NewSubmitter(NewEvaluator(), provider, sink, runner)

	var got *models.ExecutionResult

	err := submitter.Submit(t.Context(), "J1", submitFields(), Hooks{
		OnSuccess: func(result *models.ExecutionResult) { got = result },
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, 1, runner.calls)

	// The hidden state field is excluded from the submitted input.
	assert.Equal(t, map[string]any{"name": "Alice", "country": "DE"}, runner.input)
	assert.False(t, sink.calls["state"])
}

func TestSubmit_HiddenRequiredFieldDoesNotBlock(t *testing.T) {
	// state is required but hidden for non-US countries.
	provider := &staticProvider{state: models.FormSnapshot{
		"name":    "Alice",
		"country": "DE",
		"state":   nil,
	}}
	runner := &recordingRunner{result: &models.ExecutionResult{}}
	submitter := NewSubmitter(NewEvaluator(), provider, nil, runner)

	err := submitter.Submit(t.Context(), "J1", submitFields(), Hooks{})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
}

func TestSubmit_InvalidFormCallsErrorHook(t *testing.T) {
	provider := &staticProvider{state: models.FormSnapshot{
		"name":    "",
		"country": "US",
		"state":   nil,
	}}
	runner := &recordingRunner{}
	submitter := NewSubmitter(NewEvaluator(), provider, nil, runner)

	var hookErr error

	err := submitter.Submit(t.Context(), "J1", submitFields(), Hooks{
		OnError: func(e error) { hookErr = e },
	})
	require.NoError(t, err, "failures go through the hook when one is present")

	var validationErr *ValidationError
	require.ErrorAs(t, hookErr, &validationErr)
	assert.Contains(t, validationErr.Result.Errors, "name")
	assert.Contains(t, validationErr.Result.Errors, "state")
	assert.Equal(t, 0, runner.calls)
}

func TestSubmit_InvalidFormWithoutHookReturnsError(t *testing.T) {
	provider := &staticProvider{state: models.FormSnapshot{
		"name":    "",
		"country": "DE",
		"state":   nil,
	}}
	submitter := NewSubmitter(NewEvaluator(), provider, nil, &recordingRunner{})

	err := submitter.Submit(t.Context(), "J1", submitFields(), Hooks{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSubmit_LaunchErrorGoesToHook(t *testing.T) {
	provider := &staticProvider{state: models.FormSnapshot{
		"name":    "Alice",
		"country": "DE",
		"state":   nil,
	}}
	launchErr := errors.New("endpoint unavailable")
	runner := &recordingRunner{err: launchErr}
	submitter := NewSubmitter(NewEvaluator(), provider, nil, runner)

	var hookErr error

	err := submitter.Submit(t.Context(), "J1", submitFields(), Hooks{
		OnError: func(e error) { hookErr = e },
	})
	require.NoError(t, err)
	assert.ErrorIs(t, hookErr, launchErr)
}
