package execution

import "fmt"

// LaunchError reports a launch response that carried no execution identity.
type LaunchError struct {
	WorkflowID string
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch of workflow %s returned no execution id", e.WorkflowID)
}

// ExecutionNotFoundError reports a handle that never became queryable
// within the not-found grace period.
type ExecutionNotFoundError struct {
	ExecutionID string
	Attempts    int
}

func (e *ExecutionNotFoundError) Error() string {
	return fmt.Sprintf("execution %s not found after %d attempts", e.ExecutionID, e.Attempts)
}

// PollTimeoutError reports exhaustion of the main polling budget without a
// terminal state.
type PollTimeoutError struct {
	ExecutionID string
	Attempts    int
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("execution %s did not reach a terminal state after %d polling attempts", e.ExecutionID, e.Attempts)
}

// InputValidationError reports an input payload rejected by the workflow's
// input schema before launch.
type InputValidationError struct {
	WorkflowID string
	Violations []string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("input for workflow %s failed schema validation: %v", e.WorkflowID, e.Violations)
}
