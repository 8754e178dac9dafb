// Package models defines the core domain models for the FlowForm client.
package models

import "strings"

// ExecutionHandle identifies a remote workflow execution for the duration
// of one submission. It is not persisted beyond the call.
type ExecutionHandle struct {
	ExecutionID string `json:"executionId"`
}

// ConductorResult carries the orchestrator-level outcome of an execution.
type ConductorResult struct {
	Output map[string]any `json:"output"`
	Errors []string       `json:"errors"`
	Status string         `json:"status"`
}

// ExecutionResult is the canonical shape returned to callers and persisted
// in the result cache. Output is never nil in a returned value.
type ExecutionResult struct {
	Conductor ConductorResult `json:"conductor"`
}

// ExecutionState is the raw status payload returned by the execution query.
type ExecutionState struct {
	ID                 string           `json:"id"`
	Status             string           `json:"status"`
	Conductor          *ConductorResult `json:"conductor"`
	NumSuccessfulTasks int              `json:"numSuccessfulTasks"`
}

// terminalStatuses holds the lower-cased terminal set. Any status outside
// this set means the execution is still running.
var terminalStatuses = map[string]struct{}{
	"completed": {},
	"success":   {},
	"succeeded": {},
	"failed":    {},
	"error":     {},
}

// IsTerminalStatus reports whether a status string marks an execution that
// will not progress further. Matching is case-insensitive.
func IsTerminalStatus(status string) bool {
	_, ok := terminalStatuses[strings.ToLower(status)]
	return ok
}
