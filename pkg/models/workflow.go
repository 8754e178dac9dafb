package models

// WorkflowRef identifies a runnable job definition. Immutable once fetched.
type WorkflowRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Organization is a node in the tenant hierarchy.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
