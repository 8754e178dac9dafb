package models

// Field types with dedicated validation behavior.
const (
	FieldTypeEmail = "email"
)

// Condition actions recognized by the visibility evaluator.
const (
	ConditionActionShow = "show"
)

// FieldConfig is the declarative description of one form field. It is
// constructed from remote configuration and never mutated by this library.
type FieldConfig struct {
	FieldName        string `json:"field_name"`
	FieldDisplayName string `json:"field_displayname"`
	Type             string `json:"type"`
	Required         bool   `json:"required"`
	MinLength        int    `json:"min_length"`
	MaxLength        int    `json:"max_length"`
	Hidden           bool   `json:"hidden"`
	Condition1       string `json:"condition_1"`
	Condition1Action string `json:"condition_1_action"`
	Condition2       string `json:"condition_2"`
	Condition2Action string `json:"condition_2_action"`
}

// FormSnapshot maps field names to their current values (string, bool or
// nil). It is read fresh from the provider at evaluation time, never cached.
type FormSnapshot map[string]any

// FormStateProvider reads the live form values. Implementations wrap
// whatever UI toolkit holds the fields.
type FormStateProvider interface {
	Snapshot() FormSnapshot
}

// VisibilitySink receives computed show/hide decisions per field.
type VisibilitySink interface {
	SetVisible(fieldName string, visible bool)
}
