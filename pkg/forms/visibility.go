package forms

import (
	"strings"

	"github.com/flowform/flowform-go/pkg/models"
)

// ComputeVisibility resolves the shown/hidden state of every field against
// the current snapshot. Precedence per field:
//
//  1. shown starts as the inverse of the static hidden flag;
//  2. condition_1 with action "show" replaces shown with its result,
//     overriding the hidden default;
//  3. condition_2 with action "show" ANDs its result into shown.
func (e *Evaluator) ComputeVisibility(fields []models.FieldConfig, state models.FormSnapshot) map[string]bool {
	visible := make(map[string]bool, len(fields))

	for _, field := range fields {
		shown := !field.Hidden

		if field.Condition1 != "" && strings.EqualFold(field.Condition1Action, models.ConditionActionShow) {
			shown = e.evalCondition(field.Condition1, state)
		}

		if field.Condition2 != "" && strings.EqualFold(field.Condition2Action, models.ConditionActionShow) {
			shown = shown && e.evalCondition(field.Condition2, state)
		}

		visible[field.FieldName] = shown
	}

	return visible
}

// ApplyVisibility computes visibility and pushes every decision to the
// sink, returning the computed map.
func (e *Evaluator) ApplyVisibility(fields []models.FieldConfig, state models.FormSnapshot, sink models.VisibilitySink) map[string]bool {
	visible := e.ComputeVisibility(fields, state)

	if sink != nil {
		for _, field := range fields {
			sink.SetVisible(field.FieldName, visible[field.FieldName])
		}
	}

	return visible
}
