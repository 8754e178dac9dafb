package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowform/flowform-go/pkg/models"
)

func TestComputeVisibility_StaticHidden(t *testing.T) {
	evaluator := NewEvaluator()

	fields := []models.FieldConfig{
		{FieldName: "visible_field"},
		{FieldName: "hidden_field", Hidden: true},
	}

	visible := evaluator.ComputeVisibility(fields, models.FormSnapshot{})

	assert.True(t, visible["visible_field"])
	assert.False(t, visible["hidden_field"])
}

func TestComputeVisibility_ConditionOverridesHidden(t *testing.T) {
	evaluator := NewEvaluator()

	fields := []models.FieldConfig{{
		FieldName:        "state",
		Hidden:           true,
		Condition1:       `country == "US"`,
		Condition1Action: "show",
	}}

	visible := evaluator.ComputeVisibility(fields, models.FormSnapshot{"country": "US", "state": nil})
	assert.True(t, visible["state"])

	visible = evaluator.ComputeVisibility(fields, models.FormSnapshot{"country": "DE", "state": nil})
	assert.False(t, visible["state"])
}

func TestComputeVisibility_SecondConditionANDs(t *testing.T) {
	evaluator := NewEvaluator()

	fields := []models.FieldConfig{{
		FieldName:        "state",
		Hidden:           true,
		Condition1:       `country == "US"`,
		Condition1Action: "show",
		Condition2:       `subscribed == true`,
		Condition2Action: "show",
	}}

	state := models.FormSnapshot{"country": "US", "subscribed": true, "state": nil}
	assert.True(t, evaluator.ComputeVisibility(fields, state)["state"])

	state["subscribed"] = false
	assert.False(t, evaluator.ComputeVisibility(fields, state)["state"])
}

func TestComputeVisibility_NonShowActionIgnored(t *testing.T) {
	evaluator := NewEvaluator()

	fields := []models.FieldConfig{{
		FieldName:        "notes",
		Condition1:       `country == "US"`,
		Condition1Action: "require",
	}}

	visible := evaluator.ComputeVisibility(fields, models.FormSnapshot{"country": "DE", "notes": nil})
	assert.True(t, visible["notes"], "conditions with other actions must not affect visibility")
}

func TestComputeVisibility_BooleanConnectives(t *testing.T) {
	evaluator := NewEvaluator()

	fields := []models.FieldConfig{{
		FieldName:        "discount_code",
		Hidden:           true,
		Condition1:       `plan == "pro" || (plan == "team" && seats > 5)`,
		Condition1Action: "show",
	}}

	shown := evaluator.ComputeVisibility(fields, models.FormSnapshot{
		"plan": "team", "seats": 10, "discount_code": nil,
	})
	assert.True(t, shown["discount_code"])

	hidden := evaluator.ComputeVisibility(fields, models.FormSnapshot{
		"plan": "team", "seats": 2, "discount_code": nil,
	})
	assert.False(t, hidden["discount_code"])
}

func TestComputeVisibility_BrokenConditionYieldsFalse(t *testing.T) {
	evaluator := NewEvaluator()

	fields := []models.FieldConfig{{
		FieldName:        "broken",
		Condition1:       `country ===`,
		Condition1Action: "show",
	}}

	visible := evaluator.ComputeVisibility(fields, models.FormSnapshot{"country": "US", "broken": nil})
	assert.False(t, visible["broken"])
}

func TestComputeVisibility_NonBooleanConditionYieldsFalse(t *testing.T) {
	evaluator := NewEvaluator()

	fields := []models.FieldConfig{{
		FieldName:        "f",
		Condition1:       `country`,
		Condition1Action: "show",
	}}

	visible := evaluator.ComputeVisibility(fields, models.FormSnapshot{"country": "US", "f": nil})
	assert.False(t, visible["f"])
}

type recordingSink struct {
	calls map[string]bool
}

func (s *recordingSink) SetVisible(fieldName string, visible bool) {
	if s.calls == nil {
		s.calls = make(map[string]bool)
	}

	s.calls[fieldName] = visible
}

func TestApplyVisibility_PushesToSink(t *testing.T) {
	evaluator := NewEvaluator()
	sink := &recordingSink{}

	fields := []models.FieldConfig{
		{FieldName: "a"},
		{FieldName: "b", Hidden: true},
	}

	visible := evaluator.ApplyVisibility(fields, models.FormSnapshot{"a": "x", "b": nil}, sink)

	assert.Equal(t, visible, sink.calls)
	assert.True(t, sink.calls["a"])
	assert.False(t, sink.calls["b"])
}
