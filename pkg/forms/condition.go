// Package forms evaluates conditional visibility and validation rules for
// dynamically configured form fields.
package forms

import (
	"log/slog"

	"github.com/google/cel-go/cel"

	"github.com/flowform/flowform-go/pkg/log"
	"github.com/flowform/flowform-go/pkg/models"
)

// Evaluator computes field visibility from boolean condition expressions
// and validates field values against their configuration.
//
// Conditions are compiled with CEL, with every field of the current form
// snapshot declared as a variable. Binding values through the interpreter
// instead of splicing them into the expression text keeps field values from
// ever being parsed as code.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{logger: log.WithModule("forms")}
}

// evalCondition evaluates one boolean expression against the snapshot. Any
// compile or evaluation failure is logged and yields false.
func (e *Evaluator) evalCondition(expression string, state models.FormSnapshot) bool {
	opts := make([]cel.EnvOption, 0, len(state))
	for name := range state {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		e.logger.Warn("Condition environment setup failed", "condition", expression, "error", err)
		return false
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		e.logger.Warn("Condition does not compile", "condition", expression, "error", issues.Err())
		return false
	}

	program, err := env.Program(ast)
	if err != nil {
		e.logger.Warn("Condition program construction failed", "condition", expression, "error", err)
		return false
	}

	out, _, err := program.Eval(map[string]any(state))
	if err != nil {
		e.logger.Warn("Condition evaluation failed", "condition", expression, "error", err)
		return false
	}

	result, ok := out.Value().(bool)
	if !ok {
		e.logger.Warn("Condition did not evaluate to a boolean", "condition", expression)
		return false
	}

	return result
}
