package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	payload := map[string]any{"x": 1, "name": "alpha"}

	first := Fingerprint("startWorkflow", payload)
	second := Fingerprint("startWorkflow", payload)

	assert.Equal(t, first, second)
}

func TestFingerprint_KeyOrderIndependent(t *testing.T) {
	// encoding/json sorts map keys, so structurally equal maps collide.
	a := Fingerprint("startWorkflow", map[string]any{"a": 1, "b": "two"})
	b := Fingerprint("startWorkflow", map[string]any{"b": "two", "a": 1})

	assert.Equal(t, a, b)
}

func TestFingerprint_DiffersByPayload(t *testing.T) {
	a := Fingerprint("startWorkflow", map[string]any{"x": 1})
	b := Fingerprint("startWorkflow", map[string]any{"x": 2})

	assert.NotEqual(t, a, b)
}

func TestFingerprint_DiffersByOperation(t *testing.T) {
	payload := map[string]any{"x": 1}

	a := Fingerprint("startWorkflow", payload)
	b := Fingerprint("listWorkflows", payload)

	assert.NotEqual(t, a, b)
}

func TestFingerprint_StructAndMapCollide(t *testing.T) {
	type input struct {
		X int    `json:"x"`
		Y string `json:"y"`
	}

	a := Fingerprint("startWorkflow", input{X: 1, Y: "v"})
	b := Fingerprint("startWorkflow", map[string]any{"y": "v", "x": 1})

	assert.Equal(t, a, b)
}
