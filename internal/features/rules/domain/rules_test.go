package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPhaseDefaultsJSONKeepsOrder(t *testing.T) {
	input := `{"phase_defaults":{"painting":[2,4],"demolition":[2,5],"first_fix":[3,7]},"mapping_logic":"m","terminology":"t"}`

	var cfg BusinessRulesConfig
	require.NoError(t, json.Unmarshal([]byte(input), &cfg))

	assert.Equal(t, PhaseDefaults{
		{Name: "painting", Min: 2, Max: 4},
		{Name: "demolition", Min: 2, Max: 5},
		{Name: "first_fix", Min: 3, Max: 7},
	}, cfg.PhaseDefaults)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	assert.Equal(t, input, string(out))
}

func TestPhaseDefaultsJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not an object", `{"phase_defaults":[[1,2]]}`},
		{"single value", `{"phase_defaults":{"demolition":[2]}}`},
		{"three values", `{"phase_defaults":{"demolition":[1,2,3]}}`},
		{"fractional", `{"phase_defaults":{"demolition":[1.5,2]}}`},
		{"string values", `{"phase_defaults":{"demolition":["1","2"]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg BusinessRulesConfig
			assert.Error(t, json.Unmarshal([]byte(tt.input), &cfg))
		})
	}
}

func TestPhaseDefaultsJSONNull(t *testing.T) {
	var cfg BusinessRulesConfig
	require.NoError(t, json.Unmarshal([]byte(`{"phase_defaults":null}`), &cfg))
	assert.Nil(t, cfg.PhaseDefaults)
}

func TestPhaseDefaultsYAMLKeepsOrder(t *testing.T) {
	input := `
phase_defaults:
  flooring: [1, 3]
  demolition: [2, 5]
mapping_logic: scale by floor area
terminology: Use US building terms.
`
	var cfg BusinessRulesConfig
	require.NoError(t, yaml.Unmarshal([]byte(input), &cfg))

	assert.Equal(t, PhaseDefaults{
		{Name: "flooring", Min: 1, Max: 3},
		{Name: "demolition", Min: 2, Max: 5},
	}, cfg.PhaseDefaults)
	assert.Equal(t, "scale by floor area", cfg.MappingLogic)
	assert.Equal(t, "Use US building terms.", cfg.Terminology)
}

func TestPhaseDefaultsYAMLErrors(t *testing.T) {
	var cfg BusinessRulesConfig
	assert.Error(t, yaml.Unmarshal([]byte("phase_defaults: [1, 2]"), &cfg))
	assert.Error(t, yaml.Unmarshal([]byte("phase_defaults:\n  demolition: [1]"), &cfg))
}

func TestValidate(t *testing.T) {
	valid := BusinessRulesConfig{PhaseDefaults: PhaseDefaults{{Name: "demolition", Min: 2, Max: 2}}}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		defaults PhaseDefaults
	}{
		{"empty", nil},
		{"empty name", PhaseDefaults{{Name: "", Min: 1, Max: 2}}},
		{"zero min", PhaseDefaults{{Name: "demolition", Min: 0, Max: 2}}},
		{"negative max", PhaseDefaults{{Name: "demolition", Min: 1, Max: -2}}},
		{"min above max", PhaseDefaults{{Name: "demolition", Min: 5, Max: 2}}},
		{"duplicate", PhaseDefaults{{Name: "demolition", Min: 1, Max: 2}, {Name: "demolition", Min: 1, Max: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := BusinessRulesConfig{PhaseDefaults: tt.defaults}
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestCloneDoesNotShare(t *testing.T) {
	orig := BusinessRulesConfig{PhaseDefaults: PhaseDefaults{{Name: "demolition", Min: 1, Max: 2}}}
	clone := orig.Clone()
	clone.PhaseDefaults[0].Max = 99

	assert.Equal(t, 2, orig.PhaseDefaults[0].Max)
	r, ok := orig.PhaseDefaults.Lookup("demolition")
	require.True(t, ok)
	assert.Equal(t, 2, r.Max)
}
