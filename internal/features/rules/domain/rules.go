package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Phase names known to the built-in profiles. Profiles may add others.
const (
	PhaseDemolition  = "demolition"
	PhaseFirstFix    = "first_fix"
	PhaseSecondFix   = "second_fix"
	PhasePlastering  = "plastering"
	PhaseFlooring    = "flooring"
	PhasePainting    = "painting"
	PhaseFinalChecks = "final_checks"
)

// PhaseRange is the default (min, max) day range for one phase.
type PhaseRange struct {
	Name string
	Min  int
	Max  int
}

// PhaseDefaults is an ordered phase -> range mapping. On the wire it is a JSON
// object of two-element arrays; the object key order is the slice order.
type PhaseDefaults []PhaseRange

// BusinessRulesConfig is a named, swappable estimation policy.
type BusinessRulesConfig struct {
	PhaseDefaults PhaseDefaults `json:"phase_defaults" yaml:"phase_defaults"`
	MappingLogic  string        `json:"mapping_logic" yaml:"mapping_logic"`
	Terminology   string        `json:"terminology" yaml:"terminology"`
}

// RuleProfile binds a config to an id and a display name.
type RuleProfile struct {
	ID          string              `json:"id" yaml:"id"`
	DisplayName string              `json:"display_name" yaml:"display_name"`
	Config      BusinessRulesConfig `json:"config" yaml:"config"`
}

// ProfileSummary is the listing view of a profile.
type ProfileSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Lookup returns the range for the named phase.
func (d PhaseDefaults) Lookup(name string) (PhaseRange, bool) {
	for _, r := range d {
		if r.Name == name {
			return r, true
		}
	}
	return PhaseRange{}, false
}

// MarshalJSON writes the phases as an object, keeping slice order.
func (d PhaseDefaults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":[%d,%d]", r.Min, r.Max)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of [min, max] pairs, keeping document order.
func (d *PhaseDefaults) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("phase_defaults must be an object")
	}

	out := PhaseDefaults{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)
		var pair []int
		if err := dec.Decode(&pair); err != nil {
			return fmt.Errorf("phase_defaults.%s: %w", name, err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("phase_defaults.%s: want [min, max], got %d values", name, len(pair))
		}
		out = append(out, PhaseRange{Name: name, Min: pair[0], Max: pair[1]})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}

// UnmarshalYAML reads a mapping node of [min, max] sequences, keeping document order.
func (d *PhaseDefaults) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: phase_defaults must be a mapping", node.Line)
	}
	out := make(PhaseDefaults, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var pair []int
		if err := node.Content[i+1].Decode(&pair); err != nil {
			return fmt.Errorf("phase_defaults.%s: %w", name, err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("phase_defaults.%s: want [min, max], got %d values", name, len(pair))
		}
		out = append(out, PhaseRange{Name: name, Min: pair[0], Max: pair[1]})
	}
	*d = out
	return nil
}

// Validate checks the invariants a config must hold before it is embedded in a prompt.
func (c BusinessRulesConfig) Validate() error {
	if len(c.PhaseDefaults) == 0 {
		return errors.New("phase_defaults must not be empty")
	}
	seen := make(map[string]bool, len(c.PhaseDefaults))
	for _, r := range c.PhaseDefaults {
		if r.Name == "" {
			return errors.New("phase_defaults contains an empty phase name")
		}
		if seen[r.Name] {
			return fmt.Errorf("phase_defaults.%s is defined twice", r.Name)
		}
		seen[r.Name] = true
		if r.Min <= 0 || r.Max <= 0 {
			return fmt.Errorf("phase_defaults.%s: durations must be positive, got [%d, %d]", r.Name, r.Min, r.Max)
		}
		if r.Min > r.Max {
			return fmt.Errorf("phase_defaults.%s: min %d exceeds max %d", r.Name, r.Min, r.Max)
		}
	}
	return nil
}

// Clone returns a copy that shares no memory with c.
func (c BusinessRulesConfig) Clone() BusinessRulesConfig {
	c.PhaseDefaults = append(PhaseDefaults(nil), c.PhaseDefaults...)
	return c
}

// Summary returns the listing view.
func (p RuleProfile) Summary() ProfileSummary {
	return ProfileSummary{ID: p.ID, DisplayName: p.DisplayName}
}
