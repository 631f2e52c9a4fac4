package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"timeline-ai/backend/internal/features/estimation/domain"
	rulesdomain "timeline-ai/backend/internal/features/rules/domain"
)

// PromptCompiler merges a fixed template with a rules config.
type PromptCompiler struct {
	name   string
	prefix string
	suffix string
}

// NewPromptCompiler splits template at its single placeholder. A template with
// zero or several placeholders is rejected with a TemplateMismatch error.
func NewPromptCompiler(name, template string) (*PromptCompiler, error) {
	if n := strings.Count(template, BusinessRulesPlaceholder); n != 1 {
		return nil, domain.NewError(domain.KindTemplateMismatch, domain.StageCompile,
			fmt.Sprintf("prompt template %q must contain %s exactly once, found %d", name, BusinessRulesPlaceholder, n), nil)
	}
	prefix, suffix, _ := strings.Cut(template, BusinessRulesPlaceholder)
	return &PromptCompiler{name: name, prefix: prefix, suffix: suffix}, nil
}

// NewNamedPromptCompiler builds a compiler for a built-in template.
func NewNamedPromptCompiler(name string) (*PromptCompiler, error) {
	template, err := TemplateByName(name)
	if err != nil {
		return nil, err
	}
	return NewPromptCompiler(name, template)
}

// Name returns the template name.
func (c *PromptCompiler) Name() string {
	return c.name
}

// Compile returns the template with the pretty-printed config substituted.
// The output depends only on the config.
func (c *PromptCompiler) Compile(config rulesdomain.BusinessRulesConfig) (domain.CompiledPrompt, error) {
	rules, err := SerializeRules(config)
	if err != nil {
		return "", domain.NewError(domain.KindConfigSerialization, domain.StageCompile,
			"Failed to serialize business rules", err)
	}

	var b strings.Builder
	b.Grow(len(c.prefix) + len(rules) + len(c.suffix))
	b.WriteString(c.prefix)
	b.WriteString(rules)
	b.WriteString(c.suffix)
	return domain.CompiledPrompt(b.String()), nil
}

// SerializeRules renders config as two-space indented JSON. HTML characters
// are left as-is since the reader is a language model.
func SerializeRules(config rulesdomain.BusinessRulesConfig) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(config); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
