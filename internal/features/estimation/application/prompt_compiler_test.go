package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline-ai/backend/internal/features/estimation/domain"
	rulesdomain "timeline-ai/backend/internal/features/rules/domain"
	rulesinfra "timeline-ai/backend/internal/features/rules/infrastructure"
)

func TestCompileIsDeterministic(t *testing.T) {
	compiler, err := NewNamedPromptCompiler(TemplateDetailed)
	require.NoError(t, err)

	first, err := compiler.Compile(rulesinfra.DefaultRules)
	require.NoError(t, err)
	second, err := compiler.Compile(rulesinfra.DefaultRules.Clone())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompileEmbedsEveryPhase(t *testing.T) {
	compiler, err := NewNamedPromptCompiler(TemplateDetailed)
	require.NoError(t, err)

	prompt, err := compiler.Compile(rulesinfra.DefaultRules)
	require.NoError(t, err)
	text := string(prompt)

	assert.NotContains(t, text, BusinessRulesPlaceholder)
	assert.Contains(t, text, "\"demolition\": [\n      2,\n      5\n    ]")
	for _, r := range rulesinfra.DefaultRules.PhaseDefaults {
		assert.Contains(t, text, `"`+r.Name+`": [`)
	}
	assert.Contains(t, text, "Use UK building terms.")
	assert.True(t, strings.HasPrefix(text, "You are ProjectTimelineAI"))
}

func TestCompileKeepsPhaseOrder(t *testing.T) {
	compiler, err := NewNamedPromptCompiler(TemplateStandard)
	require.NoError(t, err)

	prompt, err := compiler.Compile(rulesinfra.DefaultRules)
	require.NoError(t, err)
	text := string(prompt)

	last := -1
	for _, r := range rulesinfra.DefaultRules.PhaseDefaults {
		idx := strings.Index(text, `"`+r.Name+`"`)
		require.GreaterOrEqual(t, idx, 0, r.Name)
		assert.Greater(t, idx, last, r.Name)
		last = idx
	}
}

func TestCompileDoesNotEscapeHTML(t *testing.T) {
	compiler, err := NewPromptCompiler("tiny", "rules: {{business_rules}}")
	require.NoError(t, err)

	prompt, err := compiler.Compile(rulesdomain.BusinessRulesConfig{
		PhaseDefaults: rulesdomain.PhaseDefaults{{Name: "demolition", Min: 1, Max: 2}},
		MappingLogic:  "rooms < 3 & no loft => small",
	})
	require.NoError(t, err)

	assert.Contains(t, string(prompt), "rooms < 3 & no loft => small")
	assert.NotContains(t, string(prompt), `\u003c`)
}

func TestSerializeRulesMatchesCompiledSection(t *testing.T) {
	compiler, err := NewPromptCompiler("bare", "{{business_rules}}")
	require.NoError(t, err)

	prompt, err := compiler.Compile(rulesinfra.SilverfernRules)
	require.NoError(t, err)
	rules, err := SerializeRules(rulesinfra.SilverfernRules)
	require.NoError(t, err)

	assert.Equal(t, rules, string(prompt))
	assert.True(t, strings.HasPrefix(rules, "{\n  \"phase_defaults\": {"))
}

func TestNewPromptCompilerRequiresOnePlaceholder(t *testing.T) {
	for _, template := range []string{
		"no placeholder here",
		"{{business_rules}} and again {{business_rules}}",
	} {
		_, err := NewPromptCompiler("bad", template)
		require.Error(t, err)
		assert.Equal(t, domain.KindTemplateMismatch, domain.KindOf(err))
	}
}

func TestTemplateByName(t *testing.T) {
	for _, name := range []string{"", TemplateDetailed, TemplateStandard} {
		template, err := TemplateByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, 1, strings.Count(template, BusinessRulesPlaceholder), name)
	}

	_, err := NewNamedPromptCompiler("fancy")
	assert.Error(t, err)
}
