package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline-ai/backend/internal/features/rules/domain"
	"timeline-ai/backend/internal/features/rules/infrastructure"
)

func newBuiltinStore(t *testing.T) ProfileStore {
	t.Helper()
	store, err := NewProfileStore(infrastructure.DefaultProfileID, infrastructure.BuiltinProfiles()...)
	require.NoError(t, err)
	return store
}

func TestBuiltinProfilesHaveValidRanges(t *testing.T) {
	store := newBuiltinStore(t)

	for _, summary := range store.List() {
		cfg := store.Resolve(summary.ID)
		require.NotEmpty(t, cfg.PhaseDefaults, summary.ID)
		for _, r := range cfg.PhaseDefaults {
			assert.NotEmpty(t, r.Name, summary.ID)
			assert.Greater(t, r.Min, 0, "%s/%s", summary.ID, r.Name)
			assert.Greater(t, r.Max, 0, "%s/%s", summary.ID, r.Name)
			assert.LessOrEqual(t, r.Min, r.Max, "%s/%s", summary.ID, r.Name)
		}
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	store := newBuiltinStore(t)
	want := store.Resolve("default")

	assert.Equal(t, want, store.Resolve(""))
	assert.Equal(t, want, store.Resolve("unknown-id"))
	assert.Equal(t, infrastructure.DefaultRules, want)
}

func TestResolveRegisteredProfile(t *testing.T) {
	store := newBuiltinStore(t)

	cfg := store.Resolve("silverfern")
	assert.Equal(t, infrastructure.SilverfernRules.Terminology, cfg.Terminology)
	assert.NotEqual(t, store.Resolve("default"), cfg)
}

func TestResolveReturnsCopy(t *testing.T) {
	store := newBuiltinStore(t)

	cfg := store.Resolve("default")
	cfg.PhaseDefaults[0].Max = 1000

	assert.NotEqual(t, 1000, store.Resolve("default").PhaseDefaults[0].Max)
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	store := newBuiltinStore(t)

	assert.Equal(t, []domain.ProfileSummary{
		{ID: "default", DisplayName: "Default UK Standards"},
		{ID: "silverfern", DisplayName: "Silverfern Construction"},
	}, store.List())
	assert.Equal(t, "default", store.DefaultID())
}

func TestGet(t *testing.T) {
	store := newBuiltinStore(t)

	p, ok := store.Get("silverfern")
	require.True(t, ok)
	assert.Equal(t, "Silverfern Construction", p.DisplayName)

	_, ok = store.Get("nope")
	assert.False(t, ok)
}

func TestNewProfileStoreRejectsBadRegistry(t *testing.T) {
	good := domain.RuleProfile{ID: "a", Config: infrastructure.DefaultRules}

	_, err := NewProfileStore("missing", good)
	assert.Error(t, err, "default id must be registered")

	_, err = NewProfileStore("a", good, good)
	assert.Error(t, err, "duplicate ids")

	_, err = NewProfileStore("a", domain.RuleProfile{Config: infrastructure.DefaultRules})
	assert.Error(t, err, "empty id")

	bad := domain.RuleProfile{ID: "a", Config: domain.BusinessRulesConfig{
		PhaseDefaults: domain.PhaseDefaults{{Name: "demolition", Min: 4, Max: 1}},
	}}
	_, err = NewProfileStore("a", bad)
	assert.Error(t, err, "invalid ranges")
}

func TestAddingProfileIsDataOnly(t *testing.T) {
	extra := domain.RuleProfile{
		ID:          "acme",
		DisplayName: "Acme Builders",
		Config: domain.BusinessRulesConfig{
			PhaseDefaults: domain.PhaseDefaults{{Name: domain.PhaseDemolition, Min: 1, Max: 1}},
			Terminology:   "Use AU building terms.",
		},
	}
	store, err := NewProfileStore(infrastructure.DefaultProfileID, append(infrastructure.BuiltinProfiles(), extra)...)
	require.NoError(t, err)

	assert.Equal(t, "Use AU building terms.", store.Resolve("acme").Terminology)
	assert.Len(t, store.List(), 3)
}
