package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline-ai/backend/internal/features/rules/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadProfilesDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-acme.yaml", `
display_name: Acme Builders
config:
  phase_defaults:
    demolition: [1, 2]
    painting: [3, 4]
  terminology: Use AU building terms.
`)
	writeFile(t, dir, "a-custom.yml", `
id: custom
config:
  phase_defaults:
    flooring: [2, 2]
`)
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	profiles, err := LoadProfilesDir(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "custom", profiles[0].ID)
	assert.Equal(t, "custom", profiles[0].DisplayName)

	assert.Equal(t, "b-acme", profiles[1].ID)
	assert.Equal(t, "Acme Builders", profiles[1].DisplayName)
	assert.Equal(t, domain.PhaseDefaults{
		{Name: "demolition", Min: 1, Max: 2},
		{Name: "painting", Min: 3, Max: 4},
	}, profiles[1].Config.PhaseDefaults)
	assert.Equal(t, "Use AU building terms.", profiles[1].Config.Terminology)
}

func TestLoadProfileFileRejectsInvalidRanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `
config:
  phase_defaults:
    demolition: [5, 1]
`)

	_, err := LoadProfileFile(filepath.Join(dir, "bad.yaml"))
	assert.ErrorContains(t, err, "invalid profile")
}

func TestLoadProfilesDirMissing(t *testing.T) {
	_, err := LoadProfilesDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestBuiltinProfiles(t *testing.T) {
	profiles := BuiltinProfiles()
	require.Len(t, profiles, 2)
	assert.Equal(t, DefaultProfileID, profiles[0].ID)
	for _, p := range profiles {
		assert.NoError(t, p.Config.Validate(), p.ID)
	}
}
