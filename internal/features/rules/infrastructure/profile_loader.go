package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"timeline-ai/backend/internal/features/rules/domain"
)

// LoadProfilesDir reads every *.yaml / *.yml file in dir as one rule profile.
// A file without an id takes its base name as the id. Files are returned in
// name order so registration is deterministic.
func LoadProfilesDir(dir string) ([]domain.RuleProfile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	profiles := make([]domain.RuleProfile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		profile, err := LoadProfileFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Str("profile", profile.ID).Msg("Loaded rule profile")
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// LoadProfileFile parses a single YAML rule profile.
func LoadProfileFile(path string) (domain.RuleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RuleProfile{}, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile domain.RuleProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return domain.RuleProfile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if profile.ID == "" {
		profile.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if profile.DisplayName == "" {
		profile.DisplayName = profile.ID
	}
	if err := profile.Config.Validate(); err != nil {
		return domain.RuleProfile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return profile, nil
}
