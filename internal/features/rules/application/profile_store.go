package application

import (
	"fmt"

	"timeline-ai/backend/internal/features/rules/domain"
)

// ProfileStore resolves rule profiles. It is built once at startup and never
// mutated, so it is safe for concurrent use without locking.
type ProfileStore interface {
	// Resolve returns the config for id, or the default profile's config when
	// id is empty or unknown. It never fails.
	Resolve(id string) domain.BusinessRulesConfig
	// Get returns the profile registered under id.
	Get(id string) (domain.RuleProfile, bool)
	// List returns all profiles in registration order.
	List() []domain.ProfileSummary
	// DefaultID is the id unknown lookups fall back to.
	DefaultID() string
}

// profileStore is the implementation of ProfileStore.
type profileStore struct {
	defaultID string
	order     []string
	profiles  map[string]domain.RuleProfile
}

// NewProfileStore registers profiles under defaultID. It fails when a profile
// is invalid, an id is registered twice, or defaultID is not among them.
func NewProfileStore(defaultID string, profiles ...domain.RuleProfile) (ProfileStore, error) {
	s := &profileStore{
		defaultID: defaultID,
		profiles:  make(map[string]domain.RuleProfile, len(profiles)),
	}
	for _, p := range profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("rule profile %q has no id", p.DisplayName)
		}
		if _, dup := s.profiles[p.ID]; dup {
			return nil, fmt.Errorf("rule profile %s is registered twice", p.ID)
		}
		if err := p.Config.Validate(); err != nil {
			return nil, fmt.Errorf("rule profile %s: %w", p.ID, err)
		}
		s.profiles[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	if _, ok := s.profiles[defaultID]; !ok {
		return nil, fmt.Errorf("default rule profile %s is not registered", defaultID)
	}
	return s, nil
}

func (s *profileStore) Resolve(id string) domain.BusinessRulesConfig {
	if p, ok := s.profiles[id]; ok {
		return p.Config.Clone()
	}
	return s.profiles[s.defaultID].Config.Clone()
}

func (s *profileStore) Get(id string) (domain.RuleProfile, bool) {
	p, ok := s.profiles[id]
	p.Config = p.Config.Clone()
	return p, ok
}

func (s *profileStore) List() []domain.ProfileSummary {
	out := make([]domain.ProfileSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.profiles[id].Summary())
	}
	return out
}

func (s *profileStore) DefaultID() string {
	return s.defaultID
}
