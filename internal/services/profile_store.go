package services

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/ports"
	"encoding/json"
	"fmt"
)

const (
	ProfileKey  = "user_profile"
	RegistryKey = "donors"
)

// ProfileStore persists the device owner's profile and publishes it into the
// shared donor registry.
type ProfileStore struct {
	kv ports.KVStore
}

func NewProfileStore(kv ports.KVStore) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Save writes the singleton profile, then upserts it into the registry by
// phone (existing same-phone entries dropped, p appended at the end).
func (s *ProfileStore) Save(ctx context.Context, p domain.UserProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("save profile: encode: %w", err)
	}
	if err := s.kv.Set(ctx, ProfileKey, b); err != nil {
		return fmt.Errorf("save profile: write profile: %w", err)
	}

	registry, err := s.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	registry = domain.UpsertProfile(registry, p)

	rb, err := json.Marshal(registry)
	if err != nil {
		return fmt.Errorf("save profile: encode registry: %w", err)
	}
	if err := s.kv.Set(ctx, RegistryKey, rb); err != nil {
		return fmt.Errorf("save profile: write registry: %w", err)
	}

	return nil
}

// Load returns the stored profile, or nil when none has been saved.
func (s *ProfileStore) Load(ctx context.Context) (*domain.UserProfile, error) {
	raw, ok, err := s.kv.Get(ctx, ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("load profile: read store: %w", err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var p domain.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("load profile: decode: %w", err)
	}
	return &p, nil
}

// ListAll returns every profile in the registry in stored order.
func (s *ProfileStore) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	raw, ok, err := s.kv.Get(ctx, RegistryKey)
	if err != nil {
		return nil, fmt.Errorf("list profiles: read store: %w", err)
	}
	if !ok || len(raw) == 0 {
		return []domain.UserProfile{}, nil
	}

	var list []domain.UserProfile
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("list profiles: decode: %w", err)
	}
	if list == nil {
		list = []domain.UserProfile{}
	}
	return list, nil
}

// FindDonors lists willing donors, restricted to bloodGroup when non-empty.
func (s *ProfileStore) FindDonors(ctx context.Context, bloodGroup domain.BloodGroup) ([]domain.UserProfile, error) {
	if bloodGroup != "" && !bloodGroup.Valid() {
		return nil, fmt.Errorf("find donors: %w: unknown blood group %q", domain.ErrInvalidProfile, bloodGroup)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find donors: %w", err)
	}
	return domain.FilterDonors(all, bloodGroup), nil
}
