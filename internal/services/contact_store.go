package services

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/ports"
	"encoding/json"
	"fmt"
)

const ContactsKey = "emergency_contacts"

// ContactStore persists the emergency contact list as one JSON sequence.
// Every mutation reads the whole list and writes the whole list back.
// There is no locking: a single active caller is assumed.
type ContactStore struct {
	kv ports.KVStore
}

func NewContactStore(kv ports.KVStore) *ContactStore {
	return &ContactStore{kv: kv}
}

// List returns the stored contacts in insertion order, or an empty slice.
func (s *ContactStore) List(ctx context.Context) ([]domain.Contact, error) {
	raw, ok, err := s.kv.Get(ctx, ContactsKey)
	if err != nil {
		return nil, fmt.Errorf("list contacts: read store: %w", err)
	}
	if !ok || len(raw) == 0 {
		return []domain.Contact{}, nil
	}

	var contacts []domain.Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		return nil, fmt.Errorf("list contacts: decode: %w", err)
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return contacts, nil
}

// Add appends c. Duplicate phones are accepted.
func (s *ContactStore) Add(ctx context.Context, c domain.Contact) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("add contact: %w", err)
	}

	contacts, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("add contact: %w", err)
	}

	if err := s.save(ctx, append(contacts, c)); err != nil {
		return fmt.Errorf("add contact: %w", err)
	}
	return nil
}

// Remove deletes every contact whose phone equals phone and reports how many were removed.
func (s *ContactStore) Remove(ctx context.Context, phone string) (int, error) {
	contacts, err := s.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("remove contact: %w", err)
	}

	kept := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.Phone != phone {
			kept = append(kept, c)
		}
	}

	if err := s.save(ctx, kept); err != nil {
		return 0, fmt.Errorf("remove contact: %w", err)
	}
	return len(contacts) - len(kept), nil
}

// Replace overwrites the whole list, used by bulk seeding.
func (s *ContactStore) Replace(ctx context.Context, contacts []domain.Contact) error {
	for i, c := range contacts {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("replace contacts: item %d: %w", i+1, err)
		}
	}
	if err := s.save(ctx, contacts); err != nil {
		return fmt.Errorf("replace contacts: %w", err)
	}
	return nil
}

func (s *ContactStore) save(ctx context.Context, contacts []domain.Contact) error {
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	b, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("encode contacts: %w", err)
	}
	if err := s.kv.Set(ctx, ContactsKey, b); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}
