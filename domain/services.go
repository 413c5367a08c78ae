package domain

import (
	"fmt"
	"slices"

	"github.com/poiesic/satchel"
)

// Services bundles the application's domain services over one database,
// constructed together at startup.
type Services struct {
	Sessions *SessionService
	Contacts *ContactService
	Invoices *InvoiceService

	registry map[string]Handle
}

// New constructs every domain service against db and registers each
// collection under its storage key.
func New(db *satchel.DB) (*Services, error) {
	sessions, err := NewSessionService(db)
	if err != nil {
		return nil, err
	}

	contacts, err := NewContactService(db)
	if err != nil {
		return nil, err
	}

	invoices, err := NewInvoiceService(db)
	if err != nil {
		return nil, err
	}

	s := &Services{
		Sessions: sessions,
		Contacts: contacts,
		Invoices: invoices,
	}
	s.registry = map[string]Handle{
		sessions.Key(): NewHandle(sessions.Collection),
		contacts.Key(): NewHandle(contacts.Collection),
		invoices.Key(): NewHandle(invoices.Collection),
	}

	return s, nil
}

// Resolve returns the type-erased handle registered under name, or
// ErrUnknownCollection.
func (s *Services) Resolve(name string) (Handle, error) {
	h, ok := s.registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return h, nil
}

// Names returns the registered collection names in sorted order.
func (s *Services) Names() []string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
