package domain

import (
	"context"

	"github.com/poiesic/satchel"
	"github.com/poiesic/satchel/query"
)

// ContactService manages the address book.
type ContactService struct {
	*satchel.Collection[Contact, *Contact]
}

// NewContactService creates the contact service over db. Writes are guarded
// by ValidateContact.
func NewContactService(db *satchel.DB) (*ContactService, error) {
	c, err := satchel.NewCollection[Contact](db, satchel.Config{
		Key:        "contacts",
		Searchable: []string{"name", "phone", "email"},
	}, satchel.WithValidator[Contact](ValidateContact))
	if err != nil {
		return nil, err
	}
	return &ContactService{Collection: c}, nil
}

// Search returns contacts matching the keyword across name, phone and email,
// name ascending.
func (s *ContactService) Search(ctx context.Context, keyword string, page query.PageRequest) (query.Page[Contact], error) {
	return s.FindAll(ctx, query.Query{
		Keyword: keyword,
		Sort:    query.Asc("name"),
		Page:    page,
	})
}

// Favorites returns contacts marked favorite, name ascending.
func (s *ContactService) Favorites(ctx context.Context) (query.Page[Contact], error) {
	return s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{query.Eq("favorite", true)},
		Sort:    query.Asc("name"),
	})
}

// Tagged returns contacts carrying the given tag, name ascending.
func (s *ContactService) Tagged(ctx context.Context, tag string) (query.Page[Contact], error) {
	return s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{query.Contains("tags", tag)},
		Sort:    query.Asc("name"),
	})
}
