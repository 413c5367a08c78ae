package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/poiesic/satchel"
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/query"
)

// Handle exposes a collection's operations with the entity type erased, for
// callers that address collections by name rather than by type. FindAll and
// the write operations return the entity or page as any; the dynamic value
// is the collection's concrete type, so it marshals to the entity's JSON.
type Handle interface {
	Key() string
	FindAll(ctx context.Context, q query.Query) (any, error)
	FindByID(ctx context.Context, id string) (any, error)
	SaveJSON(ctx context.Context, data []byte) (any, error)
	PatchByID(ctx context.Context, id string, patch *core.Patch) (any, error)
	DeleteByID(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	Subscribe(fn func()) (unsubscribe func())
}

type handle[T any, P core.EntityPtr[T]] struct {
	c *satchel.Collection[T, P]
}

// NewHandle erases a collection's entity type.
func NewHandle[T any, P core.EntityPtr[T]](c *satchel.Collection[T, P]) Handle {
	return handle[T, P]{c: c}
}

func (h handle[T, P]) Key() string {
	return h.c.Key()
}

func (h handle[T, P]) FindAll(ctx context.Context, q query.Query) (any, error) {
	return h.c.FindAll(ctx, q)
}

func (h handle[T, P]) FindByID(ctx context.Context, id string) (any, error) {
	return h.c.FindByID(ctx, id)
}

// SaveJSON decodes data as one entity and saves it. Malformed JSON is a
// validation failure, not a persistence one.
func (h handle[T, P]) SaveJSON(ctx context.Context, data []byte) (any, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrValidation, err)
	}
	return h.c.Save(ctx, item)
}

func (h handle[T, P]) PatchByID(ctx context.Context, id string, patch *core.Patch) (any, error) {
	return h.c.Patch(ctx, id, patch)
}

func (h handle[T, P]) DeleteByID(ctx context.Context, id string) error {
	return h.c.DeleteByID(ctx, id)
}

func (h handle[T, P]) ClearAll(ctx context.Context) error {
	return h.c.ClearAll(ctx)
}

func (h handle[T, P]) Subscribe(fn func()) (unsubscribe func()) {
	return h.c.Subscribe(fn)
}
