package satchel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/query"
	"github.com/poiesic/satchel/storage"
)

// Config declares a collection: the medium key it persists under and the
// fields keyword search scans.
type Config struct {
	// Key is the storage key, unique per collection.
	Key string

	// Searchable lists the JSON field names keyword queries match against.
	Searchable []string
}

// Collection is the generic storage engine for one entity type: CRUD and
// query operations over a single persisted key, plus change notification.
// Concrete services compose a Collection with a Config and domain query
// methods built on FindAll; they never touch persistence directly.
//
// All operations are safe for concurrent use. Mutations run as one
// serialized load-mutate-persist cycle, and subscribers are notified
// synchronously once the write is durable, so a listener that re-queries
// always observes the just-written state.
type Collection[T any, P core.EntityPtr[T]] struct {
	cfg      Config
	store    *storage.Store[T]
	notifier *Notifier
	validate func(P) error
	logger   *slog.Logger
}

// Option configures a collection.
type Option[T any, P core.EntityPtr[T]] func(*Collection[T, P]) error

// WithValidator sets a validation function run against an entity, after its
// metadata is stamped, before Save or Patch persists it. A validation
// failure abandons the write with nothing stored and no event published.
func WithValidator[T any, P core.EntityPtr[T]](fn func(P) error) Option[T, P] {
	return func(c *Collection[T, P]) error {
		c.validate = fn
		return nil
	}
}

// NewCollection creates the collection engine for entity type T backed by
// db's medium. The usual instantiation names only the entity type:
//
//	contacts, err := satchel.NewCollection[Contact](db, satchel.Config{Key: "contacts"})
func NewCollection[T any, P core.EntityPtr[T]](db *DB, cfg Config, opts ...Option[T, P]) (*Collection[T, P], error) {
	if db == nil {
		return nil, ErrDBRequired
	}
	if cfg.Key == "" {
		return nil, ErrStorageKeyRequired
	}

	c := &Collection[T, P]{
		cfg:      cfg,
		store:    storage.NewStore[T](db.medium, cfg.Key, db.logger),
		notifier: &Notifier{},
		logger:   db.logger,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Key returns the collection's storage key.
func (c *Collection[T, P]) Key() string {
	return c.cfg.Key
}

func (c *Collection[T, P]) meta(item *T) *core.Meta {
	return P(item).EntityMeta()
}

// runValidator wraps any validator failure in core.ErrValidation, keeping the
// error taxonomy uniform no matter what the validator itself returns.
func (c *Collection[T, P]) runValidator(item *T) error {
	if c.validate == nil {
		return nil
	}
	if err := c.validate(P(item)); err != nil {
		return fmt.Errorf("%w: %w", core.ErrValidation, err)
	}
	return nil
}

// FindAll evaluates q against the collection. An all-zero query returns
// every entity in collection order on a single page. FindAll fails only on
// a store-level persistence failure.
func (c *Collection[T, P]) FindAll(ctx context.Context, q query.Query) (query.Page[T], error) {
	items, err := c.store.Load(ctx)
	if err != nil {
		return query.Page[T]{}, err
	}
	return query.Apply(items, q, c.cfg.Searchable), nil
}

// FindByID returns the entity with the given id, or ErrNotFound.
func (c *Collection[T, P]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.store.Load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range items {
		if c.meta(&items[i]).ID == id {
			return items[i], nil
		}
	}
	return zero, fmt.Errorf("entity %q: %w", id, storage.ErrNotFound)
}

// Save writes item to the collection and returns it as stored. An item with
// an empty id is created: it gets a fresh id and createTime = updateTime =
// now. An item whose id is already present replaces the stored entity,
// keeping the original createTime and stamping updateTime. An item carrying
// an unknown id is created under that id, so callers may mint their own
// identifiers. Subscribers are notified after the write is durable.
func (c *Collection[T, P]) Save(ctx context.Context, item T) (T, error) {
	var zero T
	saved := item
	now := core.NowMillis()

	_, err := c.store.Update(ctx, func(items []T) ([]T, error) {
		m := c.meta(&saved)

		index := -1
		if m.ID != "" {
			index = c.indexOf(items, m.ID)
		}

		if index >= 0 {
			m.CreateTime = c.meta(&items[index]).CreateTime
		} else {
			if m.ID == "" {
				m.ID = core.NewID()
			}
			m.CreateTime = now
		}
		m.UpdateTime = now

		if err := c.runValidator(&saved); err != nil {
			return nil, err
		}

		if index >= 0 {
			items[index] = saved
			return items, nil
		}
		return append(items, saved), nil
	})
	if err != nil {
		return zero, err
	}

	c.notifier.Notify()
	return saved, nil
}

// Patch applies a partial update to the entity with the given id and
// returns the patched entity. Fields the patch does not mention keep their
// stored values; updateTime is stamped, id and createTime are untouchable.
// Patching an unknown id fails with ErrNotFound.
func (c *Collection[T, P]) Patch(ctx context.Context, id string, patch *core.Patch) (T, error) {
	var patched T

	_, err := c.store.Update(ctx, func(items []T) ([]T, error) {
		index := c.indexOf(items, id)
		if index < 0 {
			return nil, fmt.Errorf("entity %q: %w", id, storage.ErrNotFound)
		}

		next := items[index]
		if patch != nil {
			if err := patch.Apply(P(&next)); err != nil {
				return nil, err
			}
		}
		c.meta(&next).UpdateTime = core.NowMillis()

		if err := c.runValidator(&next); err != nil {
			return nil, err
		}

		items[index] = next
		patched = next
		return items, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	c.notifier.Notify()
	return patched, nil
}

// errUnchanged signals a mutation cycle that left the collection as it was,
// so nothing is persisted and no event is published.
var errUnchanged = errors.New("collection unchanged")

// DeleteByID removes the entity with the given id. Deleting an absent id is
// a success that publishes nothing: deletion is idempotent, so double-taps
// and stale references cannot produce failure UI.
func (c *Collection[T, P]) DeleteByID(ctx context.Context, id string) error {
	_, err := c.store.Update(ctx, func(items []T) ([]T, error) {
		index := c.indexOf(items, id)
		if index < 0 {
			return nil, errUnchanged
		}
		return slices.Delete(items, index, index+1), nil
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}

	c.notifier.Notify()
	return nil
}

// ClearAll removes every entity and the collection's key from the medium.
// The clear is irreversible and publishes a change event.
func (c *Collection[T, P]) ClearAll(ctx context.Context) error {
	if err := c.store.Reset(ctx); err != nil {
		return err
	}
	c.notifier.Notify()
	return nil
}

// Subscribe registers fn to run synchronously after every durable mutation
// of this collection, and returns its unsubscribe function. Listeners
// receive no payload; they re-query instead of trusting a delta.
func (c *Collection[T, P]) Subscribe(fn func()) (unsubscribe func()) {
	return c.notifier.Subscribe(fn)
}

func (c *Collection[T, P]) indexOf(items []T, id string) int {
	for i := range items {
		if c.meta(&items[i]).ID == id {
			return i
		}
	}
	return -1
}
