package satchel

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/query"
)

type bookmark struct {
	core.Meta
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Tags  []string `json:"tags,omitempty"`
	Rank  int      `json:"rank,omitempty"`
}

func newTestCollection(t *testing.T, opts ...Option[bookmark, *bookmark]) *Collection[bookmark, *bookmark] {
	t.Helper()

	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c, err := NewCollection[bookmark](db, Config{
		Key:        "bookmarks",
		Searchable: []string{"title", "url", "tags"},
	}, opts...)
	require.NoError(t, err)
	return c
}

func TestNewCollection_Guards(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewCollection[bookmark](nil, Config{Key: "bookmarks"})
	assert.ErrorIs(t, err, ErrDBRequired)

	_, err = NewCollection[bookmark](db, Config{})
	assert.ErrorIs(t, err, ErrStorageKeyRequired)
}

func TestCollection_SaveAssignsIdentity(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	saved, err := c.Save(ctx, bookmark{Title: "first", URL: "https://a.example"})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreateTime.IsZero())
	assert.Equal(t, saved.CreateTime, saved.UpdateTime, "create stamps both timestamps identically")

	page, err := c.FindAll(ctx, query.Query{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, saved.ID, page.Content[0].ID)
}

func TestCollection_SaveAssignsDistinctIDs(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		saved, err := c.Save(ctx, bookmark{Title: fmt.Sprintf("b%d", i)})
		require.NoError(t, err)
		require.NotEmpty(t, saved.ID)
		assert.False(t, seen[saved.ID], "id %q assigned twice", saved.ID)
		seen[saved.ID] = true
	}
}

func TestCollection_SaveReplacesExisting(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	original, err := c.Save(ctx, bookmark{Title: "draft", URL: "https://a.example"})
	require.NoError(t, err)

	replacement := original
	replacement.Title = "final"
	replacement.CreateTime = 0 // engine restores it from the stored entity

	saved, err := c.Save(ctx, replacement)
	require.NoError(t, err)

	assert.Equal(t, original.ID, saved.ID)
	assert.Equal(t, original.CreateTime, saved.CreateTime, "replace preserves createTime")
	assert.GreaterOrEqual(t, int64(saved.UpdateTime), int64(saved.CreateTime))
	assert.Equal(t, "final", saved.Title)

	page, err := c.FindAll(ctx, query.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total, "replace must not grow the collection")
}

func TestCollection_SaveHonorsCallerID(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	item := bookmark{Title: "imported"}
	item.ID = "bm-imported-1"

	saved, err := c.Save(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, "bm-imported-1", saved.ID)
	assert.Equal(t, saved.CreateTime, saved.UpdateTime)

	found, err := c.FindByID(ctx, "bm-imported-1")
	require.NoError(t, err)
	assert.Equal(t, "imported", found.Title)
}

func TestCollection_FindByID(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	saved, err := c.Save(ctx, bookmark{Title: "findable"})
	require.NoError(t, err)

	found, err := c.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "findable", found.Title)

	_, err = c.FindByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_Patch(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	saved, err := c.Save(ctx, bookmark{Title: "old title", URL: "https://a.example", Rank: 3})
	require.NoError(t, err)

	patched, err := c.Patch(ctx, saved.ID, core.NewPatch().Set("title", "new title").Unset("rank"))
	require.NoError(t, err)

	assert.Equal(t, "new title", patched.Title)
	assert.Equal(t, 0, patched.Rank)
	assert.Equal(t, "https://a.example", patched.URL, "untouched fields keep their stored values")
	assert.Equal(t, saved.ID, patched.ID)
	assert.Equal(t, saved.CreateTime, patched.CreateTime)
}

func TestCollection_PatchUnknownID(t *testing.T) {
	c := newTestCollection(t)

	_, err := c.Patch(context.Background(), "no-such-id", core.NewPatch().Set("title", "x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_PatchReservedField(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	saved, err := c.Save(ctx, bookmark{Title: "immutable identity"})
	require.NoError(t, err)

	_, err = c.Patch(ctx, saved.ID, core.NewPatch().Set("id", "hijacked"))
	require.ErrorIs(t, err, ErrValidation)

	found, err := c.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID, "failed patch must not change the stored entity")
}

func TestCollection_DeleteByID(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	saved, err := c.Save(ctx, bookmark{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, c.DeleteByID(ctx, saved.ID))

	_, err = c.FindByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_DeleteIsIdempotent(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	_, err := c.Save(ctx, bookmark{Title: "survivor"})
	require.NoError(t, err)

	events := 0
	c.Subscribe(func() { events++ })

	require.NoError(t, c.DeleteByID(ctx, "never-existed"))
	assert.Equal(t, 0, events, "deleting an absent id publishes nothing")

	page, err := c.FindAll(ctx, query.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total, "collection left unchanged")
}

func TestCollection_ClearAll(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.Save(ctx, bookmark{Title: fmt.Sprintf("b%d", i)})
		require.NoError(t, err)
	}

	events := 0
	c.Subscribe(func() { events++ })

	require.NoError(t, c.ClearAll(ctx))
	assert.Equal(t, 1, events)

	page, err := c.FindAll(ctx, query.Query{})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
}

func TestCollection_FindAllQueries(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	_, err := c.Save(ctx, bookmark{Title: "Bob", Rank: 30})
	require.NoError(t, err)
	_, err = c.Save(ctx, bookmark{Title: "Amy", Rank: 25})
	require.NoError(t, err)

	page, err := c.FindAll(ctx, query.Query{Sort: query.Asc("title")})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Amy", page.Content[0].Title)
	assert.Equal(t, "Bob", page.Content[1].Title)

	page, err = c.FindAll(ctx, query.Query{
		Filters: []query.Criterion{query.Gte("rank", 28)},
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Bob", page.Content[0].Title)

	page, err = c.FindAll(ctx, query.Query{Keyword: "amy"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Amy", page.Content[0].Title)
}

func TestCollection_FindAllPagination(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := c.Save(ctx, bookmark{Title: fmt.Sprintf("b%02d", i)})
		require.NoError(t, err)
	}

	page, err := c.FindAll(ctx, query.Query{Page: query.PageRequest{Page: 2, Size: 10}})
	require.NoError(t, err)
	assert.Len(t, page.Content, 5)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestCollection_ConcurrentSaves(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	const writers = 20
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			_, err := c.Save(ctx, bookmark{Title: "concurrent"})
			return err
		})
	}
	require.NoError(t, g.Wait())

	page, err := c.FindAll(ctx, query.Query{})
	require.NoError(t, err)
	assert.Equal(t, writers, page.Total, "no save may be lost to an interleaved read-modify-write")

	seen := make(map[string]bool)
	for _, b := range page.Content {
		assert.False(t, seen[b.ID])
		seen[b.ID] = true
	}
}

func TestCollection_SubscriberObservesWrittenState(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	var observed int
	c.Subscribe(func() {
		page, err := c.FindAll(ctx, query.Query{})
		require.NoError(t, err)
		observed = page.Total
	})

	_, err := c.Save(ctx, bookmark{Title: "fresh"})
	require.NoError(t, err)

	assert.Equal(t, 1, observed, "listener re-query must see the just-written state")
}

func TestCollection_UnsubscribeStopsEvents(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	events := 0
	unsubscribe := c.Subscribe(func() { events++ })

	_, err := c.Save(ctx, bookmark{Title: "one"})
	require.NoError(t, err)
	assert.Equal(t, 1, events)

	unsubscribe()

	_, err = c.Save(ctx, bookmark{Title: "two"})
	require.NoError(t, err)
	assert.Equal(t, 1, events)
}

func TestCollection_Validator(t *testing.T) {
	// The engine wraps validator failures in ErrValidation itself, so the
	// validator returns a bare error.
	rejectUntitled := func(b *bookmark) error {
		if b.Title == "" {
			return errors.New("title is required")
		}
		return nil
	}

	c := newTestCollection(t, WithValidator[bookmark](rejectUntitled))
	ctx := context.Background()

	events := 0
	c.Subscribe(func() { events++ })

	_, err := c.Save(ctx, bookmark{URL: "https://untitled.example"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, events, "a rejected write publishes nothing")

	page, err := c.FindAll(ctx, query.Query{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total, "a rejected write persists nothing")

	saved, err := c.Save(ctx, bookmark{Title: "titled"})
	require.NoError(t, err)

	// Patching the title away must also be rejected.
	_, err = c.Patch(ctx, saved.ID, core.NewPatch().Unset("title"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCollection_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := Open(dir)
	require.NoError(t, err)

	c, err := NewCollection[bookmark](db, Config{Key: "bookmarks"})
	require.NoError(t, err)

	saved, err := c.Save(ctx, bookmark{Title: "durable"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(dir)
	require.NoError(t, err)
	defer db.Close()

	c, err = NewCollection[bookmark](db, Config{Key: "bookmarks"})
	require.NoError(t, err)

	found, err := c.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "durable", found.Title)
	assert.Equal(t, saved.CreateTime, found.CreateTime)
}
