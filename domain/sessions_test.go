package domain

import (
	"context"
	"testing"

	"github.com/poiesic/satchel/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSessions(t *testing.T, s *SessionService) {
	t.Helper()
	ctx := context.Background()

	seed := []ChatSession{
		{Title: "standup notes", LastActiveAt: 1000},
		{Title: "release planning", Pinned: true, LastActiveAt: 500},
		{Title: "support triage", LastMessage: "ticket 4521 reopened", UnreadCount: 2, LastActiveAt: 3000},
		{Title: "architecture", Pinned: true, LastActiveAt: 2000},
	}
	for _, session := range seed {
		_, err := s.Save(ctx, session)
		require.NoError(t, err)
	}
}

func sessionTitles(page query.Page[ChatSession]) []string {
	titles := make([]string, 0, len(page.Content))
	for _, session := range page.Content {
		titles = append(titles, session.Title)
	}
	return titles
}

func TestSessionService_RecentFirst(t *testing.T) {
	sessions, err := NewSessionService(newTestDB(t))
	require.NoError(t, err)
	seedSessions(t, sessions)
	ctx := context.Background()

	page, err := sessions.RecentFirst(ctx, query.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 4, page.Total)

	// Pinned sessions by recency, then the rest by recency.
	assert.Equal(t, []string{
		"architecture",
		"release planning",
		"support triage",
		"standup notes",
	}, sessionTitles(page))
}

func TestSessionService_RecentFirstPagination(t *testing.T) {
	sessions, err := NewSessionService(newTestDB(t))
	require.NoError(t, err)
	seedSessions(t, sessions)
	ctx := context.Background()

	page, err := sessions.RecentFirst(ctx, query.PageRequest{Page: 2, Size: 3})
	require.NoError(t, err)

	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []string{"standup notes"}, sessionTitles(page))
}

func TestSessionService_Unread(t *testing.T) {
	sessions, err := NewSessionService(newTestDB(t))
	require.NoError(t, err)
	seedSessions(t, sessions)
	ctx := context.Background()

	page, err := sessions.Unread(ctx)
	require.NoError(t, err)

	require.Equal(t, 1, page.Total)
	assert.Equal(t, "support triage", page.Content[0].Title)
	assert.Equal(t, 2, page.Content[0].UnreadCount)
}

func TestSessionService_MarkRead(t *testing.T) {
	sessions, err := NewSessionService(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	saved, err := sessions.Save(ctx, ChatSession{Title: "inbox", UnreadCount: 5})
	require.NoError(t, err)

	read, err := sessions.MarkRead(ctx, saved.ID)
	require.NoError(t, err)
	assert.Zero(t, read.UnreadCount)
	assert.Equal(t, "inbox", read.Title)

	page, err := sessions.Unread(ctx)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestSessionService_Touch(t *testing.T) {
	sessions, err := NewSessionService(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	saved, err := sessions.Save(ctx, ChatSession{Title: "design review"})
	require.NoError(t, err)
	require.True(t, saved.LastActiveAt.IsZero())

	touched, err := sessions.Touch(ctx, saved.ID, "uploaded the new mockups")
	require.NoError(t, err)

	assert.Equal(t, "uploaded the new mockups", touched.LastMessage)
	assert.False(t, touched.LastActiveAt.IsZero())
	assert.Equal(t, saved.CreateTime, touched.CreateTime)
}
