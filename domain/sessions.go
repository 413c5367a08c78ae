package domain

import (
	"context"

	"github.com/poiesic/satchel"
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/query"
)

// SessionService manages chat sessions.
type SessionService struct {
	*satchel.Collection[ChatSession, *ChatSession]
}

// NewSessionService creates the session service over db.
func NewSessionService(db *satchel.DB) (*SessionService, error) {
	c, err := satchel.NewCollection[ChatSession](db, satchel.Config{
		Key:        "chat_sessions",
		Searchable: []string{"title", "lastMessage"},
	})
	if err != nil {
		return nil, err
	}
	return &SessionService{Collection: c}, nil
}

// RecentFirst returns the session list in display order: pinned sessions
// first, then the rest, each group by most recent activity. Pagination is
// applied to the combined order.
func (s *SessionService) RecentFirst(ctx context.Context, page query.PageRequest) (query.Page[ChatSession], error) {
	pinned, err := s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{query.Eq("pinned", true)},
		Sort:    query.Desc("lastActiveAt"),
	})
	if err != nil {
		return query.Page[ChatSession]{}, err
	}

	rest, err := s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{query.Neq("pinned", true)},
		Sort:    query.Desc("lastActiveAt"),
	})
	if err != nil {
		return query.Page[ChatSession]{}, err
	}

	combined := make([]ChatSession, 0, len(pinned.Content)+len(rest.Content))
	combined = append(combined, pinned.Content...)
	combined = append(combined, rest.Content...)

	return query.ApplyPage(combined, page), nil
}

// Unread returns sessions with unread messages, most recently active first.
func (s *SessionService) Unread(ctx context.Context) (query.Page[ChatSession], error) {
	return s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{query.Gte("unreadCount", 1)},
		Sort:    query.Desc("lastActiveAt"),
	})
}

// MarkRead clears a session's unread counter.
func (s *SessionService) MarkRead(ctx context.Context, id string) (ChatSession, error) {
	return s.Patch(ctx, id, core.NewPatch().Set("unreadCount", 0))
}

// Touch records activity on a session: the latest message is stored and the
// activity timestamp moves to now.
func (s *SessionService) Touch(ctx context.Context, id string, lastMessage string) (ChatSession, error) {
	return s.Patch(ctx, id, core.NewPatch().
		Set("lastMessage", lastMessage).
		Set("lastActiveAt", core.NowMillis()))
}
