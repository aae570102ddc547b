package tracking

import (
	"context"
	"database/sql"
)

// Recorder persists tracking events, directly or through a queue.
type Recorder interface {
	RecordClick(ctx context.Context, e *ClickEvent) error
	RecordView(ctx context.Context, e *ViewEvent) error
}

// Store writes events straight to the database.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) RecordClick(ctx context.Context, e *ClickEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO click_events (id, link_id, user_id, ip_address, user_agent, referrer, country, os, browser, clicked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.LinkID,
		e.UserID,
		e.Visitor.IP,
		e.Visitor.UserAgent,
		e.Visitor.Referrer,
		nullString(e.Visitor.Country),
		e.Visitor.OS,
		e.Visitor.Browser,
		e.ClickedAt.Unix(),
	)
	return err
}

func (s *Store) RecordView(ctx context.Context, e *ViewEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile_views (id, user_id, ip_address, user_agent, referrer, country, viewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.UserID,
		e.Visitor.IP,
		e.Visitor.UserAgent,
		e.Visitor.Referrer,
		nullString(e.Visitor.Country),
		e.ViewedAt.Unix(),
	)
	return err
}

// LinkOwner returns the owner id and username of linkID, or empty strings
// when the link does not exist.
func (s *Store) LinkOwner(ctx context.Context, linkID string) (userID, username string, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT l.user_id, u.username
		FROM links l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = ?
	`, linkID).Scan(&userID, &username)
	if err == sql.ErrNoRows {
		return "", "", nil
	}
	return userID, username, err
}

// UserIDByUsername returns "" when no user has that username.
func (s *Store) UserIDByUsername(ctx context.Context, username string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE username = ?", username).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
