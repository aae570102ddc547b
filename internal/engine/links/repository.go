package links

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	apperrors "linkhub/internal/pkg/errors"
)

const linkColumns = `
	l.id, l.user_id, l.title, l.url, l.description, l.is_active, l.position,
	(SELECT COUNT(*) FROM click_events c WHERE c.link_id = l.id) AS clicks,
	l.created_at, l.updated_at
`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create appends the link after the owner's current last position.
func (r *Repository) Create(ctx context.Context, link *Link) error {
	query := `
		INSERT INTO links (id, user_id, title, url, description, is_active, position, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, COALESCE(MAX(position), 0) + 1, ?, ?
		FROM links WHERE user_id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		link.ID,
		link.UserID,
		link.Title,
		link.URL,
		link.Description,
		link.IsActive,
		link.CreatedAt,
		link.UpdatedAt,
		link.UserID,
	)
	if err != nil {
		return err
	}

	return r.db.QueryRowContext(ctx, "SELECT position FROM links WHERE id = ?", link.ID).Scan(&link.Position)
}

// GetByID returns nil, nil when the link does not exist.
func (r *Repository) GetByID(ctx context.Context, id string) (*Link, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+linkColumns+" FROM links l WHERE l.id = ?", id)
	link, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return link, err
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*Link, error) {
	return r.list(ctx, "SELECT "+linkColumns+" FROM links l WHERE l.user_id = ? ORDER BY l.position ASC, l.created_at ASC", userID)
}

// ListActiveByUser is the public profile view of a user's links.
func (r *Repository) ListActiveByUser(ctx context.Context, userID string) ([]*Link, error) {
	return r.list(ctx, "SELECT "+linkColumns+" FROM links l WHERE l.user_id = ? AND l.is_active = 1 ORDER BY l.position ASC, l.created_at ASC", userID)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*Link, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []*Link{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// Update writes only the fields present in the input.
func (r *Repository) Update(ctx context.Context, id string, in *UpdateInput) error {
	var sets []string
	var args []interface{}

	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *in.URL)
	}
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullIfEmpty(*in.Description))
	}
	if in.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *in.IsActive)
	}
	if in.Position != nil {
		sets = append(sets, "position = ?")
		args = append(args, *in.Position)
	}
	if len(sets) == 0 {
		return apperrors.Validation("No fields to update")
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().Unix(), id)

	_, err := r.db.ExecContext(ctx, "UPDATE links SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// Delete removes the link; its click events stay as history.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM links WHERE id = ?", id)
	return err
}

// Reorder sets position = index+1 for every id in one transaction. Any id that
// does not exist fails with ErrNotFound, any id owned by someone else with
// ErrForbidden, and nothing is written in either case.
func (r *Repository) Reorder(ctx context.Context, userID string, ids []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := tx.QueryContext(ctx, "SELECT id, user_id FROM links WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return err
	}
	owners := make(map[string]string, len(ids))
	for rows.Next() {
		var id, owner string
		if err := rows.Scan(&id, &owner); err != nil {
			rows.Close()
			return err
		}
		owners[id] = owner
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		owner, ok := owners[id]
		if !ok {
			return fmt.Errorf("link %s: %w", id, apperrors.ErrNotFound)
		}
		if owner != userID {
			return fmt.Errorf("link %s: %w", id, apperrors.ErrForbidden)
		}
	}

	now := time.Now().Unix()
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			"UPDATE links SET position = ?, updated_at = ? WHERE id = ? AND user_id = ?",
			i+1, now, id, userID,
		); err != nil {
			return fmt.Errorf("update position of %s: %w", id, err)
		}
	}

	return tx.Commit()
}

func scanLink(s interface {
	Scan(dest ...interface{}) error
}) (*Link, error) {
	var link Link
	var description sql.NullString

	err := s.Scan(
		&link.ID,
		&link.UserID,
		&link.Title,
		&link.URL,
		&description,
		&link.IsActive,
		&link.Position,
		&link.Clicks,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		val := description.String
		link.Description = &val
	}

	return &link, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
