package social

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "linkhub/internal/pkg/errors"
	"linkhub/internal/platform/database"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID string) ([]Link, error) {
	return r.list(ctx, `
		SELECT platform, url, is_active, display_order FROM social_links
		WHERE user_id = ? ORDER BY display_order ASC, created_at ASC
	`, userID)
}

func (r *Repository) ListActive(ctx context.Context, userID string) ([]Link, error) {
	return r.list(ctx, `
		SELECT platform, url, is_active, display_order FROM social_links
		WHERE user_id = ? AND is_active = 1 ORDER BY display_order ASC, created_at ASC
	`, userID)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]Link, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []Link{}
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.Platform, &l.URL, &l.IsActive, &l.DisplayOrder); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// Add inserts one platform link. A missing display order appends at the end.
func (r *Repository) Add(ctx context.Context, userID string, in *Input) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM social_links WHERE user_id = ? AND platform = ?)",
		userID, in.Platform,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("platform %s: %w", in.Platform, apperrors.ErrDuplicate)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO social_links (id, user_id, platform, url, is_active, display_order, created_at)
		SELECT ?, ?, ?, ?, ?, COALESCE(?, COALESCE(MAX(display_order), -1) + 1), ?
		FROM social_links WHERE user_id = ?
	`, uuid.New().String(), userID, in.Platform, in.URL, in.active(), in.DisplayOrder, time.Now().Unix(), userID)
	// A concurrent add can pass the check above and lose at the index.
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("platform %s: %w", in.Platform, apperrors.ErrDuplicate)
	}
	return err
}

// Replace swaps the user's whole set of social links in one transaction.
func (r *Repository) Replace(ctx context.Context, userID string, inputs []Input) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM social_links WHERE user_id = ?", userID); err != nil {
		return err
	}

	now := time.Now().Unix()
	for i := range inputs {
		in := &inputs[i]
		order := i
		if in.DisplayOrder != nil {
			order = *in.DisplayOrder
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO social_links (id, user_id, platform, url, is_active, display_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), userID, in.Platform, in.URL, in.active(), order, now); err != nil {
			return fmt.Errorf("insert %s: %w", in.Platform, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) Remove(ctx context.Context, userID, platform string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM social_links WHERE user_id = ? AND platform = ?", userID, platform)
	return err
}
