package appearance

import (
	"context"
	"database/sql"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns nil, nil when the user has never saved an appearance.
func (r *Repository) Get(ctx context.Context, userID string) (*Appearance, error) {
	var a Appearance
	var bg, button, text sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT profile_theme, custom_background_color, custom_button_color, custom_text_color
		FROM appearances WHERE user_id = ?
	`, userID).Scan(&a.ProfileTheme, &bg, &button, &text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.CustomBackgroundColor = nullable(bg)
	a.CustomButtonColor = nullable(button)
	a.CustomTextColor = nullable(text)
	return &a, nil
}

func (r *Repository) Upsert(ctx context.Context, userID string, a *Appearance) error {
	now := time.Now().Unix()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appearances (user_id, profile_theme, custom_background_color, custom_button_color, custom_text_color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			profile_theme = excluded.profile_theme,
			custom_background_color = excluded.custom_background_color,
			custom_button_color = excluded.custom_button_color,
			custom_text_color = excluded.custom_text_color,
			updated_at = excluded.updated_at
	`, userID, a.ProfileTheme, a.CustomBackgroundColor, a.CustomButtonColor, a.CustomTextColor, now, now)
	return err
}

// CleanupCustomColors clears stored black and white custom colors and returns
// the number of rows touched.
func (r *Repository) CleanupCustomColors(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appearances SET
			custom_background_color = CASE WHEN LOWER(TRIM(custom_background_color)) IN ('', '#000', '#000000', '#fff', '#ffffff', 'black', 'white') THEN NULL ELSE custom_background_color END,
			custom_button_color = CASE WHEN LOWER(TRIM(custom_button_color)) IN ('', '#000', '#000000', '#fff', '#ffffff', 'black', 'white') THEN NULL ELSE custom_button_color END,
			custom_text_color = CASE WHEN LOWER(TRIM(custom_text_color)) IN ('', '#000', '#000000', '#fff', '#ffffff', 'black', 'white') THEN NULL ELSE custom_text_color END
		WHERE LOWER(TRIM(custom_background_color)) IN ('', '#000', '#000000', '#fff', '#ffffff', 'black', 'white')
		   OR LOWER(TRIM(custom_button_color)) IN ('', '#000', '#000000', '#fff', '#ffffff', 'black', 'white')
		   OR LOWER(TRIM(custom_text_color)) IN ('', '#000', '#000000', '#fff', '#ffffff', 'black', 'white')
	`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
