package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"linkhub/internal/platform/models"
)

const userColumns = `
	id, name, username, email, password_hash, avatar_url, bio, about_me,
	hobby, tech_stack, footer_message, welcome_message, created_at, updated_at
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

func (r *UserRepository) CreateTx(ctx context.Context, tx *sql.Tx, user *models.User) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, name, username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return err
}

// CreateWithAppearance inserts the user and its default appearance row atomically.
func (r *UserRepository) CreateWithAppearance(ctx context.Context, user *models.User) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.CreateTx(ctx, tx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO appearances (user_id, profile_theme, created_at, updated_at)
		VALUES (?, 'light', ?, ?)
	`, user.ID, user.CreatedAt, user.UpdatedAt); err != nil {
		return fmt.Errorf("insert default appearance: %w", err)
	}

	return tx.Commit()
}

// GetByID returns nil, nil when no user matches.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, p *models.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			name = ?, bio = ?, avatar_url = ?, about_me = ?, hobby = ?,
			tech_stack = ?, footer_message = ?, welcome_message = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Bio, p.AvatarURL, p.AboutMe, p.Hobby,
		p.TechStack, p.FooterMessage, p.WelcomeMessage, time.Now().Unix(), id)
	return err
}

// SetAvatar stores url, or clears the avatar when url is nil.
func (r *UserRepository) SetAvatar(ctx context.Context, id string, url *string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET avatar_url = ?, updated_at = ? WHERE id = ?",
		url, time.Now().Unix(), id,
	)
	return err
}

func scanUser(s interface {
	Scan(dest ...interface{}) error
}) (*models.User, error) {
	var u models.User
	var avatarURL, bio, aboutMe, hobby, techStack, footer, welcome sql.NullString

	err := s.Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash,
		&avatarURL, &bio, &aboutMe, &hobby, &techStack, &footer, &welcome,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	u.AvatarURL = nullable(avatarURL)
	u.Bio = nullable(bio)
	u.AboutMe = nullable(aboutMe)
	u.Hobby = nullable(hobby)
	u.TechStack = nullable(techStack)
	u.FooterMessage = nullable(footer)
	u.WelcomeMessage = nullable(welcome)

	return &u, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
