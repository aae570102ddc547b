package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"linkhub/internal/platform/database/dbtest"
	"linkhub/internal/platform/models"
)

func newUser(id, username string) *models.User {
	now := time.Now().Unix()
	return &models.User{
		ID:           id,
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CreateWithAppearance(t *testing.T) {
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.CreateWithAppearance(ctx, newUser("usr_1", "alice")); err != nil {
		t.Fatalf("CreateWithAppearance() error = %v", err)
	}

	var theme string
	if err := db.QueryRow("SELECT profile_theme FROM appearances WHERE user_id = ?", "usr_1").Scan(&theme); err != nil {
		t.Fatalf("Expected default appearance row: %v", err)
	}
	if theme != "light" {
		t.Errorf("Expected light theme, got %s", theme)
	}

	byName, err := repo.GetByUsername(ctx, "alice")
	if err != nil || byName == nil {
		t.Fatalf("GetByUsername() = %v, %v", byName, err)
	}
	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil || byEmail == nil || byEmail.ID != "usr_1" {
		t.Fatalf("GetByEmail() = %v, %v", byEmail, err)
	}
	if byEmail.Bio != nil || byEmail.AvatarURL != nil {
		t.Errorf("Expected NULL optional fields, got %+v", byEmail)
	}

	// Duplicate username leaves no second appearance behind.
	dup := newUser("usr_2", "alice")
	dup.Email = "other@example.com"
	if err := repo.CreateWithAppearance(ctx, dup); err == nil {
		t.Fatal("Expected unique violation on username")
	}
	var count int
	db.QueryRow("SELECT COUNT(*) FROM appearances").Scan(&count)
	if count != 1 {
		t.Errorf("Expected 1 appearance row, got %d", count)
	}
}

func TestUserRepository_CreateWithAppearance_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO appearances").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := NewUserRepository(db)
	if err := repo.CreateWithAppearance(context.Background(), newUser("usr_1", "alice")); err == nil {
		t.Fatal("Expected error from appearance insert")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := NewUserRepository(dbtest.New(t))

	user, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("Expected nil user, got %+v", user)
	}
}

func TestUserRepository_UpdateProfileAndAvatar(t *testing.T) {
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	dbtest.CreateUser(t, db, "usr_1", "alice")

	bio := "Hello"
	if err := repo.UpdateProfile(ctx, "usr_1", &models.Profile{Name: "Alice", Bio: &bio}); err != nil {
		t.Fatal(err)
	}

	avatar := "/uploads/avatars/a.jpg"
	if err := repo.SetAvatar(ctx, "usr_1", &avatar); err != nil {
		t.Fatal(err)
	}

	user, err := repo.GetByID(ctx, "usr_1")
	if err != nil || user == nil {
		t.Fatalf("GetByID() = %v, %v", user, err)
	}
	if user.Name != "Alice" || user.Bio == nil || *user.Bio != "Hello" {
		t.Errorf("Profile not updated: %+v", user)
	}
	if user.AvatarURL == nil || *user.AvatarURL != avatar {
		t.Errorf("Avatar not set: %v", user.AvatarURL)
	}

	if err := repo.SetAvatar(ctx, "usr_1", nil); err != nil {
		t.Fatal(err)
	}
	user, _ = repo.GetByID(ctx, "usr_1")
	if user.AvatarURL != nil {
		t.Errorf("Expected avatar cleared, got %v", *user.AvatarURL)
	}
}
