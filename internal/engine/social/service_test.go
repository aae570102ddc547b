package social

import (
	"context"
	"errors"
	"testing"

	"linkhub/internal/platform/database/dbtest"
	apperrors "linkhub/internal/pkg/errors"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestService_Add(t *testing.T) {
	db := dbtest.New(t)
	dbtest.CreateUser(t, db, "u1", "alice")
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	if err := svc.Add(ctx, "u1", &Input{Platform: "github", URL: "https://github.com/alice"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := svc.Add(ctx, "u1", &Input{Platform: "twitter", URL: "https://twitter.com/alice", IsActive: boolPtr(false)}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	err := svc.Add(ctx, "u1", &Input{Platform: "github", URL: "https://github.com/other"})
	if !errors.Is(err, apperrors.ErrDuplicate) {
		t.Errorf("Expected duplicate error, got %v", err)
	}

	links, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(links))
	}
	if links[0].Platform != "github" || links[0].DisplayOrder != 0 {
		t.Errorf("Unexpected first link %+v", links[0])
	}
	if links[1].DisplayOrder != 1 || links[1].IsActive {
		t.Errorf("Unexpected second link %+v", links[1])
	}

	active, _ := svc.ListActive(ctx, "u1")
	if len(active) != 1 {
		t.Errorf("Expected 1 active link, got %d", len(active))
	}
}

func TestService_AddValidation(t *testing.T) {
	svc := NewService(NewRepository(dbtest.New(t)))

	tests := []struct {
		name string
		in   Input
	}{
		{"unknown platform", Input{Platform: "myspace", URL: "https://myspace.com/a"}},
		{"bad url", Input{Platform: "github", URL: "not a url"}},
		{"negative order", Input{Platform: "github", URL: "https://github.com/a", DisplayOrder: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := apperrors.AsValidation(svc.Add(context.Background(), "u1", &tt.in)); !ok {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestService_Replace(t *testing.T) {
	db := dbtest.New(t)
	dbtest.CreateUser(t, db, "u1", "alice")
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	svc.Add(ctx, "u1", &Input{Platform: "discord", URL: "https://discord.gg/x"})

	err := svc.Replace(ctx, "u1", []Input{
		{Platform: "youtube", URL: "https://youtube.com/@alice"},
		{Platform: "website", URL: "https://alice.dev", DisplayOrder: intPtr(9)},
		{Platform: "github", URL: "https://github.com/alice"},
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	links, _ := svc.List(ctx, "u1")
	want := []struct {
		platform string
		order    int
	}{{"youtube", 0}, {"github", 2}, {"website", 9}}
	if len(links) != len(want) {
		t.Fatalf("Expected %d links, got %+v", len(want), links)
	}
	for i, w := range want {
		if links[i].Platform != w.platform || links[i].DisplayOrder != w.order {
			t.Errorf("links[%d] = %+v, want %s@%d", i, links[i], w.platform, w.order)
		}
	}

	err = svc.Replace(ctx, "u1", []Input{
		{Platform: "github", URL: "https://github.com/a"},
		{Platform: "github", URL: "https://github.com/b"},
	})
	if _, ok := apperrors.AsValidation(err); !ok {
		t.Errorf("Expected validation error for duplicate platforms, got %v", err)
	}
	if links, _ := svc.List(ctx, "u1"); len(links) != 3 {
		t.Errorf("Rejected replace modified data: %+v", links)
	}
}

func TestService_Remove(t *testing.T) {
	db := dbtest.New(t)
	dbtest.CreateUser(t, db, "u1", "alice")
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	svc.Add(ctx, "u1", &Input{Platform: "tiktok", URL: "https://tiktok.com/@alice"})

	if _, ok := apperrors.AsValidation(svc.Remove(ctx, "u1", "")); !ok {
		t.Error("Expected validation error for missing platform")
	}
	if err := svc.Remove(ctx, "u1", "tiktok"); err != nil {
		t.Fatal(err)
	}
	if links, _ := svc.List(ctx, "u1"); len(links) != 0 {
		t.Errorf("Expected no links, got %+v", links)
	}
}
