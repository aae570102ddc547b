package links

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "linkhub/internal/pkg/errors"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateLink(ctx context.Context, userID string, in *CreateInput) (*Link, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	if err := ValidateCreate(in); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	link := &Link{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     in.Title,
		URL:       in.URL,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil && *in.Description != "" {
		link.Description = in.Description
	}
	if in.IsActive != nil {
		link.IsActive = *in.IsActive
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (s *Service) ListLinks(ctx context.Context, userID string) ([]*Link, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListActiveLinks(ctx context.Context, userID string) ([]*Link, error) {
	return s.repo.ListActiveByUser(ctx, userID)
}

func (s *Service) GetLink(ctx context.Context, id string) (*Link, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateLink(ctx context.Context, userID, id string, in *UpdateInput) (*Link, error) {
	if err := ValidateUpdate(in); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteLink(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Reorder(ctx context.Context, userID string, ids []string) error {
	if err := ValidateReorder(ids); err != nil {
		return err
	}
	return s.repo.Reorder(ctx, userID, ids)
}

func (s *Service) owned(ctx context.Context, userID, id string) (*Link, error) {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("link %s: %w", id, apperrors.ErrNotFound)
	}
	if link.UserID != userID {
		return nil, fmt.Errorf("link %s: %w", id, apperrors.ErrForbidden)
	}
	return link, nil
}
