package social

import (
	"context"
	"strings"

	apperrors "linkhub/internal/pkg/errors"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]Link, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) ListActive(ctx context.Context, userID string) ([]Link, error) {
	return s.repo.ListActive(ctx, userID)
}

func (s *Service) Add(ctx context.Context, userID string, in *Input) error {
	in.URL = strings.TrimSpace(in.URL)
	if err := in.Validate(); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, in)
}

func (s *Service) Replace(ctx context.Context, userID string, inputs []Input) error {
	seen := make(map[string]bool, len(inputs))
	for i := range inputs {
		inputs[i].URL = strings.TrimSpace(inputs[i].URL)
		if err := inputs[i].Validate(); err != nil {
			return err
		}
		if seen[inputs[i].Platform] {
			return apperrors.Validation("Each platform may only appear once")
		}
		seen[inputs[i].Platform] = true
	}
	return s.repo.Replace(ctx, userID, inputs)
}

func (s *Service) Remove(ctx context.Context, userID, platform string) error {
	if platform == "" {
		return apperrors.Validation("Platform parameter is required")
	}
	return s.repo.Remove(ctx, userID, platform)
}
