package appearance

import "context"

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Get falls back to the default light theme.
func (s *Service) Get(ctx context.Context, userID string) (*Appearance, error) {
	a, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return Default(), nil
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, userID string, in *UpdateInput) (*Appearance, error) {
	a, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, userID, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) CleanupCustomColors(ctx context.Context) (int64, error) {
	return s.repo.CleanupCustomColors(ctx)
}
