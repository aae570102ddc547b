package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"linkhub/internal/platform/metrics"
	apperrors "linkhub/internal/pkg/errors"
)

// ProfileInvalidator drops a cached public profile, whose links carry click
// counts.
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, username string)
}

// Service resolves the owner of a tracked entity and hands the event to a
// Recorder. Lookups always go to the database.
type Service struct {
	store    *Store
	recorder Recorder
	profiles ProfileInvalidator
	now      func() time.Time
}

// NewService records through recorder, or synchronously through store when
// recorder is nil. profiles may be nil.
func NewService(store *Store, recorder Recorder, profiles ProfileInvalidator) *Service {
	if recorder == nil {
		recorder = store
	}
	return &Service{store: store, recorder: recorder, profiles: profiles, now: time.Now}
}

func (s *Service) TrackClick(ctx context.Context, linkID string, v Visitor) error {
	if _, err := uuid.Parse(linkID); err != nil {
		return apperrors.Validation("Invalid link ID")
	}

	owner, username, err := s.store.LinkOwner(ctx, linkID)
	if err != nil {
		return err
	}
	if owner == "" {
		return fmt.Errorf("link %s: %w", linkID, apperrors.ErrNotFound)
	}

	err = s.recorder.RecordClick(ctx, &ClickEvent{
		ID:        uuid.New().String(),
		LinkID:    linkID,
		UserID:    owner,
		Visitor:   v,
		ClickedAt: s.now(),
	})
	if err != nil {
		return err
	}

	metrics.EventsTracked.WithLabelValues(KindClick).Inc()
	if s.profiles != nil {
		s.profiles.Invalidate(ctx, username)
	}
	return nil
}

func (s *Service) TrackView(ctx context.Context, username string, v Visitor) error {
	if username == "" {
		return apperrors.Validation("Username is required")
	}

	userID, err := s.store.UserIDByUsername(ctx, username)
	if err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("user %s: %w", username, apperrors.ErrNotFound)
	}

	err = s.recorder.RecordView(ctx, &ViewEvent{
		ID:       uuid.New().String(),
		UserID:   userID,
		Visitor:  v,
		ViewedAt: s.now(),
	})
	if err != nil {
		return err
	}

	metrics.EventsTracked.WithLabelValues(KindView).Inc()
	return nil
}
