package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"linkhub/internal/engine/appearance"
	"linkhub/internal/engine/links"
	"linkhub/internal/engine/social"
	"linkhub/internal/platform/cache"
	"linkhub/internal/platform/models"
	"linkhub/internal/platform/repositories"
	apperrors "linkhub/internal/pkg/errors"
)

type PublicUser struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	AvatarURL      *string `json:"avatar_url"`
	Bio            *string `json:"bio"`
	AboutMe        *string `json:"about_me"`
	Hobby          *string `json:"hobby"`
	TechStack      *string `json:"tech_stack"`
	FooterMessage  *string `json:"footer_message"`
	WelcomeMessage *string `json:"welcome_message"`
}

type PublicProfile struct {
	User        PublicUser             `json:"user"`
	Links       []*links.Link          `json:"links"`
	Appearance  *appearance.Appearance `json:"appearance"`
	SocialLinks []social.Link          `json:"social_links"`
}

type Service struct {
	users      *repositories.UserRepository
	links      *links.Service
	appearance *appearance.Service
	social     *social.Service
	cache      cache.Cache
	ttl        time.Duration
}

func NewService(
	users *repositories.UserRepository,
	linkService *links.Service,
	appearanceService *appearance.Service,
	socialService *social.Service,
	c cache.Cache,
	ttl time.Duration,
) *Service {
	return &Service{
		users:      users,
		links:      linkService,
		appearance: appearanceService,
		social:     socialService,
		cache:      c,
		ttl:        ttl,
	}
}

func (s *Service) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, userID, username string, in *UpdateInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.users.UpdateProfile(ctx, userID, in.Profile()); err != nil {
		return err
	}
	s.Invalidate(ctx, username)
	return nil
}

// SetAvatar stores url, or removes the avatar when url is nil.
func (s *Service) SetAvatar(ctx context.Context, userID, username string, url *string) error {
	if err := s.users.SetAvatar(ctx, userID, url); err != nil {
		return err
	}
	s.Invalidate(ctx, username)
	return nil
}

// Public assembles the visitor view of a profile, reading through the cache.
func (s *Service) Public(ctx context.Context, username string) (*PublicProfile, error) {
	key := cacheKey(username)

	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("profile cache read failed")
	} else if ok {
		var p PublicProfile
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
	}

	p, err := s.buildPublic(ctx, username)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(p); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("profile cache write failed")
		}
	}
	return p, nil
}

func (s *Service) buildPublic(ctx context.Context, username string) (*PublicProfile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", username, apperrors.ErrNotFound)
	}

	activeLinks, err := s.links.ListActiveLinks(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	look, err := s.appearance.Get(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("appearance: %w", err)
	}
	socialLinks, err := s.social.ListActive(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("social links: %w", err)
	}

	return &PublicProfile{
		User: PublicUser{
			ID:             user.ID,
			Name:           user.Name,
			Username:       user.Username,
			AvatarURL:      user.AvatarURL,
			Bio:            user.Bio,
			AboutMe:        user.AboutMe,
			Hobby:          user.Hobby,
			TechStack:      user.TechStack,
			FooterMessage:  user.FooterMessage,
			WelcomeMessage: user.WelcomeMessage,
		},
		Links:       activeLinks,
		Appearance:  look,
		SocialLinks: socialLinks,
	}, nil
}

// Invalidate drops the cached public profile of username. Errors are logged;
// the entry expires on its own.
func (s *Service) Invalidate(ctx context.Context, username string) {
	if username == "" {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(username)); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("profile cache invalidation failed")
	}
}

func cacheKey(username string) string {
	return "profile:" + username
}
