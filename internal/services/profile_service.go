package services

import (
	"context"
	"encoding/json"
	"time"

	"linkbio/internal/models"
	"linkbio/internal/repositories"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const profileCacheTTL = 30 * time.Second

// Profile is the public projection of one user's page.
type Profile struct {
	Username string        `json:"username"`
	Links    []models.Link `json:"links"`
}

// ProfileService serves the unauthenticated public profile read path. It
// shares the link ordering contract with LinkService so the dashboard preview
// and the public page always agree.
type ProfileService struct {
	userRepo repositories.UserRepository
	linkRepo repositories.LinkRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewProfileService creates a new ProfileService. cache may be nil, in which
// case every read goes to the store.
func NewProfileService(userRepo repositories.UserRepository, linkRepo repositories.LinkRepository, cache *redis.Client, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		userRepo: userRepo,
		linkRepo: linkRepo,
		cache:    cache,
		logger:   logger,
	}
}

// GetByName resolves a username to its public profile. Unknown usernames fail
// with repositories.ErrUserNotFound. Responses are cached for a short TTL, so
// a just-mutated profile may be served stale for up to that window.
func (s *ProfileService) GetByName(ctx context.Context, username string) (*Profile, error) {
	cacheKey := "profile:" + username

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Profile
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	links, err := s.linkRepo.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		Username: user.Username,
		Links:    links,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(profile); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, profileCacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache profile",
					zap.String("username", username),
					zap.Error(err))
			}
		}
	}

	return profile, nil
}
