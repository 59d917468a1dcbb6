package services

import (
	"errors"
	"fmt"

	"linkbio/internal/models"
	"linkbio/internal/repositories"

	"go.uber.org/zap"
)

// ErrInvalidLinkSet signals a reorder submission whose length does not match
// the caller's current link count.
var ErrInvalidLinkSet = errors.New("invalid link ids")

// LinkEventPublisher publishes link mutation events to the message broker.
// *rabbitmq.Client satisfies it.
type LinkEventPublisher interface {
	PublishLinkEvent(name string, userID uint, data map[string]interface{}) error
}

// LinkService owns the CRUD and ordering rules over one user's links.
type LinkService struct {
	linkRepo  repositories.LinkRepository
	publisher LinkEventPublisher
	logger    *zap.Logger
}

// NewLinkService creates a new LinkService. publisher may be nil, in which
// case mutation events are not published.
func NewLinkService(linkRepo repositories.LinkRepository, publisher LinkEventPublisher, logger *zap.Logger) *LinkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkService{
		linkRepo:  linkRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateLink inserts a new link owned by userID. Platform defaults to
// "custom"; new links start at order 0 and active.
func (s *LinkService) CreateLink(userID uint, title, url, platform string) (*models.Link, error) {
	if platform == "" {
		platform = "custom"
	}

	link := &models.Link{
		Title:    title,
		URL:      url,
		UserID:   userID,
		Platform: platform,
		Order:    0,
		IsActive: true,
	}

	if err := s.linkRepo.Create(link); err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	s.publishEvent("link.created", userID, map[string]interface{}{
		"link_id": link.ID,
		"title":   link.Title,
	})

	return link, nil
}

// ListLinks returns all of the user's links in display order.
func (s *LinkService) ListLinks(userID uint) ([]models.Link, error) {
	return s.linkRepo.ListByUser(userID)
}

// DeleteLink removes a link scoped to the owning user and returns the prior
// snapshot. The lookup is by id alone: a missing id fails with
// repositories.ErrLinkNotFound, while an id owned by another user returns its
// snapshot and removes nothing (the delete WHERE clause never matches).
func (s *LinkService) DeleteLink(userID, linkID uint) (*models.Link, error) {
	link, err := s.linkRepo.GetByID(linkID)
	if err != nil {
		return nil, err
	}

	removed, err := s.linkRepo.DeleteOwned(linkID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete link: %w", err)
	}

	if removed > 0 {
		s.publishEvent("link.deleted", userID, map[string]interface{}{
			"link_id": linkID,
		})
	} else {
		s.logger.Warn("delete matched no owned rows",
			zap.Uint("link_id", linkID),
			zap.Uint("user_id", userID))
	}

	return link, nil
}

// SaveOrder atomically applies a full reordering of the user's links. The
// submission length must equal the user's current link count; membership of
// individual ids is not verified, foreign ids no-op inside the transaction.
func (s *LinkService) SaveOrder(userID uint, orders []repositories.LinkOrder) error {
	count, err := s.linkRepo.CountByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to count links: %w", err)
	}

	if count != int64(len(orders)) {
		return ErrInvalidLinkSet
	}

	if err := s.linkRepo.UpdateOrders(userID, orders); err != nil {
		return fmt.Errorf("failed to save link order: %w", err)
	}

	s.publishEvent("links.reordered", userID, map[string]interface{}{
		"count": len(orders),
	})

	return nil
}

// publishEvent emits a link mutation event. Publishing is best-effort: a nil
// publisher skips it and broker failures are logged, never surfaced to callers.
func (s *LinkService) publishEvent(name string, userID uint, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLinkEvent(name, userID, data); err != nil {
		s.logger.Warn("failed to publish link event",
			zap.String("event", name),
			zap.Uint("user_id", userID),
			zap.Error(err))
	}
}
