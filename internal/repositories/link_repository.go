package repositories

import (
	"errors"

	"linkbio/internal/models"
)

// ErrLinkNotFound signals that the requested link does not exist.
var ErrLinkNotFound = errors.New("link not found")

// LinkOrder pairs a link id with its desired display position.
type LinkOrder struct {
	ID    uint `json:"id"`
	Order int  `json:"order"`
}

// LinkRepository defines the interface for link data access.
//
// All reads that return multiple links use the display ordering contract:
// "order" ascending, then updated_at ascending. Mutations that take a userID
// are scoped to rows owned by that user.
type LinkRepository interface {
	Create(link *models.Link) error
	GetByID(id uint) (*models.Link, error)
	ListByUser(userID uint) ([]models.Link, error)
	CountByUser(userID uint) (int64, error)
	DeleteOwned(id, userID uint) (int64, error)
	UpdateOrders(userID uint, orders []LinkOrder) error
}
