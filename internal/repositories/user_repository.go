package repositories

import (
	"errors"

	"linkbio/internal/models"
)

// ErrUserNotFound signals that no user matched the lookup key.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
}
