package repositories

import (
	"errors"
	"fmt"

	"linkbio/internal/models"

	"gorm.io/gorm"
)

// displayOrder is the shared ordering contract for the dashboard list and the
// public profile. "order" is quoted because it is a reserved word.
const displayOrder = `"order" ASC, updated_at ASC`

// GORMLinkRepository is a GORM implementation of LinkRepository.
type GORMLinkRepository struct {
	db *gorm.DB
}

// NewGORMLinkRepository creates a new instance of GORMLinkRepository.
func NewGORMLinkRepository(db *gorm.DB) *GORMLinkRepository {
	return &GORMLinkRepository{
		db: db,
	}
}

// Create inserts a new link row.
func (r *GORMLinkRepository) Create(link *models.Link) error {
	if err := r.db.Create(link).Error; err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

// GetByID retrieves a link by primary key regardless of owner.
func (r *GORMLinkRepository) GetByID(id uint) (*models.Link, error) {
	var link models.Link
	if err := r.db.First(&link, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link by ID %d: %w", id, err)
	}
	return &link, nil
}

// ListByUser retrieves all of one user's links in display order.
func (r *GORMLinkRepository) ListByUser(userID uint) ([]models.Link, error) {
	links := make([]models.Link, 0)
	if err := r.db.
		Where("user_id = ?", userID).
		Order(displayOrder).
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list links for user %d: %w", userID, err)
	}
	return links, nil
}

// CountByUser returns how many links the user currently owns.
func (r *GORMLinkRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Link{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count links for user %d: %w", userID, err)
	}
	return count, nil
}

// DeleteOwned removes the link only when both id and owner match, returning
// the number of rows removed. Zero rows is not an error: a foreign id simply
// does not match the WHERE clause.
func (r *GORMLinkRepository) DeleteOwned(id, userID uint) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Link{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete link %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// UpdateOrders applies every (id, order) pair inside a single transaction.
// Each update is scoped to the owning user, so pairs referencing foreign ids
// affect zero rows. Any failure rolls the whole set back.
func (r *GORMLinkRepository) UpdateOrders(userID uint, orders []LinkOrder) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			res := tx.Model(&models.Link{}).
				Where("id = ? AND user_id = ?", o.ID, userID).
				Update("order", o.Order)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update link order for user %d: %w", userID, err)
	}
	return nil
}
