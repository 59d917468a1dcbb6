package models

import "time"

// Link represents a single outbound entry on a user's public page.
// Display position within one user's collection is defined by Order
// ascending, with UpdatedAt ascending as the tiebreak.
type Link struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(50)" validate:"required,max=50"`
	URL       string    `json:"url" gorm:"type:text" validate:"required"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Platform  string    `json:"platform" gorm:"type:varchar(50);default:custom"`
	Order     int       `json:"order" gorm:"column:order;not null;default:0"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
