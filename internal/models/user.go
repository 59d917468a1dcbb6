package models

import "time"

// User represents an account that owns a collection of links.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(20)" validate:"required,min=3,max=20"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(60)"` // Never serialized
	Plan         string    `json:"plan" gorm:"type:varchar(10);default:free"`
	CustomerID   *string   `json:"-" gorm:"uniqueIndex;type:varchar(255)"`
	Links        []Link    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
