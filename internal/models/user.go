package models

import (
	"strings"
	"time"
)

// User represents a customer or administrator of the store.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name         string    `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Avatar       string    `json:"avatar"`
	IsAdmin      bool      `json:"is_admin"`
	MemberSince  string    `json:"member_since"`
	Rank         string    `json:"rank,omitempty"`
	Credits      int       `json:"credits,omitempty" validate:"gte=0"`
	TierProgress int       `json:"tier_progress,omitempty" validate:"gte=0,lte=100"`
	LastLogin    time.Time `json:"last_login"`
	TotalSpent   float64   `json:"total_spent" validate:"gte=0"`
}

// NormalizeEmail is the form emails are stored and looked up in. Addresses
// that differ only in case belong to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
