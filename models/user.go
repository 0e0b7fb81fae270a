package models

import "gorm.io/gorm"

// User is an account that can sign in and maintain a watchlist. Admins may
// additionally mutate teams.
type User struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"isAdmin"`
}

// WatchlistEntry links a user to a player they follow. Ordering is insertion
// order; uniqueness of (user, player) is enforced by the handler rather than
// the schema so a duplicate add surfaces as a domain error, not a driver one.
type WatchlistEntry struct {
	gorm.Model
	UserID   uint `gorm:"not null;index" json:"userId"`
	PlayerID uint `gorm:"not null;index" json:"playerId"`
}
