package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken stores the hash of an issued refresh token. The plain token is never persisted.
type RefreshToken struct {
	TenantModel
	UserID       uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	TokenHash    string     `json:"-" gorm:"not null;size:64;uniqueIndex"`
	ExpiresAt    time.Time  `json:"expires_at" gorm:"not null"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
	ReplacedByID *uuid.UUID `json:"replaced_by_id,omitempty" gorm:"type:uuid"`
}

// TableName returns the table name for RefreshToken
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Usable reports whether the token can still be exchanged at now
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
