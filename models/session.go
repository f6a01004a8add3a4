package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side half of a login. The cookie only carries a signed
// reference to Token; deleting the row ends the session everywhere.
type Session struct {
	Token     string    `json:"-" db:"token" gorm:"type:text;primaryKey;not null"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index:idx_sessions_user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at" gorm:"not null;index:idx_sessions_expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
