package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/creator-directory-backend/models"
	"gorm.io/gorm"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db}
}

// FindByToken returns the session for token, or nil if it does not exist
func (r *SessionRepo) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Add inserts a new session
func (r *SessionRepo) Add(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Delete removes a session by token. Deleting a missing session is not an error.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error
}

// DeleteExpired removes every session that expired at or before now
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Session{}, "expires_at <= ?", now.UTC())
	return res.RowsAffected, res.Error
}
