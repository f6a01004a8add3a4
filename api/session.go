package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/config"
	"github.com/rpupo63/creator-directory-backend/database"
	"github.com/rpupo63/creator-directory-backend/errs"
	"github.com/rpupo63/creator-directory-backend/models"
)

// sessionManager issues and resolves login sessions. The cookie holds an
// HS256 token whose jti names a row in the sessions table, so a session can
// be revoked server-side by deleting that row.
type sessionManager struct {
	sessionRepo *database.SessionRepo
	secret      []byte
	ttl         time.Duration
	cookieName  string
	secure      bool
	now         func() time.Time
}

const defaultSessionTTLHours = 24

func newSessionManager(sessionRepo *database.SessionRepo, c map[string]string) sessionManager {
	ttlHours := config.GetInt(c, "SESSION_TTL_HOURS", defaultSessionTTLHours)
	if ttlHours <= 0 {
		ttlHours = defaultSessionTTLHours
	}
	return sessionManager{
		sessionRepo: sessionRepo,
		secret:      []byte(config.GetString(c, "SESSION_SECRET", "")),
		ttl:         time.Duration(ttlHours) * time.Hour,
		cookieName:  config.GetString(c, "SESSION_COOKIE_NAME", "sid"),
		secure:      config.GetBool(c, "SESSION_COOKIE_SECURE", false),
		now:         time.Now,
	}
}

// issue persists a new session for userID and sets the session cookie.
func (m sessionManager) issue(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) (*models.Session, error) {
	now := m.now().UTC()
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        session.Token,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}).SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	if err := m.sessionRepo.Add(ctx, session); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

// load resolves the session carried by r. Every failure is an *errs.ApiErr
// with status 401 except store errors.
func (m sessionManager) load(ctx context.Context, r *http.Request) (*models.Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, errs.NewMissingSessionError()
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, errs.NewExpiredSessionError()
	}
	if err != nil || claims.ID == "" {
		return nil, errs.NewInvalidSessionError(err)
	}

	session, err := m.sessionRepo.FindByToken(ctx, claims.ID)
	if err != nil {
		return nil, wrapDatabaseError("find", "session", err)
	}
	if session == nil || session.UserID.String() != claims.Subject {
		return nil, errs.NewInvalidSessionError(nil)
	}
	if session.Expired(m.now()) {
		return nil, errs.NewExpiredSessionError()
	}
	return session, nil
}

// destroy deletes the session row and expires the cookie.
func (m sessionManager) destroy(ctx context.Context, w http.ResponseWriter, session *models.Session) error {
	if err := m.sessionRepo.Delete(ctx, session.Token); err != nil {
		return err
	}
	m.clearCookie(w)
	return nil
}

func (m sessionManager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
