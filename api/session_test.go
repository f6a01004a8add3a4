package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(t *testing.T) (sessionManager, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	m := newSessionManager(env.db.SessionRepo(), map[string]string{"SESSION_SECRET": testSecret})
	return m, env
}

// issueCookie runs issue against a recorder and returns the cookie it set.
func issueCookie(t *testing.T, m sessionManager, userID uuid.UUID) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	_, err := m.issue(context.Background(), rec, userID)
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func requestWith(cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestSessionIssueAndLoad(t *testing.T) {
	m, _ := newTestSessionManager(t)
	userID := uuid.New()

	cookie := issueCookie(t, m, userID)
	assert.Equal(t, "sid", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 24*60*60, cookie.MaxAge)

	session, err := m.load(context.Background(), requestWith(cookie))
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
}

func TestSessionTTLFallsBackToDefault(t *testing.T) {
	for _, raw := range []string{"0", "-3", "soon"} {
		m := newSessionManager(nil, map[string]string{"SESSION_SECRET": testSecret, "SESSION_TTL_HOURS": raw})
		assert.Equal(t, 24*time.Hour, m.ttl, raw)
	}

	m := newSessionManager(nil, map[string]string{"SESSION_SECRET": testSecret, "SESSION_TTL_HOURS": "2"})
	assert.Equal(t, 2*time.Hour, m.ttl)
}

func TestSessionLoadFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing cookie", func(t *testing.T) {
		m, _ := newTestSessionManager(t)
		_, err := m.load(ctx, requestWith(nil))
		assert.True(t, errs.IsMissingSessionError(err))
	})

	t.Run("tampered token", func(t *testing.T) {
		m, _ := newTestSessionManager(t)
		cookie := issueCookie(t, m, uuid.New())
		cookie.Value += "x"
		_, err := m.load(ctx, requestWith(cookie))
		assert.True(t, errs.IsInvalidSessionError(err))
	})

	t.Run("signed with another secret", func(t *testing.T) {
		m, _ := newTestSessionManager(t)
		other := m
		other.secret = []byte("someone-else")
		cookie := issueCookie(t, other, uuid.New())
		_, err := m.load(ctx, requestWith(cookie))
		assert.True(t, errs.IsInvalidSessionError(err))
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		m, _ := newTestSessionManager(t)
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			ID:      uuid.NewString(),
			Subject: uuid.NewString(),
		}).SignedString(m.secret)
		require.NoError(t, err)
		_, err = m.load(ctx, requestWith(&http.Cookie{Name: "sid", Value: signed}))
		assert.True(t, errs.IsInvalidSessionError(err))
	})

	t.Run("token expired", func(t *testing.T) {
		m, _ := newTestSessionManager(t)
		cookie := issueCookie(t, m, uuid.New())
		m.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
		_, err := m.load(ctx, requestWith(cookie))
		assert.True(t, errs.IsExpiredSessionError(err))
	})

	t.Run("row deleted", func(t *testing.T) {
		m, env := newTestSessionManager(t)
		rec := httptest.NewRecorder()
		session, err := m.issue(ctx, rec, uuid.New())
		require.NoError(t, err)
		require.NoError(t, env.db.SessionRepo().Delete(ctx, session.Token))

		_, err = m.load(ctx, requestWith(rec.Result().Cookies()[0]))
		assert.True(t, errs.IsInvalidSessionError(err))
	})

	t.Run("row expired before token", func(t *testing.T) {
		m, env := newTestSessionManager(t)
		rec := httptest.NewRecorder()
		session, err := m.issue(ctx, rec, uuid.New())
		require.NoError(t, err)
		require.NoError(t, env.gorm.Model(session).Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)

		_, err = m.load(ctx, requestWith(rec.Result().Cookies()[0]))
		assert.True(t, errs.IsExpiredSessionError(err))
	})
}

func TestSessionDestroy(t *testing.T) {
	ctx := context.Background()
	m, env := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	session, err := m.issue(ctx, rec, uuid.New())
	require.NoError(t, err)
	cookie := rec.Result().Cookies()[0]

	out := httptest.NewRecorder()
	require.NoError(t, m.destroy(ctx, out, session))
	cleared := out.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)

	stored, err := env.db.SessionRepo().FindByToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = m.load(ctx, requestWith(cookie))
	assert.True(t, errs.IsInvalidSessionError(err))
}
