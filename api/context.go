package api

import (
	"context"

	"github.com/rpupo63/creator-directory-backend/models"
)

type keyType string

const (
	sessionKey keyType = "session"
)

// ctxWithSession attaches the verified session to the context
func ctxWithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// ctxGetSession retrieves the session stored by the auth gate, or nil
func ctxGetSession(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionKey).(*models.Session)
	return session
}
