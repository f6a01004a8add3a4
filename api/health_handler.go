package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/creator-directory-backend/database"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	database    database.Database
	startupTime time.Time
}

func newHealthHandler(database database.Database, startupTime time.Time) healthHandler {
	return healthHandler{
		responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		database:    database,
		startupTime: startupTime,
	}
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status":    "ok",
			"startedAt": h.startupTime.UTC().Format(time.RFC3339),
			"uptime":    time.Since(h.startupTime).Round(time.Second).String(),
		}

		if err := h.database.Ping(); err != nil {
			h.responder.logger.Error().Err(err).Msg("database ping failed")
			body["status"] = "degraded"
			h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, body)
			return
		}

		h.responder.WriteJSON(w, body)
	}
}
