package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/creator-directory-backend/database"
	"github.com/rpupo63/creator-directory-backend/errs"
	"github.com/rpupo63/creator-directory-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	sessionRepo *database.SessionRepo
	sessions    sessionManager
}

func newAuthHandler(userRepo *database.UserRepo, sessionRepo *database.SessionRepo, sessions sessionManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessions:    sessions,
	}
}

type registerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// register creates a new account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req.FirstName = strings.TrimSpace(req.FirstName)
		req.LastName = strings.TrimSpace(req.LastName)
		req.Email = strings.TrimSpace(req.Email)
		req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
		if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.PhoneNumber == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("All fields are required."))
			return
		}

		existing, err := h.userRepo.FindByEmailOrPhone(r.Context(), req.Email, req.PhoneNumber)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewConflictError("User with this email or phone number already exists."))
			return
		}

		user := models.User{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Password:    req.Password,
		}
		if err := h.userRepo.Add(r.Context(), &user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		h.logger.Info().Str("userID", user.ID.String()).Msg("user registered")
		h.responder.WriteMessage(w, http.StatusCreated, "User registered successfully.", nil)
	}
}

// login checks credentials and starts a session
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		identifier := strings.TrimSpace(req.Identifier)
		if identifier == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("All fields are required."))
			return
		}

		user, err := h.userRepo.FindByIdentifier(r.Context(), identifier)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil || !user.ComparePassword(req.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		// A fresh login replaces whatever session the client already had.
		if previous, err := h.sessions.load(r.Context(), r); err == nil {
			if err := h.sessionRepo.Delete(r.Context(), previous.Token); err != nil {
				h.logger.Warn().Err(err).Msg("failed to drop previous session")
			}
		}

		if _, err := h.sessions.issue(r.Context(), w, user.ID); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to create session", err))
			return
		}

		h.responder.WriteMessage(w, http.StatusOK, "Login successful.", map[string]any{"user": user})
	}
}

// me returns the logged in user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := ctxGetSession(r.Context())
		if session == nil {
			h.responder.WriteError(w, errs.NewMissingSessionError())
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), session.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found."))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"user": user})
	}
}

// logout ends the current session
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := ctxGetSession(r.Context())
		if session == nil {
			h.responder.WriteError(w, errs.NewMissingSessionError())
			return
		}

		if err := h.sessions.destroy(r.Context(), w, session); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Unable to log out.", err))
			return
		}

		h.responder.WriteMessage(w, http.StatusOK, "Logout successful.", nil)
	}
}
