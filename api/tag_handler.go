package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/creator-directory-backend/database"
	"github.com/rpupo63/creator-directory-backend/errs"
	"github.com/rpupo63/creator-directory-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// createTag registers a new tag
// @Summary Create tag
// @Tags Tags
// @Accept json
// @Produce json
// @Success 201 {object} models.Tag
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /influencers/tags [post]
// @Router /blogs/tags [post]
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text any `json:"text"`
		}
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		text, ok := req.Text.(string)
		if !ok || strings.TrimSpace(text) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("Tag text is required and must be a string.", "text", ""))
			return
		}

		existing, err := h.tagRepo.FindByText(r.Context(), text)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewConflictError("Tag already exists."))
			return
		}

		tag := models.Tag{Text: text}
		if err := h.tagRepo.Add(r.Context(), &tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}

		h.responder.WriteMessage(w, http.StatusCreated, "Tag created successfully.", map[string]any{"tag": tag})
	}
}

// listTags returns every tag sorted by text
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Failure 404 {object} ErrorResponse
// @Router /influencers/tags [get]
func (h tagHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}
		if len(tags) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("No tags found."))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"tags": tags})
	}
}

// deleteTag removes a tag and detaches it from every influencer
// @Summary Delete tag
// @Tags Tags
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /influencers/tags/{tagID} [delete]
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseUUID(chi.URLParam(r, "tagID"), "tag")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.tagRepo.Delete(r.Context(), tagID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("Tag not found."))
				return
			}
			h.responder.WriteError(w, errs.NewTransactionFailedError("delete tag", err))
			return
		}

		h.logger.Info().Str("tagID", tagID.String()).Msg("tag deleted")
		h.responder.WriteMessage(w, http.StatusOK, "Tag deleted successfully.", nil)
	}
}
