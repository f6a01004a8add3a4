package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/database"
	"github.com/rpupo63/creator-directory-backend/errs"
	"github.com/rpupo63/creator-directory-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type influencerHandler struct {
	responder      Responder
	logger         zerolog.Logger
	influencerRepo *database.InfluencerRepo
	tagRepo        *database.TagRepo
}

func newInfluencerHandler(influencerRepo *database.InfluencerRepo, tagRepo *database.TagRepo) influencerHandler {
	logger := log.With().Str("handlerName", "influencerHandler").Logger()

	return influencerHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		influencerRepo: influencerRepo,
		tagRepo:        tagRepo,
	}
}

// influencerRequest carries create and update bodies. Nil fields were not sent.
type influencerRequest struct {
	Name            *string           `json:"name"`
	Description     *string           `json:"description"`
	InstagramHandle *string           `json:"instagramHandle"`
	XHandle         *string           `json:"xHandle"`
	SocialLinks     datatypes.JSONMap `json:"socialLinks"`
	ProfileImage    *string           `json:"profileImage"`
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// apply copies every supplied field onto influencer
func (req influencerRequest) apply(influencer *models.Influencer) {
	if req.Name != nil {
		influencer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		influencer.Description = strings.TrimSpace(*req.Description)
	}
	if req.InstagramHandle != nil {
		influencer.InstagramHandle = req.InstagramHandle
	}
	if req.XHandle != nil {
		influencer.XHandle = req.XHandle
	}
	if req.SocialLinks != nil {
		influencer.SocialLinks = req.SocialLinks
	}
	if req.ProfileImage != nil {
		influencer.ProfileImage = req.ProfileImage
	}
}

// findInfluencer resolves the {influencerID} path parameter, writing the
// error response itself when it fails
func (h influencerHandler) findInfluencer(w http.ResponseWriter, r *http.Request) *models.Influencer {
	influencerID, err := parseUUID(chi.URLParam(r, "influencerID"), "influencer")
	if err != nil {
		h.responder.WriteError(w, err)
		return nil
	}

	influencer, err := h.influencerRepo.FindByID(r.Context(), influencerID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "influencer", err))
		return nil
	}
	if influencer == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("Influencer not found."))
		return nil
	}
	return influencer
}

// reply reloads influencer so the response reflects the stored tags
func (h influencerHandler) reply(w http.ResponseWriter, r *http.Request, status int, message string, id uuid.UUID) {
	influencer, err := h.influencerRepo.FindByID(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "influencer", err))
		return
	}
	if influencer == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("Influencer not found."))
		return
	}
	h.responder.WriteMessage(w, status, message, map[string]any{"influencer": influencer})
}

// createInfluencer adds a directory entry
// @Summary Create influencer
// @Tags Influencers
// @Accept json
// @Produce json
// @Success 201 {object} models.Influencer
// @Failure 400 {object} ErrorResponse
// @Router /influencers [post]
func (h influencerHandler) createInfluencer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req influencerRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if blank(req.Name) || blank(req.Description) {
			h.responder.WriteError(w, errs.NewBadRequestError("Name and description are required."))
			return
		}

		var influencer models.Influencer
		req.apply(&influencer)
		if err := h.influencerRepo.Add(r.Context(), &influencer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "influencer", err))
			return
		}

		h.reply(w, r, http.StatusCreated, "Influencer created successfully.", influencer.ID)
	}
}

// getAllInfluencers lists the directory
// @Summary List influencers
// @Tags Influencers
// @Produce json
// @Success 200 {array} models.Influencer
// @Router /influencers [get]
func (h influencerHandler) getAllInfluencers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		influencers, err := h.influencerRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "influencers", err))
			return
		}
		if influencers == nil {
			influencers = []*models.Influencer{}
		}

		h.responder.WriteJSON(w, map[string]any{"influencers": influencers})
	}
}

// getInfluencer returns one directory entry
// @Summary Get influencer
// @Tags Influencers
// @Produce json
// @Param influencerID path string true "Influencer ID" format(uuid)
// @Success 200 {object} models.Influencer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /influencers/{influencerID} [get]
func (h influencerHandler) getInfluencer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		influencer := h.findInfluencer(w, r)
		if influencer == nil {
			return
		}
		h.responder.WriteJSON(w, map[string]any{"influencer": influencer})
	}
}

// updateInfluencer overwrites the supplied fields
// @Summary Update influencer
// @Tags Influencers
// @Accept json
// @Produce json
// @Param influencerID path string true "Influencer ID" format(uuid)
// @Success 200 {object} models.Influencer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /influencers/{influencerID} [put]
func (h influencerHandler) updateInfluencer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		influencer := h.findInfluencer(w, r)
		if influencer == nil {
			return
		}

		var req influencerRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if (req.Name != nil && blank(req.Name)) || (req.Description != nil && blank(req.Description)) {
			h.responder.WriteError(w, errs.NewBadRequestError("Name and description cannot be empty."))
			return
		}

		req.apply(influencer)
		if err := h.influencerRepo.Update(r.Context(), influencer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "influencer", err))
			return
		}

		h.reply(w, r, http.StatusOK, "Influencer updated successfully.", influencer.ID)
	}
}

// deleteInfluencer removes a directory entry
// @Summary Delete influencer
// @Tags Influencers
// @Produce json
// @Param influencerID path string true "Influencer ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /influencers/{influencerID} [delete]
func (h influencerHandler) deleteInfluencer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		influencerID, err := parseUUID(chi.URLParam(r, "influencerID"), "influencer")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.influencerRepo.Delete(r.Context(), influencerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("Influencer not found."))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("delete", "influencer", err))
			return
		}

		h.responder.WriteMessage(w, http.StatusOK, "Influencer deleted successfully.", nil)
	}
}

// addTag attaches a tag given in the path or as {"tagId": ...} in the body
// @Summary Add tag to influencer
// @Tags Influencers
// @Accept json
// @Produce json
// @Param influencerID path string true "Influencer ID" format(uuid)
// @Success 200 {object} models.Influencer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /influencers/{influencerID}/tags/{tagID} [post]
func (h influencerHandler) addTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawTagID := chi.URLParam(r, "tagID")
		if rawTagID == "" {
			var req struct {
				TagID string `json:"tagId"`
			}
			if err := decodeJSON(r, &req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			rawTagID = req.TagID
		}
		if strings.TrimSpace(rawTagID) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("Tag ID is required.", "tagId", ""))
			return
		}
		tagID, err := parseUUID(rawTagID, "tag")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		influencer := h.findInfluencer(w, r)
		if influencer == nil {
			return
		}

		tag, err := h.tagRepo.FindByID(r.Context(), tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Tag not found."))
			return
		}

		if influencer.HasTag(tag.ID) {
			h.responder.WriteError(w, errs.NewConflictError("Tag already added to influencer."))
			return
		}

		if err := h.influencerRepo.AddTag(r.Context(), influencer, tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "influencer", err))
			return
		}

		h.reply(w, r, http.StatusOK, "Tag added to influencer successfully.", influencer.ID)
	}
}

// removeTag detaches a tag; detaching an absent tag still succeeds
// @Summary Remove tag from influencer
// @Tags Influencers
// @Produce json
// @Param influencerID path string true "Influencer ID" format(uuid)
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} models.Influencer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /influencers/{influencerID}/tags/{tagID} [delete]
func (h influencerHandler) removeTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseUUID(chi.URLParam(r, "tagID"), "tag")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		influencer := h.findInfluencer(w, r)
		if influencer == nil {
			return
		}

		if err := h.influencerRepo.RemoveTag(r.Context(), influencer, tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "influencer", err))
			return
		}

		h.reply(w, r, http.StatusOK, "Tag removed from influencer successfully.", influencer.ID)
	}
}
