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
	"github.com/rpupo63/creator-directory-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	blogTagRepo  *database.BlogTagRepo
	baseURL      string
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, blogTagRepo *database.BlogTagRepo, baseURL string) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		blogTagRepo:  blogTagRepo,
		baseURL:      baseURL,
	}
}

// blogPostRequest carries create and edit bodies. Author is only ever checked
// against the session user, never trusted on its own.
type blogPostRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Tags       *[]string `json:"tags"`
	Author     *string   `json:"author"`
}

func cleanTags(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// reply reloads the post so the response carries author and tags
func (h blogPostHandler) reply(w http.ResponseWriter, r *http.Request, status int, message string, id uuid.UUID) {
	blogPost, err := h.blogPostRepo.FindByID(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
		return
	}
	if blogPost == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("Blog not found."))
		return
	}
	h.responder.WriteMessage(w, status, message, map[string]any{"blog": newBlogResponse(blogPost, h.baseURL)})
}

// getAllBlogPosts retrieves all blog posts with their tags
// @Summary Get all blog posts
// @Description Retrieves all blog posts, newest first, with author and tags
// @Tags Blog Posts
// @Produce json
// @Success 200 {array} BlogResponse
// @Failure 500 {object} ErrorResponse
// @Router /blogs [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPosts, err := h.blogPostRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"blogs": newBlogResponses(blogPosts, h.baseURL)})
	}
}

// getBlogPost retrieves a specific blog post by ID
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param blogID path string true "Blog ID" format(uuid)
// @Success 200 {object} BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{blogID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := parseUUID(chi.URLParam(r, "blogID"), "blog")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Blog not found."))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"blog": newBlogResponse(blogPost, h.baseURL)})
	}
}

// getBlogPostsByTag lists the posts carrying a tag
// @Summary Get blog posts by tag
// @Tags Blog Posts
// @Produce json
// @Param tag path string true "Tag value"
// @Success 200 {array} BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/tag/{tag} [get]
func (h blogPostHandler) getBlogPostsByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := pathParam(r, "tag")
		if err != nil || strings.TrimSpace(tag) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("Tag parameter is required.", "tag", ""))
			return
		}

		blogPosts, err := h.blogPostRepo.FindByTag(r.Context(), strings.TrimSpace(tag))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blogs", err))
			return
		}
		if len(blogPosts) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("No blogs found with the specified tag."))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"blogs": newBlogResponses(blogPosts, h.baseURL)})
	}
}

// createBlogPost creates a new blog post authored by the session user
// @Summary Create blog post
// @Description Inserts the post, then derives its url from the title and the new id
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Success 201 {object} BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /blogs/create [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := ctxGetSession(r.Context())
		if session == nil {
			h.responder.WriteError(w, errs.NewMissingSessionError())
			return
		}

		var req blogPostRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if blank(req.Title) || blank(req.Content) {
			h.responder.WriteError(w, errs.NewBadRequestError("Title and content are required."))
			return
		}
		if req.Author != nil && *req.Author != "" && *req.Author != session.UserID.String() {
			h.responder.WriteError(w, errs.NewNotOwnerError("You cannot create a blog for another author."))
			return
		}

		authorID := session.UserID
		blogPost := models.BlogPost{
			Title:      strings.TrimSpace(*req.Title),
			Content:    *req.Content,
			CoverImage: req.CoverImage,
			AuthorID:   &authorID,
		}
		if err := h.blogPostRepo.Add(r.Context(), &blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}

		// The url embeds the id, so it can only be written once the row exists.
		if err := h.blogPostRepo.SetURL(r.Context(), blogPost.ID, services.BlogURL(blogPost.Title, blogPost.ID)); err != nil {
			h.discard(r, blogPost.ID)
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		if req.Tags != nil {
			if err := h.blogTagRepo.Replace(r.Context(), blogPost.ID, cleanTags(*req.Tags)); err != nil {
				h.discard(r, blogPost.ID)
				h.responder.WriteError(w, wrapDatabaseError("create", "blog tags", err))
				return
			}
		}

		h.logger.Info().Str("blogID", blogPost.ID.String()).Msg("blog created")
		h.reply(w, r, http.StatusCreated, "Blog created successfully.", blogPost.ID)
	}
}

// discard removes a half-created post
func (h blogPostHandler) discard(r *http.Request, id uuid.UUID) {
	if err := h.blogPostRepo.Delete(r.Context(), id); err != nil {
		h.logger.Error().Err(err).Str("blogID", id.String()).Msg("failed to remove incomplete blog")
	}
}

// updateBlogPost edits a blog post owned by the session user
// @Summary Update blog post
// @Description Overwrites only the supplied fields. The url is not regenerated.
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogID path string true "Blog ID" format(uuid)
// @Success 200 {object} BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/edit/{blogID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := ctxGetSession(r.Context())
		if session == nil {
			h.responder.WriteError(w, errs.NewMissingSessionError())
			return
		}

		blogID, err := parseUUID(chi.URLParam(r, "blogID"), "blog")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req blogPostRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if blank(req.Title) && blank(req.Content) {
			h.responder.WriteError(w, errs.NewBadRequestError("At least one field (title or content) is required to update the blog."))
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Blog not found."))
			return
		}

		if !blogPost.AuthoredBy(session.UserID.String()) || (req.Author != nil && !blogPost.AuthoredBy(*req.Author)) {
			h.responder.WriteError(w, errs.NewNotOwnerError("You are not authorized to edit this blog."))
			return
		}

		if !blank(req.Title) {
			blogPost.Title = strings.TrimSpace(*req.Title)
		}
		if !blank(req.Content) {
			blogPost.Content = *req.Content
		}
		if req.CoverImage != nil {
			blogPost.CoverImage = req.CoverImage
		}

		var tags []string
		if req.Tags != nil {
			tags = cleanTags(*req.Tags)
		}
		if err := h.blogPostRepo.Update(r.Context(), blogPost, tags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		h.reply(w, r, http.StatusOK, "Blog updated successfully.", blogPost.ID)
	}
}

// deleteBlogPost deletes a blog post owned by the session user
// @Summary Delete blog post
// @Tags Blog Posts
// @Produce json
// @Param blogID path string true "Blog ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{blogID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := ctxGetSession(r.Context())
		if session == nil {
			h.responder.WriteError(w, errs.NewMissingSessionError())
			return
		}

		blogID, err := parseUUID(chi.URLParam(r, "blogID"), "blog")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Blog not found."))
			return
		}
		if !blogPost.AuthoredBy(session.UserID.String()) {
			h.responder.WriteError(w, errs.NewNotOwnerError("You are not authorized to delete this blog."))
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), blogID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("Blog not found."))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog", err))
			return
		}

		h.responder.WriteMessage(w, http.StatusOK, "Blog deleted successfully.", nil)
	}
}
