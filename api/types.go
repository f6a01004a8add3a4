package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/models"
	"github.com/rpupo63/creator-directory-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler       authHandler
	tagHandler        tagHandler
	influencerHandler influencerHandler
	blogPostHandler   blogPostHandler
	uploadHandler     uploadHandler
	healthHandler     healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Message string `json:"message" example:"Blog not found."`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
}

// AuthorSummary is the public view of a blog author
type AuthorSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// BlogResponse is a blog post as returned to clients
type BlogResponse struct {
	ID         uuid.UUID      `json:"id"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	CoverImage *string        `json:"coverImage,omitempty"`
	Author     *AuthorSummary `json:"author,omitempty"`
	Tags       []string       `json:"tags"`
	URL        string         `json:"url,omitempty"`
	Permalink  string         `json:"permalink,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func newBlogResponse(post *models.BlogPost, baseURL string) BlogResponse {
	resp := BlogResponse{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		CoverImage: post.CoverImage,
		Tags:       post.TagValues(),
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
	if post.URL != nil {
		resp.URL = *post.URL
		resp.Permalink = services.BuildBlogPostURL(baseURL, *post.URL)
	}
	if post.Author != nil {
		resp.Author = &AuthorSummary{
			ID:        post.Author.ID,
			FirstName: post.Author.FirstName,
			LastName:  post.Author.LastName,
			Email:     post.Author.Email,
		}
	}
	return resp
}

func newBlogResponses(posts []*models.BlogPost, baseURL string) []BlogResponse {
	resp := make([]BlogResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, newBlogResponse(post, baseURL))
	}
	return resp
}
