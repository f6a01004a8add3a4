package api

import (
	"time"

	"github.com/rpupo63/creator-directory-backend/database"
	"github.com/rpupo63/creator-directory-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, sessions sessionManager, r router) *routeHandlers {
	return &routeHandlers{
		authHandler:       newAuthHandler(database.UserRepo(), database.SessionRepo(), sessions),
		tagHandler:        newTagHandler(database.TagRepo()),
		influencerHandler: newInfluencerHandler(database.InfluencerRepo(), database.TagRepo()),
		blogPostHandler:   newBlogPostHandler(database.BlogPostRepo(), database.BlogTagRepo(), services.GetBaseURL(r.config)),
		uploadHandler:     newUploadHandler(r.uploadSigner),
		healthHandler:     newHealthHandler(database, startupTimeOrNow(r.startupTime)),
	}
}

func startupTimeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
