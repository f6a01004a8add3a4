package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts every endpoint under /api. Routes wrapped in
// authMiddleware.authenticate require a live session.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.health())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.authHandler.register())
			r.Post("/login", handlers.authHandler.login())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Get("/me", handlers.authHandler.me())
				r.Post("/logout", handlers.authHandler.logout())
			})
		})

		r.Get("/aws/get-presigned-url", handlers.uploadHandler.getPresignedURL())

		// Blog Post Handler endpoints
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", handlers.blogPostHandler.getAllBlogPosts())
			r.Get("/tag/{tag}", handlers.blogPostHandler.getBlogPostsByTag())
			r.Post("/tags", handlers.tagHandler.createTag())
			r.Get("/{blogID}", handlers.blogPostHandler.getBlogPost())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/create", handlers.blogPostHandler.createBlogPost())
				r.Put("/edit/{blogID}", handlers.blogPostHandler.updateBlogPost())
				r.Delete("/{blogID}", handlers.blogPostHandler.deleteBlogPost())
			})
		})

		// Influencer Handler endpoints
		r.Route("/influencers", func(r chi.Router) {
			r.Get("/", handlers.influencerHandler.getAllInfluencers())
			r.Post("/", handlers.influencerHandler.createInfluencer())

			r.Get("/tags", handlers.tagHandler.listTags())
			r.Post("/tags", handlers.tagHandler.createTag())
			r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())

			r.Get("/{influencerID}", handlers.influencerHandler.getInfluencer())
			r.Put("/{influencerID}", handlers.influencerHandler.updateInfluencer())
			r.Delete("/{influencerID}", handlers.influencerHandler.deleteInfluencer())

			r.Post("/{influencerID}/tags", handlers.influencerHandler.addTag())
			r.Post("/{influencerID}/tags/{tagID}", handlers.influencerHandler.addTag())
			r.Delete("/{influencerID}/tags/{tagID}", handlers.influencerHandler.removeTag())
		})
	})
}
