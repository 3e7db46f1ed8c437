package router

import (
	"captionboard/internal/handlers"
	"captionboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	feedHandler := handlers.NewFeedHandler()
	voteHandler := handlers.NewVoteHandler()
	captionHandler := handlers.NewCaptionHandler()
	imageHandler := handlers.NewImageHandler()

	// OAuth plumbing (public)
	r.GET("/auth/start", authHandler.Start)
	r.GET("/auth/callback", authHandler.Callback)
	r.GET("/auth/signout", authHandler.SignOut)

	// Public table listings (the course pages read these anonymously)
	r.GET("/api/captions", captionHandler.List)
	r.GET("/api/images", imageHandler.List)

	// Session-scoped JSON API
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/recent", feedHandler.Recent)           // time-ordered feed
		api.GET("/top-100", feedHandler.Top100)          // like-count feed
		api.GET("/top-100/debug", captionHandler.TopDebug)
		api.POST("/votes", voteHandler.Cast)             // cast/flip/reset a vote
		api.POST("/captions", captionHandler.Create)
		api.GET("/caption-debug", captionHandler.Debug)
		api.GET("/me", authHandler.Me)
	}
}
