package routes

import (
	"github.com/crushconfessions/crushconfessions-backend/internal/handler"
	"github.com/crushconfessions/crushconfessions-backend/internal/middleware"
	"github.com/crushconfessions/crushconfessions-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	confessionHandler *handler.ConfessionHandler,
	commentHandler *handler.CommentHandler,
	conversationHandler *handler.ConversationHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	// Everything below requires a valid access token
	authed := api.Group("", middleware.JWTAuth(jwtManager))

	// Profile
	authed.GET("/profile", profileHandler.GetProfile)
	authed.PUT("/profile", profileHandler.UpdateProfile)

	// Confessions
	confessions := authed.Group("/confessions")
	{
		confessions.POST("", confessionHandler.Create)
		confessions.GET("", confessionHandler.Feed)
		confessions.DELETE("/:id", confessionHandler.Delete)
		confessions.POST("/:id/like", confessionHandler.ToggleLike)
		confessions.POST("/:id/reveal", confessionHandler.Reveal)

		confessions.GET("/:id/comments", commentHandler.List)
		confessions.POST("/:id/comments", commentHandler.Create)
	}

	// Comments
	comments := authed.Group("/comments")
	comments.POST("/:id/like", commentHandler.ToggleLike)
	comments.POST("/:id/reveal", commentHandler.Reveal)

	// Conversations and messaging
	conversations := authed.Group("/conversations")
	{
		conversations.POST("", conversationHandler.Create)
		conversations.GET("", conversationHandler.List)
		conversations.GET("/unread", conversationHandler.UnreadCount)
		conversations.GET("/:id", conversationHandler.Details)
		conversations.DELETE("/:id", conversationHandler.Delete)
		conversations.GET("/:id/messages", conversationHandler.ListMessages)
		conversations.POST("/:id/messages", conversationHandler.SendMessage)
		conversations.POST("/:id/block", conversationHandler.ToggleBlock)
		conversations.GET("/:id/typing", conversationHandler.GetTyping)
		conversations.POST("/:id/typing", conversationHandler.SetTyping)
	}
}
