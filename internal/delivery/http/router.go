package http

import (
	"github.com/fitmatch-app/backend/internal/delivery/http/handler"
	"github.com/fitmatch-app/backend/internal/delivery/http/middleware"
	"github.com/fitmatch-app/backend/internal/delivery/ws"
	"github.com/gin-gonic/gin"
)

type Router struct {
	matchHandler   *handler.MatchHandler
	chatHandler    *handler.ChatHandler
	wsHandler      *ws.Handler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		matchHandler:   matchHandler,
		chatHandler:    chatHandler,
		wsHandler:      wsHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Realtime endpoint authenticates via query token inside the handler
	router.GET("/ws", r.wsHandler.Serve)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Match routes
			matches := protected.Group("/matches")
			{
				matches.GET("/nearby", r.matchHandler.Nearby)
				matches.POST("/like", r.matchHandler.Like)
				matches.POST("/:id/reject", r.matchHandler.Reject)
				matches.GET("/mutual", r.matchHandler.ListMutual)
			}

			// Chat routes
			chats := protected.Group("/chats")
			{
				chats.GET("", r.chatHandler.List)
				chats.GET("/:id", r.chatHandler.Get)
				chats.POST("/:id/read", r.chatHandler.MarkRead)
				chats.POST("/:id/messages", r.chatHandler.SendMessage)
			}
		}
	}

	return router
}
