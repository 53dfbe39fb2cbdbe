package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware, authRateLimit gin.HandlerFunc) {
	// === Public Routes (rate limited) ===
	authGroup := g.Group("/auth")
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// === Authenticated Routes ===
	me := g.Group("/me")
	me.Use(authMiddleware)
	{
		me.GET("", h.Me)
		me.PATCH("", h.UpdateMe)
	}

	// === Admin Routes ===
	users := g.Group("/users")
	users.Use(authMiddleware, adminMiddleware)
	{
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PATCH("/:id", h.AdminUpdate)
		users.DELETE("/:id", h.Delete)
	}
}
