package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, guideMiddleware gin.HandlerFunc) {
	group := g.Group("/tours")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Guide Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", guideMiddleware, h.Create)
		authed.PATCH("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
	}
}
