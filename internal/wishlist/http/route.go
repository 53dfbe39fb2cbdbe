package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Authenticated Routes ===
	wl := g.Group("/wishlist")
	wl.Use(authMiddleware)
	{
		wl.GET("", h.List)
		wl.POST("", h.Add)
		wl.DELETE("", h.RemoveMany)
		wl.DELETE("/:tourID", h.Remove)
	}
}
