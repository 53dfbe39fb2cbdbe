package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	files := g.Group("/files")

	// Photos render in public tour listings, so reads stay open.
	files.GET("/:id", h.Serve)
	files.GET("/:id/thumbnail", h.ServeThumbnail)

	files.POST("", authMiddleware, h.Upload)
	files.DELETE("/:id", authMiddleware, h.Delete)
}
