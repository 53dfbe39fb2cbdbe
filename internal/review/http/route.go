package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.GET("/tours/:id/reviews", h.ListByTour)
	g.GET("/tours/:id/reviews/summary", h.Summary)

	// === Authenticated Routes ===
	reviews := g.Group("/reviews")
	reviews.Use(authMiddleware)
	{
		reviews.POST("", h.Create)
		reviews.DELETE("/:id", h.Delete)
	}

	g.GET("/bookings/:id/can-review", authMiddleware, h.CanReview)
}
