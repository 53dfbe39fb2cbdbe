package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fernwehlab/tour-booking-backend/internal/auth"
	"github.com/fernwehlab/tour-booking-backend/internal/booking"
	bookingHttp "github.com/fernwehlab/tour-booking-backend/internal/booking/http"
	"github.com/fernwehlab/tour-booking-backend/internal/file"
	fileHttp "github.com/fernwehlab/tour-booking-backend/internal/file/http"
	"github.com/fernwehlab/tour-booking-backend/internal/review"
	reviewHttp "github.com/fernwehlab/tour-booking-backend/internal/review/http"
	"github.com/fernwehlab/tour-booking-backend/internal/tour"
	tourHttp "github.com/fernwehlab/tour-booking-backend/internal/tour/http"
	"github.com/fernwehlab/tour-booking-backend/internal/user"
	userHttp "github.com/fernwehlab/tour-booking-backend/internal/user/http"
	"github.com/fernwehlab/tour-booking-backend/internal/wishlist"
	wishlistHttp "github.com/fernwehlab/tour-booking-backend/internal/wishlist/http"
)

// Config collects everything the router needs to assemble the API.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	AuthRatePerMinute int
	AuthRateBurst     int

	UserService     user.Service
	TourService     tour.Service
	BookingService  booking.Service
	ReviewService   review.Service
	WishlistService wishlist.Service
	FileService     file.Service
	JWTManager      *auth.JWTManager
}

// NewRouter assembles middleware and registers every module's routes
// under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(AccessLog(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin()
	guideMiddleware := RequireGuide()
	authRateLimit := RateLimit(cfg.AuthRatePerMinute, cfg.AuthRateBurst)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	tourHandler := tourHttp.NewHandler(cfg.TourService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	wishlistHandler := wishlistHttp.NewHandler(cfg.WishlistService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware, authRateLimit)
		tourHttp.RegisterRoutes(v1, tourHandler, authMiddleware, guideMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		wishlistHttp.RegisterRoutes(v1, wishlistHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
