package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fernwehlab/tour-booking-backend/internal/api"
	"github.com/fernwehlab/tour-booking-backend/internal/auth"
	"github.com/fernwehlab/tour-booking-backend/internal/booking"
	"github.com/fernwehlab/tour-booking-backend/internal/file"
	"github.com/fernwehlab/tour-booking-backend/internal/pkg/storage"
	"github.com/fernwehlab/tour-booking-backend/internal/review"
	"github.com/fernwehlab/tour-booking-backend/internal/tour"
	"github.com/fernwehlab/tour-booking-backend/internal/user"
	"github.com/fernwehlab/tour-booking-backend/internal/wishlist"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	DBPool            *pgxpool.Pool
	JWTSecret         string
	JWTTTL            time.Duration
	BcryptCost        int
	StoragePath       string
	AuthRatePerMinute int
	AuthRateBurst     int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer wires every module together and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Tour Module
	tourRepo := tour.NewPgxRepository(cfg.DBPool)
	tourService := tour.NewService(tourRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, tourService)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, bookingService)

	// Wishlist Module
	wishlistRepo := wishlist.NewPgxRepository(cfg.DBPool)
	wishlistService := wishlist.NewService(wishlistRepo, tourService)

	// File Module
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store)

	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		AuthRateBurst:     cfg.AuthRateBurst,
		UserService:       userService,
		TourService:       tourService,
		BookingService:    bookingService,
		ReviewService:     reviewService,
		WishlistService:   wishlistService,
		FileService:       fileService,
		JWTManager:        jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
