package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/middleware"
	"salonbook/internal/modules/booking"
	"salonbook/internal/modules/catalog"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed: ", err)
	}

	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	txm := repository.NewTxManager(db, cfg.TxTimeout)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	bookingService := booking.NewService(txm, bookingRepo)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(catalogRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	sweeper := booking.NewSweeper(bookingRepo, cfg.SweepInterval)
	if err := sweeper.Start(); err != nil {
		log.Fatal("sweeper failed to start: ", err)
	}
	defer sweeper.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public browsing
		catalogHandler.RegisterRoutes(v1)

		// customer endpoints
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)

			// salon-side transitions
			salonSide := protected.Group("/salon")
			salonSide.Use(middleware.RequireRole("salon"))
			bookingHandler.RegisterSalonRoutes(salonSide)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
