package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weihsiu/card-reward-advisor/internal/config"
	"github.com/weihsiu/card-reward-advisor/internal/database"
	"github.com/weihsiu/card-reward-advisor/internal/handler"
	"github.com/weihsiu/card-reward-advisor/internal/middleware"
	"github.com/weihsiu/card-reward-advisor/internal/repository"
	"github.com/weihsiu/card-reward-advisor/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	setupAPIRoutes(router, pool)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, pool *pgxpool.Pool) {
	cardRepo := repository.NewCardRepository(pool)
	ruleRepo := repository.NewRewardRuleRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)

	catalogService := service.NewCatalogService(cardRepo, ruleRepo, categoryRepo)
	calculatorService := service.NewCalculatorService(cardRepo)
	categoryService := service.NewCategoryService(categoryRepo)

	cardHandler := handler.NewCardHandler(catalogService)
	calculatorHandler := handler.NewCalculatorHandler(calculatorService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	api := router.Group("/api/v1")
	{
		api.GET("/calculate", calculatorHandler.Calculate)

		api.GET("/cards", cardHandler.List)
		api.POST("/cards", cardHandler.Create)
		api.GET("/cards/:id", cardHandler.Get)
		api.PUT("/cards/:id", cardHandler.Update)
		api.DELETE("/cards/:id", cardHandler.Delete)
		api.POST("/cards/:id/rewards", cardHandler.AddRule)
		api.PUT("/rewards/:id", cardHandler.UpdateRule)
		api.DELETE("/rewards/:id", cardHandler.DeleteRule)

		api.GET("/categories", categoryHandler.List)
		api.POST("/categories", categoryHandler.Create)
		api.PUT("/categories/:id", categoryHandler.Update)
		api.DELETE("/categories/:id", categoryHandler.Delete)
	}
}
