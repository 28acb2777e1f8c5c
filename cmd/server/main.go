package main

import (
	"log"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/config"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/db"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/handler"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/repository"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/router"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/service"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	loc := cfg.Location()

	userRepo := repository.NewUserRepository(database)
	habitRepo := repository.NewHabitRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	stickyRepo := repository.NewStickyRepository(database)
	tagRepo := repository.NewTagRepository(database)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	habitService := service.NewHabitService(habitRepo)
	activityService := service.NewActivityService(activityRepo, habitRepo, cfg.AutoSkipAfter)
	goalService := service.NewGoalService(goalRepo)
	stickyService := service.NewStickyService(stickyRepo)
	tagService := service.NewTagService(tagRepo)
	progressService := service.NewProgressService(habitRepo, activityRepo, goalRepo, loc)

	authHandler := handler.NewAuthHandler(authService)
	habitHandler := handler.NewHabitHandler(habitService)
	activityHandler := handler.NewActivityHandler(activityService, loc)
	goalHandler := handler.NewGoalHandler(goalService)
	stickyHandler := handler.NewStickyHandler(stickyService, tagService)
	statsHandler := handler.NewStatsHandler(progressService)

	engine := router.New(
		authService,
		authHandler,
		habitHandler,
		activityHandler,
		goalHandler,
		stickyHandler,
		statsHandler,
		cfg.CORSOrigins,
	)
	log.Printf("backend listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
