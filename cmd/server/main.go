package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"beststore/internal/catalog"
	"beststore/internal/config"
	mydb "beststore/internal/db"
	"beststore/internal/handler"
	"beststore/internal/logger"
	"beststore/internal/repository"
	"beststore/internal/router"
	"beststore/internal/storage"
)

func main() {
	// .env from the working dir, or from the repo root when run from cmd/server
	loaded := config.LoadDotEnv(".env", "../.env", "../../.env")

	cfg, err := config.Load()
	if err != nil {
		boot := logger.NewStderr("info", true)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.NewStderr(cfg.Log.Level, cfg.IsDevelopment())
	log.Debug().Strs("dotenv", loaded).Msg("configuration loaded")

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := mydb.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := mydb.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("database handle")
	}
	defer sqlDB.Close()

	users := repository.NewUsers(db)
	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if _, err := users.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("seed admin user")
		}
		log.Info().Str("username", cfg.Admin.Username).Msg("admin user ready")
	} else {
		log.Warn().Msg("no admin credentials configured; existing accounts only")
	}

	images := storage.NewImageStore(cfg.Storage.ImageDir)
	if err := os.MkdirAll(images.Dir(), 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", images.Dir()).Msg("create image dir")
	}

	svc := catalog.NewService(repository.NewProducts(db), images, log)
	engine, err := router.New(router.Options{
		Handler:       handler.New(svc, users, sqlDB),
		Logger:        log,
		ImageDir:      images.Dir(),
		SessionName:   cfg.Session.Name,
		SessionSecret: cfg.Session.Secret,
		SecureCookies: !cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build router")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
