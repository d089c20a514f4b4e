package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/accountd/internal/config"
	"github.com/dropDatabas3/accountd/internal/http/router"
	svc "github.com/dropDatabas3/accountd/internal/http/services/auth"
	jwtx "github.com/dropDatabas3/accountd/internal/jwt"
	"github.com/dropDatabas3/accountd/internal/media"
	"github.com/dropDatabas3/accountd/internal/observability/logger"
	"github.com/dropDatabas3/accountd/internal/security/password"
	"github.com/dropDatabas3/accountd/internal/store"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "path al archivo de configuración")
	flag.Parse()

	// .env es opcional; ENV pisa lo que diga el YAML.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		// Logger todavía no inicializado.
		fmt.Fprintln(os.Stderr, "config:", err.Error())
		os.Exit(1)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal("store open", logger.Err(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = repo.Close(shutdownCtx)
	}()

	issuer := jwtx.NewIssuer(
		cfg.JWT.Issuer,
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.AccessTTL(),
		cfg.RefreshTTL(),
	)

	handler := router.New(router.Deps{
		Config: cfg,
		Issuer: issuer,
		Auth: svc.Deps{
			Repo:       repo,
			Uploader:   media.NewHTTPUploader(cfg.Media.UploadURL, cfg.Media.APIKey, cfg.MediaTimeout()),
			Issuer:     issuer,
			HashParams: password.Default,
		},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	go func() {
		log.Info("http server listening",
			logger.Any("addr", cfg.Server.Addr),
			logger.Any("driver", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", logger.Err(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", logger.Err(err))
	}
}
