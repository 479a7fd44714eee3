package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/uberhub/innovation-hub/backend/internal/config"
	"github.com/uberhub/innovation-hub/backend/internal/handler"
	"github.com/uberhub/innovation-hub/backend/internal/model/facility"
	"github.com/uberhub/innovation-hub/backend/internal/model/persona"
	"github.com/uberhub/innovation-hub/backend/internal/service/ai"
	"github.com/uberhub/innovation-hub/backend/internal/service/chat"
	"github.com/uberhub/innovation-hub/backend/internal/service/route"
	"github.com/uberhub/innovation-hub/backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Config{})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(logger.Config{Debug: cfg.Log.Debug, Pretty: cfg.Log.Pretty})
	if envErr != nil {
		log.Warn().Err(envErr).Msg("failed to load .env file, continuing with system environment variables only")
	}

	personaStore, err := persona.LoadStore(cfg.Catalog.PersonasFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Catalog.PersonasFile).Msg("failed to load personas")
	}

	catalog, err := facility.LoadFile(cfg.Catalog.FacilitiesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Catalog.FacilitiesFile).Msg("failed to load facilities")
	}
	log.Info().Int("facilities", len(catalog.List())).Int("placed", len(catalog.Placed())).Int("personas", personaStore.Len()).Msg("catalog loaded")

	store, closeStore, err := openSessionStore(cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer closeStore()

	// 模型不可用时服务仍然启动，相关接口返回 503
	var gateway ai.Gateway
	if cfg.AI.Enabled() {
		gw, err := ai.NewGateway(ctx, cfg.AI)
		if err != nil {
			log.Warn().Err(err).Str("provider", string(cfg.AI.Provider)).Msg("failed to initialize model gateway, continuing without AI")
		} else {
			gateway = gw
			log.Info().Str("provider", string(cfg.AI.Provider)).Str("model", cfg.AI.Model).Msg("model gateway initialized")
		}
	} else {
		log.Warn().Str("provider", string(cfg.AI.Provider)).Msg("AI credentials not configured, model endpoints will answer 503")
	}

	chatService := chat.NewService(store, personaStore, gateway, chat.WithGenerationOptions(ai.DefaultOptions(cfg.AI)))
	routeService := route.NewService(gateway)

	router := handler.NewRouter(personaStore, catalog, chatService, routeService)

	startServer(ctx, cfg.Server, router)
}

func openSessionStore(cfg config.SessionConfig) (chat.Store, func(), error) {
	if cfg.Driver == config.SessionDriverSQLite {
		store, err := chat.OpenSQLiteStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Path).Msg("sqlite session store opened")
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close session store")
			}
		}, nil
	}
	return chat.NewMemoryStore(), func() {}, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("innovation hub backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
