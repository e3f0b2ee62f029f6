package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"address-api/internal/config"
	"address-api/internal/handler"
	"address-api/internal/logging"
	"address-api/internal/repository"
	"address-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type store interface {
	service.AddressRepository
	handler.Pinger
}

//	@title			Address API
//	@version		1.0
//	@description	Stores named postal addresses and answers proximity queries against them.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logging.Setup(config.LogLevel, config.LogFormat)
	gin.SetMode(config.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Str("driver", config.StoreDriver).Msg("cannot open store")
	}
	defer closeStore()

	// Initialize layers
	addressService := service.NewAddressService(repo)
	addressHandler := handler.NewAddressHandler(addressService)

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: handler.NewRouter(addressHandler, repo),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", config.ServerAddress).Str("driver", config.StoreDriver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

// openStore returns the configured store and a function releasing its resources.
func openStore(ctx context.Context, cfg config.Config) (store, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		return repository.NewMemoryRepository(), func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DBSource)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = cfg.DBMaxConns

	// Database connection
	conn, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := repository.EnsureSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return repository.NewRepository(conn), conn.Close, nil
}
