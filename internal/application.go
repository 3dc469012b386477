package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/twohearts/couplegames-backend/internal/config"
	"github.com/twohearts/couplegames-backend/internal/realtime"
	"github.com/twohearts/couplegames-backend/internal/repository"
	"github.com/twohearts/couplegames-backend/internal/repository/storage"
	"github.com/twohearts/couplegames-backend/internal/service"
	"github.com/twohearts/couplegames-backend/internal/usecase"
	"github.com/twohearts/couplegames-backend/transport/rest"
	"github.com/twohearts/couplegames-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	mongoStorage, err := storage.NewMongoStorage(ctx, conf.Mongo.URI, conf.Mongo.Database)
	if err != nil {
		return fmt.Errorf("could not connect to mongo storage: %w", err)
	}

	defer func() {
		if err = mongoStorage.Close(context.Background()); err != nil {
			log.Error("could not close mongo storage", "error", err)
		}
	}()

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(mongoStorage.Database)
	rpsScoreRepo := repository.NewRPSScoreRepository(redisStorage.Connection)

	authService := service.NewAuthService(conf.JWTSecretKey)
	gameService := service.NewGameService(gameRepo)
	gamePlayService := service.NewGamePlayService(logger, gameRepo)
	rpsService := service.NewRPSService(rpsScoreRepo)

	gameUseCase := usecase.NewGameUseCase(gameService, gamePlayService)

	// room membership is process-scoped and rebuilt from scratch on restart;
	// clients rejoin their room keyed by the game id they carry
	registry := realtime.NewRegistry()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameUseCase, authService, conf.AdminPassword)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, registry, rpsService)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
