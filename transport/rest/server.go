package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/twohearts/couplegames-backend/internal/entity"
)

type uGame interface {
	ListActive(ctx context.Context, gameType string) ([]*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)

	CreateOrGetActive(ctx context.Context, gameType, callerRole string) (*entity.Game, error)
	Join(ctx context.Context, gameID, callerRole string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)

	DeleteGame(ctx context.Context, gameID, callerRole string) error
}

type authService interface {
	GenerateToken(role string) (string, error)
	ResolveRole(rawToken string) string
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
	auth   authService

	adminPassword string
}

func New(logger *slog.Logger, uGame uGame, auth authService, adminPassword string) *Server {
	return &Server{
		logger:        logger,
		uGame:         uGame,
		auth:          auth,
		adminPassword: adminPassword,
	}
}

// Router builds the route table. Split out of Start so handler tests can
// exercise it without a listener.
func (that *Server) Router() *httprouter.Router {
	router := httprouter.New()

	router.GET("/ping", that.handlePing)
	router.POST("/login", that.handleLogin)

	router.GET("/games", that.handleListGames)
	router.GET("/games/:id", that.handleGetGame)
	router.POST("/games", that.handleCreateGame)
	router.POST("/games/:id/join", that.handleJoinGame)
	router.POST("/games/:id/move", that.handleMakeMove)
	router.DELETE("/games/:id", that.handleDeleteGame)

	return router
}

// Start runs the REST server until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
