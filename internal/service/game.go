package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/twohearts/couplegames-backend/internal/entity"
	"github.com/twohearts/couplegames-backend/internal/repository"
	"github.com/twohearts/couplegames-backend/internal/rules"
)

// GameService owns the lifecycle of game documents: the join-or-create
// policy, the idempotent join, lookups and the admin reset.
type GameService interface {
	CreateOrGetActive(ctx context.Context, gameType, callerRole string) (*entity.Game, error)
	Join(ctx context.Context, gameID, callerRole string) (*entity.Game, error)

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	ListActive(ctx context.Context, gameType string) ([]*entity.Game, error)

	DeleteGame(ctx context.Context, gameID string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetActiveByType(ctx context.Context, gameType string) (*entity.Game, error)
	ListActiveByType(ctx context.Context, gameType string) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

// CreateOrGetActive returns the existing active game of the type unchanged,
// or creates a fresh waiting game with the caller as the sole player. At most
// one non-finished document per type exists at any time; a double-click or a
// second caller gets the same document back.
func (that *gameService) CreateOrGetActive(ctx context.Context, gameType, callerRole string) (*entity.Game, error) {
	existing, err := that.gameRepo.GetActiveByType(ctx, gameType)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to look up active game: %w", err)
	}

	gameRules, err := rules.ForType(gameType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	game := &entity.Game{
		ID:     uuid.NewString(),
		Type:   gameType,
		Status: entity.StatusWaiting,
		Players: []*entity.Player{
			{Role: callerRole, Symbol: gameRules.FirstSymbol()},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	gameRules.Init(game)

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// Join appends the caller as the second player and starts the game. Joining
// a game the caller's role already sits in, or a game that is already full,
// returns the document unchanged.
func (that *gameService) Join(ctx context.Context, gameID, callerRole string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.PlayerByRole(callerRole) != nil {
		return game, nil
	}

	if len(game.Players) >= 2 || !game.IsWaiting() {
		return game, nil
	}

	gameRules, err := rules.ForType(game.Type)
	if err != nil {
		return nil, err
	}

	game.Players = append(game.Players, &entity.Player{
		Role:   callerRole,
		Symbol: gameRules.SecondSymbol(),
	})
	game.Status = entity.StatusPlaying
	game.Touch()

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) ListActive(ctx context.Context, gameType string) ([]*entity.Game, error) {
	games, err := that.gameRepo.ListActiveByType(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}

	return games, nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
