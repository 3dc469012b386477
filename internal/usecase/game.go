package usecase

import (
	"context"
	"fmt"

	"github.com/twohearts/couplegames-backend/internal/apperror"
	"github.com/twohearts/couplegames-backend/internal/entity"
)

// GameUseCase is the facade both transports depend on.
type GameUseCase interface {
	ListActive(ctx context.Context, gameType string) ([]*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)

	CreateOrGetActive(ctx context.Context, gameType, callerRole string) (*entity.Game, error)
	Join(ctx context.Context, gameID, callerRole string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)

	DeleteGame(ctx context.Context, gameID, callerRole string) error
}

type gameService interface {
	CreateOrGetActive(ctx context.Context, gameType, callerRole string) (*entity.Game, error)
	Join(ctx context.Context, gameID, callerRole string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	ListActive(ctx context.Context, gameType string) ([]*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type gamePlayService interface {
	MakeMove(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)
}

type gameUseCase struct {
	gameService     gameService
	gamePlayService gamePlayService
}

func NewGameUseCase(gameService gameService, gamePlayService gamePlayService) GameUseCase {
	return &gameUseCase{
		gameService:     gameService,
		gamePlayService: gamePlayService,
	}
}

func (that *gameUseCase) ListActive(ctx context.Context, gameType string) ([]*entity.Game, error) {
	games, err := that.gameService.ListActive(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) CreateOrGetActive(ctx context.Context, gameType, callerRole string) (*entity.Game, error) {
	game, err := that.gameService.CreateOrGetActive(ctx, gameType, callerRole)
	if err != nil {
		return nil, fmt.Errorf("failed to create or get game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) Join(ctx context.Context, gameID, callerRole string) (*entity.Game, error) {
	game, err := that.gameService.Join(ctx, gameID, callerRole)
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) MakeMove(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error) {
	game, err := that.gamePlayService.MakeMove(ctx, gameID, move)
	if err != nil {
		return game, err
	}

	return game, nil
}

func (that *gameUseCase) DeleteGame(ctx context.Context, gameID, callerRole string) error {
	if callerRole != entity.RoleAdmin {
		return apperror.ErrAdminOnly
	}

	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
