package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/twohearts/couplegames-backend/internal/entity"
	"github.com/twohearts/couplegames-backend/internal/rules"
)

// GamePlayService is the move engine: it validates a proposed move against
// the authoritative document, mutates the board, runs win detection, and
// persists the result.
type GamePlayService interface {
	MakeMove(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)
}

type gamePlayService struct {
	logger   *slog.Logger
	gameRepo gameRepo

	// applyMove is serialized per game id. Two racing moves would otherwise
	// both read the same turn, both validate, and the second write would
	// silently drop the first.
	locksMutex sync.Mutex
	locks      map[string]*sync.Mutex
}

func NewGamePlayService(logger *slog.Logger, gameRepo gameRepo) GamePlayService {
	return &gamePlayService{
		logger:   logger,
		gameRepo: gameRepo,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (that *gamePlayService) MakeMove(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID)

	lock := that.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmPlayingState(); err != nil {
		return game, err
	}

	gameRules, err := rules.ForType(game.Type)
	if err != nil {
		return nil, err
	}

	if err = gameRules.Apply(game, move); err != nil {
		return game, err
	}

	game.Touch()

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

func (that *gamePlayService) lockFor(gameID string) *sync.Mutex {
	that.locksMutex.Lock()
	defer that.locksMutex.Unlock()

	lock, ok := that.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[gameID] = lock
	}

	return lock
}
