package service

import (
	"context"
	"sync"

	"github.com/twohearts/couplegames-backend/internal/entity"
	"github.com/twohearts/couplegames-backend/internal/repository"
)

// memoryGameRepo is an in-memory stand-in for the mongo repository. It hands
// out copies, like a real store round-trip would.
type memoryGameRepo struct {
	mutex sync.Mutex
	games map[string]*entity.Game
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: make(map[string]*entity.Game)}
}

func (that *memoryGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	that.games[game.ID] = cloneGame(game)

	return nil
}

func (that *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}

	return cloneGame(game), nil
}

func (that *memoryGameRepo) GetActiveByType(_ context.Context, gameType string) (*entity.Game, error) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	var newest *entity.Game
	for _, game := range that.games {
		if game.Type != gameType || !game.IsActive() {
			continue
		}
		if newest == nil || game.CreatedAt.After(newest.CreatedAt) {
			newest = game
		}
	}

	if newest == nil {
		return nil, repository.ErrGameNotFound
	}

	return cloneGame(newest), nil
}

func (that *memoryGameRepo) ListActiveByType(_ context.Context, gameType string) ([]*entity.Game, error) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	games := make([]*entity.Game, 0)
	for _, game := range that.games {
		if game.Type == gameType && game.IsActive() {
			games = append(games, cloneGame(game))
		}
	}

	return games, nil
}

func (that *memoryGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	if _, ok := that.games[id]; !ok {
		return repository.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

func cloneGame(game *entity.Game) *entity.Game {
	clone := *game

	if game.Cells != nil {
		cells := *game.Cells
		clone.Cells = &cells
	}
	if game.Grid != nil {
		grid := *game.Grid
		clone.Grid = &grid
	}

	clone.Players = make([]*entity.Player, len(game.Players))
	for i, player := range game.Players {
		p := *player
		clone.Players[i] = &p
	}

	return &clone
}

// memoryScoreRepo is an in-memory stand-in for the redis score repository.
type memoryScoreRepo struct {
	mutex  sync.Mutex
	scores map[string]map[string]int64
}

func newMemoryScoreRepo() *memoryScoreRepo {
	return &memoryScoreRepo{scores: make(map[string]map[string]int64)}
}

func (that *memoryScoreRepo) Increment(_ context.Context, room, playerID string) (int64, error) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	if that.scores[room] == nil {
		that.scores[room] = make(map[string]int64)
	}
	that.scores[room][playerID]++

	return that.scores[room][playerID], nil
}

func (that *memoryScoreRepo) Get(_ context.Context, room, playerID string) (int64, error) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	return that.scores[room][playerID], nil
}

func (that *memoryScoreRepo) Reset(_ context.Context, room string) error {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	delete(that.scores, room)

	return nil
}
