package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twohearts/couplegames-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

const (
	gamesCollection = "games"

	queryPeriod = 5 * time.Second
)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetActiveByType(ctx context.Context, gameType string) (*entity.Game, error)
	ListActiveByType(ctx context.Context, gameType string) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	games *mongo.Collection
}

func NewGameRepository(database *mongo.Database) GameRepository {
	return &dbGame{
		games: database.Collection(gamesCollection),
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()

	filter := d(e("_id", game.ID))
	opts := options.Replace().SetUpsert(true)

	if _, err := that.games.ReplaceOne(ctx, filter, game, opts); err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()

	filter := d(e("_id", id))

	var game entity.Game
	if err := that.games.FindOne(ctx, filter).Decode(&game); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGameNotFound
		}

		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return &game, nil
}

// GetActiveByType returns the newest waiting or playing game of a type.
func (that *dbGame) GetActiveByType(ctx context.Context, gameType string) (*entity.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()

	filter := activeFilter(gameType)
	opts := options.FindOne().SetSort(d(e("created_at", -1)))

	var game entity.Game
	if err := that.games.FindOne(ctx, filter, opts).Decode(&game); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGameNotFound
		}

		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	return &game, nil
}

// ListActiveByType returns waiting and playing games of a type, newest first.
func (that *dbGame) ListActiveByType(ctx context.Context, gameType string) ([]*entity.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()

	filter := activeFilter(gameType)
	opts := options.Find().SetSort(d(e("created_at", -1)))

	cursor, err := that.games.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}

	games := make([]*entity.Game, 0)
	if err = cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode active games: %w", err)
	}

	return games, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()

	filter := d(e("_id", id))

	result, err := that.games.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrGameNotFound
	}

	return nil
}

func activeFilter(gameType string) bson.D {
	return d(
		e("type", gameType),
		e("status", d(e("$in", []string{entity.StatusWaiting, entity.StatusPlaying}))),
	)
}

// d is a helper function to create bson.D elements.
func d(elements ...bson.E) bson.D {
	return bson.D(elements)
}

// e is a helper function to create bson.E elements.
func e(key string, value interface{}) bson.E {
	return bson.E{Key: key, Value: value}
}
