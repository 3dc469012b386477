package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const rpsScoreKeyPrefix = "rps:scores:"

// RPSScoreRepository keeps the per-session rock-paper-scissors scores for a
// room. Scores outlive a single socket connection but not an explicit reset.
type RPSScoreRepository interface {
	Increment(ctx context.Context, room, playerID string) (int64, error)
	Get(ctx context.Context, room, playerID string) (int64, error)
	Reset(ctx context.Context, room string) error
}

type dbRPSScore struct {
	client *redis.Client
}

func NewRPSScoreRepository(client *redis.Client) RPSScoreRepository {
	return &dbRPSScore{
		client: client,
	}
}

func (that *dbRPSScore) Increment(ctx context.Context, room, playerID string) (int64, error) {
	score, err := that.client.HIncrBy(ctx, rpsScoreKeyPrefix+room, playerID, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment score: %w", err)
	}

	return score, nil
}

func (that *dbRPSScore) Get(ctx context.Context, room, playerID string) (int64, error) {
	score, err := that.client.HGet(ctx, rpsScoreKeyPrefix+room, playerID).Int64()

	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get score: %w", err)
	}

	return score, nil
}

func (that *dbRPSScore) Reset(ctx context.Context, room string) error {
	if err := that.client.Del(ctx, rpsScoreKeyPrefix+room).Err(); err != nil {
		return fmt.Errorf("failed to reset scores: %w", err)
	}

	return nil
}
