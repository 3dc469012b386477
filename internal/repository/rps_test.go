package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twohearts/couplegames-backend/internal/repository"
	"github.com/twohearts/couplegames-backend/testing/suite"
)

func TestRPSScoreRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx, st := suite.NewRedis(t)
	repo := repository.NewRPSScoreRepository(st.Scores)

	t.Run("Increment counts per player within a room", func(t *testing.T) {
		// Given: an empty room
		// When: alice wins twice and bob once
		first, err := repo.Increment(ctx, "room-1", "alice")
		require.NoError(t, err)
		second, err := repo.Increment(ctx, "room-1", "alice")
		require.NoError(t, err)
		_, err = repo.Increment(ctx, "room-1", "bob")
		require.NoError(t, err)

		// Then: the counters track each player independently
		assert.Equal(t, int64(1), first)
		assert.Equal(t, int64(2), second)

		aliceScore, err := repo.Get(ctx, "room-1", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(2), aliceScore)

		bobScore, err := repo.Get(ctx, "room-1", "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(1), bobScore)
	})

	t.Run("Get of an unknown player is zero, not an error", func(t *testing.T) {
		score, err := repo.Get(ctx, "room-1", "nobody")

		require.NoError(t, err)
		assert.Equal(t, int64(0), score)
	})

	t.Run("Rooms do not share scores", func(t *testing.T) {
		score, err := repo.Get(ctx, "room-2", "alice")

		require.NoError(t, err)
		assert.Equal(t, int64(0), score)
	})

	t.Run("Reset clears the whole room", func(t *testing.T) {
		// Given: room-1 holds scores from the cases above
		// When: the room is reset
		require.NoError(t, repo.Reset(ctx, "room-1"))

		// Then: both players start from zero again
		score, err := repo.Get(ctx, "room-1", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(0), score)
	})
}
