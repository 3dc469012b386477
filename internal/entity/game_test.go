package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twohearts/couplegames-backend/internal/apperror"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// When: checking if the game is finished
		isFinished := game.IsFinished()

		// Then: it should return true
		assert.True(t, isFinished)
	})

	t.Run("IsPlaying returns true when game status is playing", func(t *testing.T) {
		// Given: a game with StatusPlaying
		game := &Game{Status: StatusPlaying}

		// When: checking if the game is playing
		isPlaying := game.IsPlaying()

		// Then: it should return true
		assert.True(t, isPlaying)
	})

	t.Run("IsActive covers waiting and playing but not finished", func(t *testing.T) {
		assert.True(t, (&Game{Status: StatusWaiting}).IsActive())
		assert.True(t, (&Game{Status: StatusPlaying}).IsActive())
		assert.False(t, (&Game{Status: StatusFinished}).IsActive())
	})
}

func TestGame_ConfirmPlayingState(t *testing.T) {
	t.Run("Returns nil when game is playing", func(t *testing.T) {
		// Given: a game with StatusPlaying
		game := &Game{Status: StatusPlaying}

		// When: checking if moves are legal
		err := game.ConfirmPlayingState()

		// Then: it should return nil error
		assert.NoError(t, err)
	})

	t.Run("Returns ErrGameNotActive when game is waiting", func(t *testing.T) {
		// Given: a game with StatusWaiting
		game := &Game{Status: StatusWaiting}

		// When: checking if moves are legal
		err := game.ConfirmPlayingState()

		// Then: it should return ErrGameNotActive
		assert.ErrorIs(t, err, apperror.ErrGameNotActive)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// When: checking if moves are legal
		err := game.ConfirmPlayingState()

		// Then: it should return ErrGameFinished
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		// Given: a game with unknown status
		game := &Game{Status: "unknown"}

		// When: checking if moves are legal
		err := game.ConfirmPlayingState()

		// Then: it should return an error
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown status")
	})
}

func TestGame_PlayerByRole(t *testing.T) {
	t.Run("Returns the matching player", func(t *testing.T) {
		// Given: a game with two players
		game := &Game{Players: []*Player{
			{Role: RoleAdmin, Symbol: "X"},
			{Role: RoleLover, Symbol: "O"},
		}}

		// When: looking up the lover
		player := game.PlayerByRole(RoleLover)

		// Then: the lover's entry is returned
		require.NotNil(t, player)
		assert.Equal(t, "O", player.Symbol)
	})

	t.Run("Returns nil when the role is absent", func(t *testing.T) {
		// Given: a game with one player
		game := &Game{Players: []*Player{{Role: RoleAdmin, Symbol: "X"}}}

		// When: looking up the lover
		player := game.PlayerByRole(RoleLover)

		// Then: nil is returned
		assert.Nil(t, player)
	})
}

func TestGame_Touch(t *testing.T) {
	// Given: a game at version 3
	game := &Game{Version: 3}

	// When: the game is touched
	game.Touch()

	// Then: the version increments and the timestamp is refreshed
	assert.Equal(t, int64(4), game.Version)
	assert.False(t, game.UpdatedAt.IsZero())
}

func TestMove_Mark(t *testing.T) {
	t.Run("Symbol wins over color", func(t *testing.T) {
		move := &Move{Symbol: "X", Color: "red"}
		assert.Equal(t, "X", move.Mark())
	})

	t.Run("Color is used when symbol is empty", func(t *testing.T) {
		move := &Move{Color: "red"}
		assert.Equal(t, "red", move.Mark())
	})
}
