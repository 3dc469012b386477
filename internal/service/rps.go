package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/twohearts/couplegames-backend/internal/apperror"
)

const (
	ChoiceRock     = "rock"
	ChoicePaper    = "paper"
	ChoiceScissors = "scissors"

	ResultWin  = "win"
	ResultLose = "lose"
	ResultDraw = "draw"
)

// beats maps each choice to the choice it defeats.
var beats = map[string]string{
	ChoiceRock:     ChoiceScissors,
	ChoiceScissors: ChoicePaper,
	ChoicePaper:    ChoiceRock,
}

// RPSResult is the personalized outcome of one decided round, from the
// perspective of a single participant.
type RPSResult struct {
	MyChoice       string `json:"myChoice"`
	OpponentChoice string `json:"opponentChoice"`
	Result         string `json:"result"`
	Score          int64  `json:"score"`
}

// RPSService runs the ephemeral rock-paper-scissors rounds. Choices live in
// memory for the current round only; session scores sit in the score store so
// a reconnect does not zero them.
type RPSService interface {
	// Play records a choice. Once both choices for the room are in, it
	// resolves the round, bumps the winner's score, clears the choices and
	// returns each participant's personalized result keyed by player id.
	Play(ctx context.Context, room, playerID, choice string) (map[string]*RPSResult, bool, error)

	Reset(ctx context.Context, room string) error
}

type rpsScoreRepo interface {
	Increment(ctx context.Context, room, playerID string) (int64, error)
	Get(ctx context.Context, room, playerID string) (int64, error)
	Reset(ctx context.Context, room string) error
}

type rpsService struct {
	scores rpsScoreRepo

	roundsMutex sync.Mutex
	rounds      map[string]map[string]string // room -> player id -> choice
}

func NewRPSService(scores rpsScoreRepo) RPSService {
	return &rpsService{
		scores: scores,
		rounds: make(map[string]map[string]string),
	}
}

func (that *rpsService) Play(ctx context.Context, room, playerID, choice string) (map[string]*RPSResult, bool, error) {
	if _, ok := beats[choice]; !ok {
		return nil, false, fmt.Errorf("%w: choice %q", apperror.ErrInvalidMove, choice)
	}

	that.roundsMutex.Lock()

	round, ok := that.rounds[room]
	if !ok {
		round = make(map[string]string)
		that.rounds[room] = round
	}

	round[playerID] = choice

	if len(round) < 2 {
		that.roundsMutex.Unlock()
		return nil, false, nil
	}

	choices := make(map[string]string, len(round))
	for id, c := range round {
		choices[id] = c
	}

	// round decided, clear for the next one
	delete(that.rounds, room)
	that.roundsMutex.Unlock()

	results, err := that.resolve(ctx, room, choices)
	if err != nil {
		return nil, false, err
	}

	return results, true, nil
}

func (that *rpsService) resolve(ctx context.Context, room string, choices map[string]string) (map[string]*RPSResult, error) {
	ids := make([]string, 0, 2)
	for id := range choices {
		ids = append(ids, id)
	}

	first, second := ids[0], ids[1]
	results := map[string]*RPSResult{
		first:  {MyChoice: choices[first], OpponentChoice: choices[second], Result: ResultDraw},
		second: {MyChoice: choices[second], OpponentChoice: choices[first], Result: ResultDraw},
	}

	winner := ""
	switch {
	case beats[choices[first]] == choices[second]:
		winner = first
		results[first].Result = ResultWin
		results[second].Result = ResultLose
	case beats[choices[second]] == choices[first]:
		winner = second
		results[second].Result = ResultWin
		results[first].Result = ResultLose
	}

	if winner != "" {
		if _, err := that.scores.Increment(ctx, room, winner); err != nil {
			return nil, fmt.Errorf("failed to increment score: %w", err)
		}
	}

	for id, result := range results {
		score, err := that.scores.Get(ctx, room, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get score: %w", err)
		}
		result.Score = score
	}

	return results, nil
}

func (that *rpsService) Reset(ctx context.Context, room string) error {
	that.roundsMutex.Lock()
	delete(that.rounds, room)
	that.roundsMutex.Unlock()

	if err := that.scores.Reset(ctx, room); err != nil {
		return fmt.Errorf("failed to reset room: %w", err)
	}

	return nil
}
