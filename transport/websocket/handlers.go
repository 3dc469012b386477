package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	gameRoomPrefix = "game:"
	rpsRoomPrefix  = "rps:"
)

func (that *Server) handleJoinGame(_ context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleJoinGame", "clientID", c.ID())

	var payload GamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.GameID == "" {
		return that.sendError(c, msg.Action, "gameId is required")
	}

	room := gameRoomPrefix + payload.GameID
	that.registry.Join(room, c)

	// the peer re-fetches authoritative state when it sees this
	that.registry.Broadcast(room, c, newMessage(actionPlayerJoined, GamePayload{GameID: payload.GameID}))

	log.Info("client joined game room", "gameID", payload.GameID)

	return nil
}

// handleMakeMove relays the authoritative post-move snapshot to the peer.
// The sender already holds it from the move endpoint's response, so the
// broadcast excludes the sender.
func (that *Server) handleMakeMove(_ context.Context, c *client, msg *Message) error {
	return that.relaySnapshot(c, msg, actionMoveMade)
}

func (that *Server) handleGameOver(_ context.Context, c *client, msg *Message) error {
	return that.relaySnapshot(c, msg, actionGameEnded)
}

func (that *Server) relaySnapshot(c *client, msg *Message, outAction string) error {
	var payload GamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.GameID == "" || len(payload.Game) == 0 {
		return that.sendError(c, msg.Action, "gameId and game are required")
	}

	room := gameRoomPrefix + payload.GameID
	that.registry.Broadcast(room, c, newMessage(outAction, GamePayload{
		GameID: payload.GameID,
		Game:   payload.Game,
	}))

	return nil
}

func (that *Server) handleJoinRPS(_ context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleJoinRPS", "clientID", c.ID())

	var payload RPSJoinPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Room == "" {
		return that.sendError(c, msg.Action, "room is required")
	}

	that.registry.Join(rpsRoomPrefix+payload.Room, c)

	log.Info("client joined rps room", "room", payload.Room)

	return nil
}

// handleRPSChoice records the caller's private choice. When the second
// choice arrives the round resolves and every participant gets its own
// personalized result.
func (that *Server) handleRPSChoice(ctx context.Context, c *client, msg *Message) error {
	var payload RPSChoicePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Room == "" {
		return that.sendError(c, msg.Action, "room is required")
	}

	results, ready, err := that.rps.Play(ctx, payload.Room, c.ID(), payload.Choice)
	if err != nil {
		return that.sendError(c, msg.Action, err.Error())
	}

	if !ready {
		return nil
	}

	for _, member := range that.registry.Members(rpsRoomPrefix + payload.Room) {
		result, ok := results[member.ID()]
		if !ok {
			continue
		}

		if err = member.WriteJSON(newMessage(actionChoicesRevealed, result)); err != nil {
			that.logger.Error("failed to send rps result", "clientID", member.ID(), "error", err)
		}
	}

	return nil
}

func (that *Server) handleRPSReset(ctx context.Context, c *client, msg *Message) error {
	var payload RPSJoinPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Room == "" {
		return that.sendError(c, msg.Action, "room is required")
	}

	if err := that.rps.Reset(ctx, payload.Room); err != nil {
		return that.sendError(c, msg.Action, "failed to reset room")
	}

	that.registry.Broadcast(rpsRoomPrefix+payload.Room, nil, newMessage(actionRoundReset, RPSJoinPayload{Room: payload.Room}))

	return nil
}
