package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/twohearts/couplegames-backend/internal/realtime"
	"github.com/twohearts/couplegames-backend/internal/service"
)

type rpsService interface {
	Play(ctx context.Context, room, playerID, choice string) (map[string]*service.RPSResult, bool, error)
	Reset(ctx context.Context, room string) error
}

type Server struct {
	logger   *slog.Logger
	registry *realtime.Registry
	rps      rpsService
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, client *client, message *Message) error
}

func New(logger *slog.Logger, registry *realtime.Registry, rps rpsService) *Server {
	server := &Server{
		logger:   logger,
		registry: registry,
		rps:      rps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// both sites are served from their own origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers[actionJoinGame] = server.handleJoinGame
	server.handlers[actionMakeMove] = server.handleMakeMove
	server.handlers[actionGameOver] = server.handleGameOver
	server.handlers[actionJoinRPS] = server.handleJoinRPS
	server.handlers[actionRPSChoice] = server.handleRPSChoice
	server.handlers[actionRPSReset] = server.handleRPSReset

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 0, // connections are long-lived
		IdleTimeout: 0,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn)
	log = log.With("clientID", c.ID())
	log.Info("WebSocket connection established")

	defer func() {
		that.registry.Leave(c)
		c.Close()
		log.Info("client disconnected")
	}()

	that.readLoop(ctx, c)
}

// readLoop processes messages from the client until the connection drops.
func (that *Server) readLoop(ctx context.Context, c *client) {
	log := that.logger.With("method", "readLoop", "clientID", c.ID())

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err := handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) sendError(c *client, action, errorMsg string) error {
	if err := c.WriteJSON(newMessage(action, ErrorPayload{Error: errorMsg})); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
