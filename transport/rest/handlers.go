package rest

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/twohearts/couplegames-backend/internal/apperror"
	"github.com/twohearts/couplegames-backend/internal/entity"
	"github.com/twohearts/couplegames-backend/internal/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type createGameRequest struct {
	Type string `json:"type"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid-body")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(that.adminPassword)) != 1 {
		that.writeError(w, http.StatusUnauthorized, "invalid-credentials")
		return
	}

	token, err := that.auth.GenerateToken(entity.RoleAdmin)
	if err != nil {
		that.logger.Error("failed to generate token", "error", err)
		that.writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	that.writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (that *Server) handleListGames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	gameType := r.URL.Query().Get("type")

	games, err := that.uGame.ListActive(r.Context(), gameType)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, games)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	game, err := that.uGame.GetGame(r.Context(), params.ByName("id"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid-body")
		return
	}

	game, err := that.uGame.CreateOrGetActive(r.Context(), req.Type, that.callerRole(r))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleJoinGame(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	game, err := that.uGame.Join(r.Context(), params.ByName("id"), that.callerRole(r))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var move entity.Move
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid-body")
		return
	}

	game, err := that.uGame.MakeMove(r.Context(), params.ByName("id"), move)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if err := that.uGame.DeleteGame(r.Context(), params.ByName("id"), that.callerRole(r)); err != nil {
		that.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondError maps sentinel errors to the wire taxonomy. Every rejection is
// a distinct reason string so clients can show a precise message.
func (that *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		that.writeError(w, http.StatusNotFound, "not-found")
	case errors.Is(err, apperror.ErrGameNotActive), errors.Is(err, apperror.ErrGameFinished):
		that.writeError(w, http.StatusConflict, "not-active")
	case errors.Is(err, apperror.ErrNotYourTurn):
		that.writeError(w, http.StatusConflict, "not-your-turn")
	case errors.Is(err, apperror.ErrCellOccupied):
		that.writeError(w, http.StatusConflict, "occupied")
	case errors.Is(err, apperror.ErrColumnFull):
		that.writeError(w, http.StatusConflict, "full")
	case errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, apperror.ErrUnknownGameType):
		that.writeError(w, http.StatusBadRequest, "invalid-move")
	case errors.Is(err, apperror.ErrAdminOnly):
		that.writeError(w, http.StatusForbidden, "forbidden")
	default:
		that.logger.Error("request failed", "error", err)
		that.writeError(w, http.StatusInternalServerError, "internal")
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, reason string) {
	that.writeJSON(w, status, errorResponse{Error: reason})
}
