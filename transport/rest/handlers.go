package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playforgeinc/gridgame-backend/internal/entity"
	"github.com/playforgeinc/gridgame-backend/internal/game"
	"github.com/playforgeinc/gridgame-backend/internal/repository"
)

const defaultResultsLimit = 20

type handlers struct {
	logger  *slog.Logger
	manager sessionManager
}

type createRequest struct {
	Size int `json:"size"`
}

type playRequest struct {
	Cell int `json:"cell"`
}

type jumpRequest struct {
	Move int `json:"move"`
}

type sessionResponse struct {
	ID       string        `json:"id"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type historyResponse struct {
	ID          string       `json:"id"`
	Boards      []game.Board `json:"boards"`
	CurrentMove int          `json:"current_move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		// The status line is already gone, so all that is left is to log.
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := that.manager.CreateSession(r.Context(), req.Size)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, sessionResponse{ID: session.ID, Snapshot: session.Game.Snapshot()})
}

func (that *handlers) snapshot(w http.ResponseWriter, r *http.Request) {
	session, err := that.manager.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{ID: session.ID, Snapshot: session.Game.Snapshot()})
}

func (that *handlers) history(w http.ResponseWriter, r *http.Request) {
	session, err := that.manager.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, historyResponse{
		ID:          session.ID,
		Boards:      session.Game.Boards(),
		CurrentMove: session.Game.CurrentMove,
	})
}

func (that *handlers) play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sessionID := chi.URLParam(r, "id")

	snap, err := that.manager.Play(r.Context(), sessionID, req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	// An ignored move (occupied cell, game already over) is a 200 with the
	// unchanged snapshot, mirroring a click that does nothing.
	that.writeJSON(w, http.StatusOK, sessionResponse{ID: sessionID, Snapshot: snap})
}

func (that *handlers) jump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sessionID := chi.URLParam(r, "id")

	snap, err := that.manager.JumpTo(r.Context(), sessionID, req.Move)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{ID: sessionID, Snapshot: snap})
}

func (that *handlers) restart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	snap, err := that.manager.Restart(r.Context(), sessionID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{ID: sessionID, Snapshot: snap})
}

func (that *handlers) remove(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) results(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	results, err := that.manager.RecentResults(r.Context(), limit)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if results == nil {
		results = []*entity.GameResult{}
	}

	that.writeJSON(w, http.StatusOK, results)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
	case errors.Is(err, game.ErrInvalidGridSize), errors.Is(err, game.ErrInvalidIndex):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
