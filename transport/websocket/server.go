package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"

	"github.com/playforgeinc/gridgame-backend/internal/entity"
	"github.com/playforgeinc/gridgame-backend/internal/repository"
)

const defaultPingInterval = 15 * time.Second

type sessionReader interface {
	GetSession(ctx context.Context, id string) (*entity.Session, error)
}

// Server upgrades watch requests and streams snapshot events for one
// session until the client goes away.
type Server struct {
	logger   *slog.Logger
	hub      *Hub
	sessions sessionReader

	pingInterval time.Duration
}

func NewServer(logger *slog.Logger, hub *Hub, sessions sessionReader) *Server {
	return &Server{
		logger:       logger,
		hub:          hub,
		sessions:     sessions,
		pingInterval: defaultPingInterval,
	}
}

// Watch handles GET /sessions/{id}/watch.
func (that *Server) Watch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Watch")

	sessionID := chi.URLParam(r, "id")

	session, err := that.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Error("failed to load session", "sessionID", sessionID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "sessionID", sessionID, "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	// The connection is write-only from here on. CloseRead keeps a reader
	// running in the background so control frames (the pongs our pings ask
	// for) get consumed; its context ends when the client closes.
	ctx := conn.CloseRead(r.Context())

	log.Info("watcher connected", "sessionID", sessionID)

	// The current position goes out first so the client can render without
	// waiting for the next move.
	first, err := json.Marshal(Event{Type: "snapshot", SessionID: sessionID, Snapshot: session.Game.Snapshot()})
	if err != nil {
		log.Error("failed to marshal snapshot", "sessionID", sessionID, "error", err)
		return
	}
	if err = conn.Write(ctx, websocket.MessageText, first); err != nil {
		return
	}

	sub := that.hub.subscribe(sessionID)
	defer that.hub.unsubscribe(sessionID, sub)

	ping := time.NewTicker(that.pingInterval)
	defer ping.Stop()

	for {
		select {
		case payload, ok := <-sub.send:
			if !ok {
				return
			}
			if err = conn.Write(ctx, websocket.MessageText, payload); err != nil {
				return
			}
		case <-ping.C:
			if err = conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
