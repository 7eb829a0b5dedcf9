package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/playforgeinc/gridgame-backend/internal/game"
)

// Event is the envelope pushed to every watcher of a session after a
// mutating call.
type Event struct {
	Type      string        `json:"type"`
	SessionID string        `json:"session_id"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

type watcher struct {
	send      chan []byte
	closeOnce sync.Once
}

func (that *watcher) close() {
	that.closeOnce.Do(func() { close(that.send) })
}

// Hub fans session snapshots out to connected watchers. It satisfies the
// usecase notifier interface; Publish never blocks — a watcher that cannot
// keep up gets dropped.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	watchers map[string]map[*watcher]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger,
		watchers: make(map[string]map[*watcher]struct{}),
	}
}

func (that *Hub) Publish(sessionID string, snap game.Snapshot) {
	log := that.logger.With("method", "Publish")

	payload, err := json.Marshal(Event{Type: "snapshot", SessionID: sessionID, Snapshot: snap})
	if err != nil {
		log.Error("failed to marshal snapshot", "sessionID", sessionID, "error", err)
		return
	}

	var toDrop []*watcher

	that.mu.RLock()
	for w := range that.watchers[sessionID] {
		select {
		case w.send <- payload:
		default:
			toDrop = append(toDrop, w)
		}
	}
	that.mu.RUnlock()

	for _, w := range toDrop {
		log.Info("dropping slow watcher", "sessionID", sessionID)
		that.unsubscribe(sessionID, w)
	}
}

func (that *Hub) subscribe(sessionID string) *watcher {
	w := &watcher{send: make(chan []byte, 8)}

	that.mu.Lock()
	set := that.watchers[sessionID]
	if set == nil {
		set = make(map[*watcher]struct{})
		that.watchers[sessionID] = set
	}
	set[w] = struct{}{}
	that.mu.Unlock()

	return w
}

func (that *Hub) unsubscribe(sessionID string, w *watcher) {
	that.mu.Lock()
	if set, ok := that.watchers[sessionID]; ok {
		delete(set, w)
		if len(set) == 0 {
			delete(that.watchers, sessionID)
		}
	}
	that.mu.Unlock()

	w.close()
}
