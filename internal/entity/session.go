package entity

import (
	"time"

	"github.com/playforgeinc/gridgame-backend/internal/game"
)

// Session binds one GameState to an identifier so transports and storage can
// address it. All game semantics live in the wrapped state.
type Session struct {
	ID      string          `json:"id"`
	Game    *game.GameState `json:"game"`
	Created time.Time       `json:"created"`
	Updated time.Time       `json:"updated"`
}

func NewSession(id string, size int) (*Session, error) {
	state, err := game.NewGameState(size)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Session{
		ID:      id,
		Game:    state,
		Created: now,
		Updated: now,
	}, nil
}

// Touch bumps the modification timestamp after a mutating call.
func (that *Session) Touch() {
	that.Updated = time.Now().UTC()
}
