package entity

import (
	"time"

	"github.com/playforgeinc/gridgame-backend/internal/game"
)

// WinnerTie marks an archived draw.
const WinnerTie = "-"

// GameResult is one finished game, archived when a session first reaches a
// win or a draw. Winner is "X", "O" or WinnerTie.
type GameResult struct {
	SessionID  string    `json:"session_id"`
	Size       int       `json:"size"`
	Winner     string    `json:"winner"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

// ResultFromStatus builds the archive row for a session whose active board
// just turned terminal.
func ResultFromStatus(session *Session, status game.Status) *GameResult {
	winner := WinnerTie
	if status.State == game.StatusWon {
		winner = string(status.Player)
	}

	return &GameResult{
		SessionID:  session.ID,
		Size:       session.Game.Size,
		Winner:     winner,
		Moves:      session.Game.CurrentMove,
		FinishedAt: time.Now().UTC(),
	}
}
