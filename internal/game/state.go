package game

import (
	"errors"
	"fmt"
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

var (
	ErrInvalidGridSize = errors.New("unsupported grid size")
	ErrInvalidIndex    = errors.New("index out of range")
)

// SupportedSizes lists the grid dimensions a session may be created with.
var SupportedSizes = []int{3, 5}

// GameState owns the full move history of one session. History[0] is the
// empty board; each later entry differs from its predecessor in exactly one
// cell. Whose turn it is gets derived from CurrentMove parity (even → X) and
// is never stored. Fields are exported for JSON storage; callers mutate the
// state through methods only and must serialize access themselves.
type GameState struct {
	Size        int     `json:"size"`
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
	ScoreX      int     `json:"score_x"`
	ScoreO      int     `json:"score_o"`
}

// Status is the derived terminal state of the active board. Player carries
// the next mover while ongoing and the winner after a win; Line is set only
// on a win.
type Status struct {
	State  string `json:"state"`
	Player Mark   `json:"player,omitempty"`
	Line   Line   `json:"line,omitempty"`
}

// Snapshot is the complete read-model a presentation layer needs after any
// call into the state.
type Snapshot struct {
	Board         Board  `json:"board"`
	HistoryLength int    `json:"history_length"`
	CurrentMove   int    `json:"current_move"`
	Status        Status `json:"status"`
	ScoreX        int    `json:"score_x"`
	ScoreO        int    `json:"score_o"`
}

func NewGameState(size int) (*GameState, error) {
	supported := false
	for _, n := range SupportedSizes {
		if size == n {
			supported = true
			break
		}
	}

	if !supported {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGridSize, size)
	}

	return &GameState{
		Size:    size,
		History: []Board{newBoard(size)},
	}, nil
}

// NextPlayer derives the mark to move from the current position parity.
func (that *GameState) NextPlayer() Mark {
	if that.CurrentMove%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// ActiveBoard returns a copy of the board at the current position.
func (that *GameState) ActiveBoard() Board {
	return that.History[that.CurrentMove].clone()
}

// Boards returns copies of every recorded position, oldest first.
func (that *GameState) Boards() []Board {
	boards := make([]Board, len(that.History))
	for i, board := range that.History {
		boards[i] = board.clone()
	}
	return boards
}

// Status derives the terminal state of the active board.
func (that *GameState) Status() Status {
	board := that.History[that.CurrentMove]

	if win := Evaluate(board, that.Size); win != nil {
		return Status{State: StatusWon, Player: win.Player, Line: win.Line}
	}

	if board.isFull() {
		return Status{State: StatusDraw}
	}

	return Status{State: StatusOngoing, Player: that.NextPlayer()}
}

// Play applies the next player's mark at cell. A cell outside [0, N²) is
// ErrInvalidIndex. Playing an occupied cell or playing after a win or draw
// is not an error: the move is silently ignored and the unchanged snapshot
// comes back. A legal move discards any history after the current position
// before being appended, so replaying from an earlier point overwrites the
// old continuation for good.
func (that *GameState) Play(cell int) (Snapshot, error) {
	if cell < 0 || cell >= that.Size*that.Size {
		return that.Snapshot(), fmt.Errorf("%w: cell %d", ErrInvalidIndex, cell)
	}

	if that.Status().State != StatusOngoing {
		return that.Snapshot(), nil
	}

	board := that.History[that.CurrentMove]
	if board[cell] != EmptyCell {
		return that.Snapshot(), nil
	}

	next := board.clone()
	next[cell] = that.NextPlayer()

	// The full slice expression keeps a discarded branch from sharing
	// backing storage with the new one.
	that.History = append(that.History[:that.CurrentMove+1:that.CurrentMove+1], next)
	that.CurrentMove = len(that.History) - 1

	if win := Evaluate(next, that.Size); win != nil {
		switch win.Player {
		case PlayerX:
			that.ScoreX++
		case PlayerO:
			that.ScoreO++
		}
	}

	return that.Snapshot(), nil
}

// JumpTo moves the current position pointer without touching history or
// scores. An index outside the recorded history fails with ErrInvalidIndex
// and leaves the state unchanged; there is no clamping.
func (that *GameState) JumpTo(move int) (Snapshot, error) {
	if move < 0 || move >= len(that.History) {
		return that.Snapshot(), fmt.Errorf("%w: move %d of %d", ErrInvalidIndex, move, len(that.History))
	}

	that.CurrentMove = move

	return that.Snapshot(), nil
}

// Restart truncates the session back to a single empty board. Score tallies
// survive; they reset only when the whole session goes away.
func (that *GameState) Restart() Snapshot {
	that.History = []Board{newBoard(that.Size)}
	that.CurrentMove = 0

	return that.Snapshot()
}

// Snapshot assembles the read-model for the active position.
func (that *GameState) Snapshot() Snapshot {
	return Snapshot{
		Board:         that.ActiveBoard(),
		HistoryLength: len(that.History),
		CurrentMove:   that.CurrentMove,
		Status:        that.Status(),
		ScoreX:        that.ScoreX,
		ScoreO:        that.ScoreO,
	}
}
