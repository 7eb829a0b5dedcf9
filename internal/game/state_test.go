package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playAll applies a sequence of cells and fails the test on any error.
func playAll(t *testing.T, state *GameState, cells []int) {
	t.Helper()

	for _, cell := range cells {
		_, err := state.Play(cell)
		require.NoError(t, err)
	}
}

func TestNewGameState(t *testing.T) {
	t.Run("Creates an empty history for a supported size", func(t *testing.T) {
		// When: creating a 3×3 state
		state, err := NewGameState(3)

		// Then: history holds a single empty board and X is to move
		require.NoError(t, err)
		require.Len(t, state.History, 1)
		assert.Equal(t, newBoard(3), state.History[0])
		assert.Equal(t, 0, state.CurrentMove)
		assert.Equal(t, PlayerX, state.NextPlayer())
	})

	t.Run("Rejects unsupported sizes", func(t *testing.T) {
		for _, size := range []int{-1, 0, 2, 4, 6} {
			// When: creating a state with an unsupported size
			state, err := NewGameState(size)

			// Then: ErrInvalidGridSize comes back
			require.ErrorIs(t, err, ErrInvalidGridSize)
			assert.Nil(t, state)
		}
	})
}

func TestGameState_Play(t *testing.T) {
	t.Run("X wins the top row after five moves", func(t *testing.T) {
		// Given: a fresh 3×3 state
		state, err := NewGameState(3)
		require.NoError(t, err)

		// When: X and O alternate through 0,4,1,5,2
		playAll(t, state, []int{0, 4, 1, 5, 2})

		// Then: X won on the top row and the tally moved once
		status := state.Status()
		assert.Equal(t, StatusWon, status.State)
		assert.Equal(t, PlayerX, status.Player)
		assert.Equal(t, Line{0, 1, 2}, status.Line)
		assert.Equal(t, 1, state.ScoreX)
		assert.Equal(t, 0, state.ScoreO)
		assert.Len(t, state.History, 6)
	})

	t.Run("Filling the board without a line is a draw", func(t *testing.T) {
		// Given: a fresh 3×3 state
		state, err := NewGameState(3)
		require.NoError(t, err)

		// When: nine moves fill the board with no completed line
		playAll(t, state, []int{0, 1, 2, 4, 3, 5, 7, 6, 8})

		// Then: the game is a draw and no score moved
		status := state.Status()
		assert.Equal(t, StatusDraw, status.State)
		assert.Equal(t, 0, state.ScoreX)
		assert.Equal(t, 0, state.ScoreO)
	})

	t.Run("Turn alternates strictly with each legal move", func(t *testing.T) {
		// Given: a fresh 3×3 state
		state, err := NewGameState(3)
		require.NoError(t, err)

		expected := []Mark{PlayerX, PlayerO, PlayerX, PlayerO}
		for i, cell := range []int{0, 1, 3, 4} {
			// Then: the derived player matches the parity before each move
			assert.Equal(t, expected[i], state.Status().Player)

			// When: playing the next cell
			_, err = state.Play(cell)
			require.NoError(t, err)
		}
	})

	t.Run("Playing an occupied cell is a silent no-op", func(t *testing.T) {
		// Given: a state where X took cell 0
		state, err := NewGameState(3)
		require.NoError(t, err)
		playAll(t, state, []int{0})

		// When: O tries the same cell
		snap, err := state.Play(0)

		// Then: no error and nothing changed
		require.NoError(t, err)
		assert.Equal(t, 2, snap.HistoryLength)
		assert.Equal(t, 1, snap.CurrentMove)
		assert.Equal(t, PlayerO, snap.Status.Player)
		assert.Equal(t, PlayerX, snap.Board[0])
	})

	t.Run("Playing after a win is a silent no-op", func(t *testing.T) {
		// Given: a finished game won by X
		state, err := NewGameState(3)
		require.NoError(t, err)
		playAll(t, state, []int{0, 4, 1, 5, 2})

		// When: another move lands on a free cell
		snap, err := state.Play(8)

		// Then: history, position and scores are untouched
		require.NoError(t, err)
		assert.Equal(t, 6, snap.HistoryLength)
		assert.Equal(t, 5, snap.CurrentMove)
		assert.Equal(t, EmptyCell, snap.Board[8])
		assert.Equal(t, 1, snap.ScoreX)
	})

	t.Run("A cell outside the grid fails with ErrInvalidIndex", func(t *testing.T) {
		// Given: a fresh 3×3 state
		state, err := NewGameState(3)
		require.NoError(t, err)

		for _, cell := range []int{-1, 9, 100} {
			// When: playing outside [0, N²)
			snap, err := state.Play(cell)

			// Then: the call fails and the state stays untouched
			require.ErrorIs(t, err, ErrInvalidIndex)
			assert.Equal(t, 1, snap.HistoryLength)
			assert.Equal(t, 0, snap.CurrentMove)
		}
	})

	t.Run("Score grows by at most one per move and only on a win", func(t *testing.T) {
		// Given: a fresh 3×3 state
		state, err := NewGameState(3)
		require.NoError(t, err)

		// When: playing out an X win move by move
		for _, cell := range []int{0, 4, 1, 5} {
			before := state.ScoreX + state.ScoreO
			_, err = state.Play(cell)
			require.NoError(t, err)

			// Then: no score moves before the winning move
			assert.Equal(t, before, state.ScoreX+state.ScoreO)
		}

		_, err = state.Play(2)
		require.NoError(t, err)
		assert.Equal(t, 1, state.ScoreX+state.ScoreO)
	})
}

func TestGameState_JumpTo(t *testing.T) {
	t.Run("Moves the pointer without touching history", func(t *testing.T) {
		// Given: a state with five recorded moves
		state, err := NewGameState(3)
		require.NoError(t, err)
		playAll(t, state, []int{0, 4, 1, 5, 2})

		// When: jumping back to move 2
		snap, err := state.JumpTo(2)

		// Then: the pointer moved, history and scores did not
		require.NoError(t, err)
		assert.Equal(t, 2, snap.CurrentMove)
		assert.Equal(t, 6, snap.HistoryLength)
		assert.Equal(t, 1, snap.ScoreX)

		// And: parity derives the next player from the viewed position
		assert.Equal(t, PlayerX, snap.Status.Player)
	})

	t.Run("Out-of-range index fails loudly and changes nothing", func(t *testing.T) {
		// Given: a state with three positions recorded
		state, err := NewGameState(3)
		require.NoError(t, err)
		playAll(t, state, []int{0, 1})

		for _, move := range []int{-1, 3, 10} {
			// When: jumping outside the history
			snap, err := state.JumpTo(move)

			// Then: ErrInvalidIndex comes back and the pointer is unmoved
			require.ErrorIs(t, err, ErrInvalidIndex)
			assert.Equal(t, 2, snap.CurrentMove)
			assert.Equal(t, 3, snap.HistoryLength)
		}
	})

	t.Run("Playing after a jump discards the old continuation", func(t *testing.T) {
		// Given: a state with five positions and the pointer back at 0
		state, err := NewGameState(3)
		require.NoError(t, err)
		playAll(t, state, []int{0, 4, 1, 5})
		_, err = state.JumpTo(0)
		require.NoError(t, err)

		// When: playing a new first move
		snap, err := state.Play(8)

		// Then: the branch is overwritten, not merged
		require.NoError(t, err)
		assert.Equal(t, 2, snap.HistoryLength)
		assert.Equal(t, 1, snap.CurrentMove)
		assert.Equal(t, PlayerX, snap.Board[8])
		assert.Equal(t, EmptyCell, snap.Board[0])
	})

	t.Run("Replaying a second win counts it again", func(t *testing.T) {
		// Given: a finished game won by X
		state, err := NewGameState(3)
		require.NoError(t, err)
		playAll(t, state, []int{0, 4, 1, 5, 2})
		require.Equal(t, 1, state.ScoreX)

		// When: rewinding to the start and playing out another X win
		_, err = state.JumpTo(0)
		require.NoError(t, err)
		playAll(t, state, []int{0, 4, 1, 5, 2})

		// Then: the tally reflects moves actually played forward
		assert.Equal(t, 2, state.ScoreX)
	})
}

func TestGameState_Restart(t *testing.T) {
	t.Run("Resets history but keeps the tally", func(t *testing.T) {
		// Given: a finished game won by X
		state, err := NewGameState(3)
		require.NoError(t, err)
		playAll(t, state, []int{0, 4, 1, 5, 2})

		// When: restarting the session
		snap := state.Restart()

		// Then: a single empty board remains and the score survives
		assert.Equal(t, 1, snap.HistoryLength)
		assert.Equal(t, 0, snap.CurrentMove)
		assert.Equal(t, newBoard(3), snap.Board)
		assert.Equal(t, 1, snap.ScoreX)
		assert.Equal(t, StatusOngoing, snap.Status.State)
	})
}

func TestGameState_Snapshot(t *testing.T) {
	t.Run("Snapshot board is detached from internal history", func(t *testing.T) {
		// Given: a state with one move played
		state, err := NewGameState(3)
		require.NoError(t, err)
		playAll(t, state, []int{4})

		// When: mutating the snapshot's board
		snap := state.Snapshot()
		snap.Board[0] = PlayerO

		// Then: the recorded history is unaffected
		assert.Equal(t, EmptyCell, state.History[1][0])
	})

	t.Run("Works on a 5×5 grid", func(t *testing.T) {
		// Given: a 5×5 state with a diagonal X win in progress
		state, err := NewGameState(5)
		require.NoError(t, err)

		// X takes the main diagonal, O fills the last column
		playAll(t, state, []int{0, 4, 6, 9, 12, 14, 18, 19})

		// When: X completes the diagonal
		snap, err := state.Play(24)

		// Then: the win carries the five diagonal indices
		require.NoError(t, err)
		assert.Equal(t, StatusWon, snap.Status.State)
		assert.Equal(t, Line{0, 6, 12, 18, 24}, snap.Status.Line)
		assert.Equal(t, 1, snap.ScoreX)
	})
}
