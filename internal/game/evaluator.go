package game

// Line is an ordered set of N cell indices that wins the game when all of
// them hold the same mark.
type Line []int

// WinResult reports a completed line and the mark that owns it.
type WinResult struct {
	Player Mark `json:"player"`
	Line   Line `json:"line"`
}

// GenerateLines enumerates every candidate winning line for an N×N grid:
// N rows, then N columns, then the main diagonal, then the anti-diagonal.
// The order is fixed; Evaluate reports the first completed line in it.
func GenerateLines(size int) []Line {
	lines := make([]Line, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make(Line, size)
		for col := 0; col < size; col++ {
			line[col] = row*size + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make(Line, size)
		for row := 0; row < size; row++ {
			line[row] = row*size + col
		}
		lines = append(lines, line)
	}

	mainDiag := make(Line, size)
	antiDiag := make(Line, size)
	for i := 0; i < size; i++ {
		mainDiag[i] = i*size + i
		antiDiag[i] = i*size + (size - 1 - i)
	}

	return append(lines, mainDiag, antiDiag)
}

// Evaluate scans the candidate lines in enumeration order and returns the
// first fully marked one, or nil when no line is complete. It is pure: the
// same board always yields the same result.
func Evaluate(board Board, size int) *WinResult {
	for _, line := range GenerateLines(size) {
		first := board[line[0]]
		if first == EmptyCell {
			continue
		}

		complete := true
		for _, idx := range line[1:] {
			if board[idx] != first {
				complete = false
				break
			}
		}

		if complete {
			return &WinResult{Player: first, Line: line}
		}
	}

	return nil
}
