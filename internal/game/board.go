package game

// Mark is the content of a single cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// Board is an N×N grid stored row-major: index = row*N + col.
type Board []Mark

func newBoard(size int) Board {
	return make(Board, size*size)
}

func (that Board) clone() Board {
	next := make(Board, len(that))
	copy(next, that)
	return next
}

func (that Board) isFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}
