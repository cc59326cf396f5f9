package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns the mark as displayed on the board; Empty is "".
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Lines lists every winning line in evaluation order: rows, columns, diagonals.
var Lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// WinResult is the mark that completed a line and the cells of that line.
type WinResult struct {
	Mark Cell
	Line [3]int
}

// Contains reports whether cell idx is part of the winning line.
func (w WinResult) Contains(idx int) bool {
	return w.Line[0] == idx || w.Line[1] == idx || w.Line[2] == idx
}

// Evaluate returns the first line in Lines held entirely by one mark.
func Evaluate(b Board) (WinResult, bool) {
	for _, ln := range Lines {
		a := b[ln[0]]
		if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
			return WinResult{Mark: a, Line: ln}, true
		}
	}
	return WinResult{}, false
}

// Position converts a cell index to 1-based row and column.
func Position(idx int) (row, col int) {
	return idx/3 + 1, idx%3 + 1
}
