package domain

import (
	"errors"
	"fmt"
)

// Move is one history record: the board after the move and where it was played.
// Row and Col are 1-based and zero for the game start record.
type Move struct {
	Board Board
	Row   int
	Col   int
}

// HasLocation reports whether the record was produced by a move.
func (m Move) HasLocation() bool { return m.Row > 0 }

// Game holds the move history of a match and the cursor into it.
type Game struct {
	History    []Move
	Current    int
	Descending bool
}

// Errors returned by domain operations. Callers treat Play rejections as no-ops.
var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOccupied    = errors.New("cell occupied")
	ErrGameOver    = errors.New("game over")
	ErrNoSuchMove  = errors.New("no such move")
)

// New returns a game at the start with X to move.
func New() Game {
	return Game{History: []Move{{}}}
}

// Board returns the live board.
func (g *Game) Board() Board {
	return g.History[g.Current].Board
}

// Next returns the mark that plays on the live board.
func (g *Game) Next() Cell {
	if g.Current%2 == 0 {
		return X
	}
	return O
}

// Winner evaluates the live board.
func (g *Game) Winner() (WinResult, bool) {
	return Evaluate(g.Board())
}

// Status is the headline shown above the board.
func (g *Game) Status() string {
	if w, ok := g.Winner(); ok {
		return "Winner: " + w.Mark.String()
	}
	return "Next player: " + g.Next().String()
}

// Play places the next mark at cell idx (0..8). Any future recorded after
// the live move is discarded.
func (g *Game) Play(idx int) error {
	if _, over := g.Winner(); over {
		return ErrGameOver
	}
	if idx < 0 || idx >= len(Board{}) {
		return ErrOutOfBounds
	}
	board := g.Board()
	if board[idx] != Empty {
		return ErrOccupied
	}

	board[idx] = g.Next()
	row, col := Position(idx)

	g.History = append(g.History[:g.Current+1:g.Current+1], Move{Board: board, Row: row, Col: col})
	g.Current = len(g.History) - 1
	return nil
}

// JumpTo makes the recorded move the live one. History is kept.
func (g *Game) JumpTo(move int) error {
	if move < 0 || move >= len(g.History) {
		return fmt.Errorf("%w: %d", ErrNoSuchMove, move)
	}
	g.Current = move
	return nil
}

// ToggleOrder flips the display order of the move list.
func (g *Game) ToggleOrder() {
	g.Descending = !g.Descending
}

// Label describes history entry move for the move list.
func (g *Game) Label(move int) string {
	switch {
	case move == g.Current:
		return fmt.Sprintf("You are at move #%d", move)
	case move == 0:
		return "Go to game start"
	default:
		m := g.History[move]
		return fmt.Sprintf("Go to move #%d (%d, %d)", move, m.Row, m.Col)
	}
}

// Clone returns a copy that shares no history with g.
func (g Game) Clone() Game {
	cp := g
	cp.History = append([]Move(nil), g.History...)
	return cp
}
