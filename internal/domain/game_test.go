package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to apply a sequence of cell clicks
func playMoves(t *testing.T, g *Game, cells ...int) {
	t.Helper()
	for i, c := range cells {
		require.NoError(t, g.Play(c), "move %d (cell %d)", i, c)
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := New()

	require.Len(t, g.History, 1)
	assert.Equal(t, 0, g.Current)
	assert.Equal(t, Board{}, g.Board())
	assert.False(t, g.History[0].HasLocation())
	assert.Equal(t, X, g.Next())
	assert.Equal(t, "Next player: X", g.Status())
	assert.False(t, g.Descending)
}

func TestPlayFirstMove(t *testing.T) {
	// Given: an empty board
	g := New()

	// When: X clicks the centre
	require.NoError(t, g.Play(4))

	// Then: the cell holds X, the cursor advanced and O is next
	assert.Equal(t, X, g.Board()[4])
	assert.Equal(t, 1, g.Current)
	assert.Equal(t, O, g.Next())
	assert.Equal(t, Move{Board: g.Board(), Row: 2, Col: 2}, g.History[1])
}

func TestPlayRecordsRowAndColumn(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 5, 7)

	assert.Equal(t, [2]int{1, 1}, [2]int{g.History[1].Row, g.History[1].Col})
	assert.Equal(t, [2]int{2, 3}, [2]int{g.History[2].Row, g.History[2].Col})
	assert.Equal(t, [2]int{3, 2}, [2]int{g.History[3].Row, g.History[3].Col})
}

func TestPlayOccupiedIsNoop(t *testing.T) {
	// Given: X played 0 and O played 1
	g := New()
	playMoves(t, &g, 0, 1)
	before := g.Clone()

	// When: cell 0 is clicked again
	err := g.Play(0)

	// Then: nothing changed
	require.ErrorIs(t, err, ErrOccupied)
	assert.Equal(t, before, g)
}

func TestPlayOutOfBounds(t *testing.T) {
	g := New()
	for _, idx := range []int{-1, 9, 42} {
		require.ErrorIs(t, g.Play(idx), ErrOutOfBounds, "cell %d", idx)
	}
	assert.Len(t, g.History, 1)
}

func TestHistoryInvariant(t *testing.T) {
	g := New()
	playMoves(t, &g, 4, 0, 8, 2, 6, 3)

	for m := 1; m < len(g.History); m++ {
		prev, cur := g.History[m-1].Board, g.History[m].Board
		mark := X
		if m%2 == 0 {
			mark = O
		}
		diff := 0
		for i := range cur {
			if prev[i] != cur[i] {
				diff++
				assert.Equal(t, Empty, prev[i])
				assert.Equal(t, mark, cur[i])
			}
		}
		assert.Equal(t, 1, diff, "move %d", m)
	}
}

func TestWinConditionsForX(t *testing.T) {
	// X plays the line, O plays fillers that never complete a line of their own.
	for _, line := range Lines {
		var fillers []int
		for i := 0; i < 9 && len(fillers) < 2; i++ {
			if i != line[0] && i != line[1] && i != line[2] {
				fillers = append(fillers, i)
			}
		}
		g := New()
		playMoves(t, &g, line[0], fillers[0], line[1], fillers[1], line[2])

		w, ok := g.Winner()
		require.True(t, ok, "line %v", line)
		assert.Equal(t, X, w.Mark)
		assert.Equal(t, line, w.Line)
		assert.Equal(t, "Winner: X", g.Status())
	}
}

func TestWinConditionForO(t *testing.T) {
	g := New()
	// O takes the middle column while X scatters.
	playMoves(t, &g, 0, 1, 2, 4, 3, 7)

	w, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, O, w.Mark)
	assert.Equal(t, [3]int{1, 4, 7}, w.Line)
}

func TestDiagonalWin(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 1, 4, 2, 8)

	w, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, WinResult{Mark: X, Line: [3]int{0, 4, 8}}, w)
}

func TestAlternatingCornersHasNoWinnerYet(t *testing.T) {
	// O holds the centre, so X's corners 0, 8 and 6 complete no line.
	g := New()
	playMoves(t, &g, 0, 4, 8, 2, 6)

	_, ok := g.Winner()
	assert.False(t, ok)
	assert.Equal(t, "Next player: O", g.Status())
}

func TestGameOverBlocksFurtherMoves(t *testing.T) {
	// Given: X won on the top row
	g := New()
	playMoves(t, &g, 0, 3, 1, 4, 2)
	before := g.Clone()

	// When: any empty cell is clicked
	for _, idx := range []int{5, 6, 7, 8} {
		require.ErrorIs(t, g.Play(idx), ErrGameOver)
	}

	// Then: the game is unchanged
	assert.Equal(t, before, g)
}

func TestDrawKeepsNextPlayerStatus(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	_, ok := g.Winner()
	require.False(t, ok)
	assert.Equal(t, "Next player: O", g.Status())
}

func TestJumpToStartThenPlayTruncates(t *testing.T) {
	// Given: three recorded moves
	g := New()
	playMoves(t, &g, 0, 1, 2)

	// When: jumping back to the start
	require.NoError(t, g.JumpTo(0))

	// Then: the live board is empty but history is intact
	assert.Equal(t, Board{}, g.Board())
	assert.Len(t, g.History, 4)
	assert.Equal(t, X, g.Next())

	// When: a new move is played
	require.NoError(t, g.Play(8))

	// Then: the old future is gone
	require.Len(t, g.History, 2)
	assert.Equal(t, 1, g.Current)
	assert.Equal(t, Board{8: X}, g.Board())
}

func TestJumpToMiddleDerivesTurn(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 1, 2)

	require.NoError(t, g.JumpTo(1))
	assert.Equal(t, O, g.Next())
	require.NoError(t, g.JumpTo(3))
	assert.Equal(t, O, g.Next())
	require.NoError(t, g.JumpTo(3))
	assert.Equal(t, 3, g.Current)
}

func TestJumpToOutOfRange(t *testing.T) {
	g := New()
	playMoves(t, &g, 0)

	require.ErrorIs(t, g.JumpTo(2), ErrNoSuchMove)
	require.ErrorIs(t, g.JumpTo(-1), ErrNoSuchMove)
	assert.Equal(t, 1, g.Current)
}

func TestJumpBackOutOfWinAllowsPlay(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 3, 1, 4, 2)
	require.ErrorIs(t, g.Play(8), ErrGameOver)

	require.NoError(t, g.JumpTo(4))
	require.NoError(t, g.Play(8))
	assert.Len(t, g.History, 6)
}

func TestToggleOrder(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 1)
	before := g.Clone()

	g.ToggleOrder()
	assert.True(t, g.Descending)
	assert.Equal(t, before.History, g.History)
	assert.Equal(t, before.Current, g.Current)

	g.ToggleOrder()
	assert.Equal(t, before, g)
}

func TestLabels(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 5)

	assert.Equal(t, "Go to game start", g.Label(0))
	assert.Equal(t, "Go to move #1 (1, 1)", g.Label(1))
	assert.Equal(t, "You are at move #2", g.Label(2))

	require.NoError(t, g.JumpTo(0))
	assert.Equal(t, "You are at move #0", g.Label(0))
	assert.Equal(t, "Go to move #2 (2, 3)", g.Label(2))
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 1, 2)
	require.NoError(t, g.JumpTo(1))

	cp := g.Clone()
	require.NoError(t, cp.Play(8))

	assert.Len(t, g.History, 4)
	assert.Equal(t, Board{0: X, 1: O, 2: X}, g.History[3].Board)
}
