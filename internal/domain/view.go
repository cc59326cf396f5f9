package domain

// CellView is one square as the view draws it.
type CellView struct {
	Index     int
	Value     Cell
	Highlight bool
}

// EntryView is one item of the move list.
type EntryView struct {
	Move    int
	Label   string
	Current bool
}

// View is everything a renderer needs to draw a game.
type View struct {
	Cells      [9]CellView
	Status     string
	Winner     Cell
	Entries    []EntryView
	Current    int
	Descending bool
}

// Render derives the view of g. Nothing here is stored on the game.
func Render(g Game) View {
	v := View{
		Status:     g.Status(),
		Current:    g.Current,
		Descending: g.Descending,
		Entries:    make([]EntryView, 0, len(g.History)),
	}

	win, won := g.Winner()
	if won {
		v.Winner = win.Mark
	}
	board := g.Board()
	for i, c := range board {
		v.Cells[i] = CellView{Index: i, Value: c, Highlight: won && win.Contains(i)}
	}

	for i := range g.History {
		move := i
		if g.Descending {
			move = len(g.History) - 1 - i
		}
		v.Entries = append(v.Entries, EntryView{
			Move:    move,
			Label:   g.Label(move),
			Current: move == g.Current,
		})
	}
	return v
}
