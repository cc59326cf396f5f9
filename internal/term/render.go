// Package term draws a game view as plain text for terminals.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jaminalder/tictactoe-history/internal/domain"
)

var (
	winning = color.New(color.FgYellow, color.Bold)
	current = color.New(color.Bold)
)

// Render writes the status line, the grid and the move list of v to w.
func Render(w io.Writer, v domain.View) error {
	var b strings.Builder

	b.WriteString(v.Status)
	b.WriteString("\n\n")
	for r := 0; r < 3; r++ {
		if r > 0 {
			b.WriteString("---+---+---\n")
		}
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			cell := v.Cells[r*3+c]
			sym := cell.Value.String()
			if sym == "" {
				sym = "."
			}
			if cell.Highlight {
				sym = winning.Sprint(sym)
			}
			cells[c] = " " + sym + " "
		}
		b.WriteString(strings.Join(cells, "|"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, e := range v.Entries {
		if e.Current {
			b.WriteString(current.Sprintf("> %s", e.Label))
		} else {
			fmt.Fprintf(&b, "  %s", e.Label)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
