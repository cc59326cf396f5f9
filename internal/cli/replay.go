package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jaminalder/tictactoe-history/internal/domain"
	"github.com/jaminalder/tictactoe-history/internal/term"
)

func Replay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [cell...]",
		Short: "Print the game produced by a sequence of cell clicks",
		Long: heredoc.Doc(`
			Click the given cells (0-8, row-major) in order, starting with X,
			then print the board, status and move list. Clicks on occupied
			cells or after a win are ignored, as in the browser.
		`),
		Example: heredoc.Doc(`
			$ tictactoe replay 0 4 8 2 6
			$ tictactoe replay 0 3 1 4 2 --jump 3 --desc
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd, os.Stderr)
			if err != nil {
				return err
			}
			cells := make([]int, len(args))
			for i, a := range args {
				if cells[i], err = strconv.Atoi(a); err != nil {
					return fmt.Errorf("cell %q is not a number", a)
				}
			}
			jump, _ := cmd.Flags().GetInt("jump")
			desc, _ := cmd.Flags().GetBool("desc")
			return replay(cmd.OutOrStdout(), log, cells, jump, desc)
		},
	}

	cmd.Flags().IntP("jump", "j", -1, "Jump to this move after playing")
	cmd.Flags().BoolP("desc", "d", false, "List moves newest first")

	return cmd
}

func replay(w io.Writer, log zerolog.Logger, cells []int, jump int, desc bool) error {
	g := domain.New()
	for _, c := range cells {
		if err := g.Play(c); err != nil {
			log.Debug().Err(err).Int("cell", c).Msg("click ignored")
		}
	}
	if jump >= 0 {
		if err := g.JumpTo(jump); err != nil {
			log.Warn().Err(err).Msg("jump ignored")
		}
	}
	if desc {
		g.ToggleOrder()
	}
	return term.Render(w, domain.Render(g))
}
