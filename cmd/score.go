package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/friendle/internal/game"
)

var scoreVerbose bool

var scoreCmd = &cobra.Command{
	Use:   "score GUESS TARGET",
	Short: "Print the squares a guess earns against a target",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses, err := game.Evaluate(args[0], args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, game.Row(statuses))
		if scoreVerbose {
			guess := []rune(game.Normalize(args[0]))
			for i, s := range statuses {
				fmt.Fprintf(out, "%c %s\n", guess[i], s)
			}
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Also print the status of each letter")
	rootCmd.AddCommand(scoreCmd)
}
