package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/friendle/internal/game"
	"github.com/robalobadob/friendle/internal/words"
)

var (
	playAnswer string
	playLimit  int
	playStrict bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a word game in the terminal",
	Long: `Play a word game reading one guess per line from stdin.

Each guess prints its row of squares. When the game ends the share text is
printed, followed by the answer if it was not found.

  friendle play                    Random answer from the word list
  friendle play --answer knoll     Fixed answer (handy for friends at one keyboard)`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playAnswer, "answer", "", "Target word (default: random answer)")
	playCmd.Flags().IntVar(&playLimit, "limit", game.DefaultLimit, "Maximum number of guesses")
	playCmd.Flags().BoolVar(&playStrict, "strict", false, "Reject guesses that are not in the word list")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := words.Init(os.Getenv("WORDS_ANSWERS_FILE"), os.Getenv("WORDS_ALLOWED_FILE")); err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	answer := playAnswer
	if answer == "" {
		answer = words.RandomAnswer()
	}
	sess, err := game.New(answer, playLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Guess the %d-letter word. You have %d tries.\n", len([]rune(sess.Target)), sess.Limit)

	sc := bufio.NewScanner(cmd.InOrStdin())
	for !sess.State.Terminal() && sc.Scan() {
		guess := strings.TrimSpace(sc.Text())
		if guess == "" {
			continue
		}
		_, err := game.Evaluate(guess, sess.Target)
		switch {
		case errors.Is(err, game.ErrInvalidGuessLength):
			fmt.Fprintf(out, "guesses must be %d letters\n", len([]rune(sess.Target)))
			continue
		case errors.Is(err, game.ErrInvalidGuess):
			fmt.Fprintln(out, "guesses may only contain letters")
			continue
		}
		if playStrict && game.Normalize(guess) != sess.Target && !words.IsAllowed(guess) {
			fmt.Fprintf(out, "%s is not in the word list\n", game.Normalize(guess))
			continue
		}
		statuses, err := sess.SubmitGuess(guess)
		if err != nil {
			return err
		}
		if sess.State.Terminal() {
			fmt.Fprintf(out, "%s  %s\n", game.Row(statuses), game.Normalize(guess))
			continue
		}
		fmt.Fprintf(out, "%s  %s  (%d left)\n", game.Row(statuses), game.Normalize(guess), sess.Remaining())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading guesses: %w", err)
	}

	if !sess.State.Terminal() {
		fmt.Fprintln(out, "Game abandoned.")
		return nil
	}

	text, err := sess.ShareText("")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", text)
	if sess.State == game.StateLost {
		fmt.Fprintf(out, "\nThe word was %s.\n", sess.Target)
	}
	return nil
}
