package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively",
		Long: `Start a game and read guesses from standard input until you find
the number. After each win you are asked whether to play again.

Type "quit" to abandon the game.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func play(in io.Reader, w io.Writer) error {
	out := NewOutput("text", w)
	scanner := bufio.NewScanner(in)

	for {
		var game Game
		if err := client.Post("/api/v1/game", nil, &game); err != nil {
			return err
		}
		out.printf("Guess a number between %d and %d\n", game.MinRange, game.MaxRange)

		won, err := playRound(scanner, out)
		if err != nil || !won {
			return err
		}

		out.printf("Play again? (y/n) ")
		if !scanner.Scan() {
			out.printf("\n")
			return scanner.Err()
		}
		if answer := strings.ToLower(strings.TrimSpace(scanner.Text())); answer != "y" && answer != "yes" {
			return nil
		}
	}
}

// playRound reads guesses until the game is won. It returns false when
// input ends or the player quits.
func playRound(scanner *bufio.Scanner, out *Output) (bool, error) {
	for {
		out.printf("> ")
		if !scanner.Scan() {
			out.printf("\n")
			return false, scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "quit", "q":
			if err := client.Delete("/api/v1/game"); err != nil {
				return false, err
			}
			out.printf("Game abandoned\n")
			return false, nil
		}

		result, err := submitGuess(input)
		if err != nil {
			if ErrorCode(err) == "INVALID_GUESS" {
				out.printf("Please enter a valid number\n")
				continue
			}
			return false, err
		}

		out.printf("%s\n", outcomeMessage(result))
		if result.Win != nil {
			out.printf("%s\n", winMessage(*result.Win))
			return true, nil
		}
		if result.Outcome != "out_of_range" {
			out.printf("Attempts: %d\n", result.Attempts)
		}
	}
}
