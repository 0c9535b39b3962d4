package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameAbandonCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a new game with your current range",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Post("/api/v1/game", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <number>",
		Short: "Guess the hidden number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := submitGuess(args[0])
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Abandon the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/game"); err != nil {
				return err
			}

			output(cmd).PrintMessage("Game abandoned")
			return nil
		},
	}
}

// submitGuess sends raw input as typed; the server decides if it is a number
func submitGuess(raw string) (GuessResult, error) {
	var result GuessResult
	err := client.Post("/api/v1/game/guess", map[string]string{"guess": raw}, &result)
	return result, err
}
