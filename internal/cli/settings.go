package cli

import (
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Guess range settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the range used for new games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Settings
			if err := client.Get("/api/v1/settings", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})
	cmd.AddCommand(newSettingsSetCmd())

	return cmd
}

func newSettingsSetCmd() *cobra.Command {
	var minRange, maxRange int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the range used for new games",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := Settings{MinRange: minRange, MaxRange: maxRange}
			var result Settings
			if err := client.Put("/api/v1/settings", req, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&minRange, "min", 1, "Lowest number")
	cmd.Flags().IntVar(&maxRange, "max", 100, "Highest number")

	return cmd
}
