package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server and storage health",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			var result HealthResult
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}
			result.Latency = time.Since(start).Round(time.Millisecond).String()

			output(cmd).Print(result)
			return nil
		},
	}
}
