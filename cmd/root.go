package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quadrantlabs/assessment-tracking-service/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "assessment-tracker",
	Short: "Personality assessment tracking and analysis",
	Long: "Assessment tracker collects personality assessment submissions with " +
		"per-question response timing and cursor telemetry, serves corpus " +
		"analytics over HTTP, and renders the same analysis as console " +
		"reports and spreadsheet exports.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Dotenv file to load before reading config (already-set variables win)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig applies --env-file before reading the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("env-file"); path != "" {
		if err := config.LoadEnvFile(path); err != nil {
			return nil, err
		}
	}
	return config.LoadConfig()
}
