package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrantlabs/assessment-tracking-service/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze the stored corpus and print a console report",
	RunE: func(cmd *cobra.Command, args []string) error {
		recount, _ := cmd.Flags().GetBool("recount")
		return runReport(cmd, recount)
	},
}

func init() {
	reportCmd.Flags().Bool("recount", false, "Recount cursor movements from raw samples instead of trusting stored totals")
}

func runReport(cmd *cobra.Command, recount bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// One-shot runs read the corpus directly and publish nothing; a cached
	// report would also ignore --recount.
	cfg.CacheEnabled = false
	cfg.Events.Enabled = false
	if recount {
		cfg.RecountMovements = true
	}

	app, err := newApplication(cfg, cliLogger())
	if err != nil {
		return err
	}
	defer app.Close()

	overview, err := app.reports.Overview(cmd.Context())
	if err != nil {
		return fmt.Errorf("analyze corpus: %w", err)
	}

	report.WriteText(os.Stdout, overview)
	return nil
}
