package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quadrantlabs/assessment-tracking-service/internal/services"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export corpus reports to an Excel workbook or CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		return runExport(cmd, format, out)
	},
}

func init() {
	exportCmd.Flags().String("format", "xlsx", "Export format: xlsx or csv")
	exportCmd.Flags().String("out", "", "Output path (default assessment_reports_<timestamp>.<format>)")
}

func runExport(cmd *cobra.Command, format, out string) error {
	format = strings.ToLower(format)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// One-shot runs read the corpus directly and publish nothing
	cfg.CacheEnabled = false
	cfg.Events.Enabled = false

	app, err := newApplication(cfg, cliLogger())
	if err != nil {
		return err
	}
	defer app.Close()

	var data []byte
	switch format {
	case "xlsx":
		data, err = app.exports.ExportWorkbook(cmd.Context())
	case "csv":
		data, err = app.exports.ExportSummariesCSV(cmd.Context())
	default:
		return fmt.Errorf("%w: %s", services.ErrUnsupportedExportFormat, format)
	}
	if err != nil {
		return fmt.Errorf("build export: %w", err)
	}

	if out == "" {
		out = fmt.Sprintf("assessment_reports_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
	return nil
}
