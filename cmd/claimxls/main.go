// claimxls converts a certsuite claim.json into a styled Excel report,
// optionally downloading the claim from the DCI control server first.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ansvu/certsuite-claim-spreadsheet/internal/claim"
	"github.com/ansvu/certsuite-claim-spreadsheet/internal/dci"
	"github.com/ansvu/certsuite-claim-spreadsheet/internal/extract"
	"github.com/ansvu/certsuite-claim-spreadsheet/internal/report"
)

// offlineJobID is used for the Job-Id summary cell when no job is given, so
// the cell still renders a complete URL.
const offlineJobID = "12345"

var (
	inputFile  string
	outputFile string
	jobID      string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "claimxls",
	Short: "Parse a certsuite claim.json and save it as an Excel workbook",
	Long: `claimxls turns the claim.json produced by a certification test-suite run
into a styled spreadsheet: results sorted failed/error/skipped/passed, a
summary block with per-state counts, component versions, and color-coded
state cells.

With --job-id the claim is first downloaded from the DCI control server via
dcictl (credentials from DCI_* environment variables or dcirc.sh); without it
the given input file is parsed offline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	job := jobID
	if job != "" {
		cfg, err := dci.ResolveConfig(dci.DefaultRCPath)
		if err != nil {
			return err
		}
		logger.Info("downloading claim from DCI control server",
			zap.String("job", job), zap.String("server", cfg.CSURL))
		fetcher := &dci.CommandFetcher{Config: cfg, Log: logger}
		if err := fetcher.Fetch(cmd.Context(), job, inputFile); err != nil {
			return err
		}
	} else {
		job = offlineJobID
		logger.Info("no job id given, parsing claim offline",
			zap.String("input", inputFile))
	}

	rec, err := claim.Load(inputFile)
	if err != nil {
		return err
	}
	rows, counts, err := extract.Extract(rec, logger)
	if err != nil {
		return err
	}
	if err := report.Write(outputFile, rows, counts, rec.Claim.Versions, job); err != nil {
		return err
	}

	logger.Info("report written",
		zap.String("path", outputFile),
		zap.Int("total", counts.Total),
		zap.Int("failed", counts.Failed),
		zap.Int("error", counts.Error),
		zap.Int("skipped", counts.Skipped),
		zap.Int("passed", counts.Passed))
	fmt.Printf("Successfully parsed claim and generated Excel report: %s\n", outputFile)
	return nil
}

func main() {
	rootCmd.Flags().StringVarP(&inputFile, "input-file", "i", "", "Path to claim.json (download target when --job-id is set)")
	rootCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "Path to output Excel file, e.g. result.xlsx")
	rootCmd.Flags().StringVarP(&jobID, "job-id", "j", "", "DCI job id to download the claim from (omit for offline parsing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = rootCmd.MarkFlagRequired("input-file")
	_ = rootCmd.MarkFlagRequired("output-file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
