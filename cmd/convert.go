// Package cmd — conversion run.
// Drives the pipeline over the target directory:
// pages → unit folders → weekly summaries → combined summary.
package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/coursemd/core/batch"
	"github.com/gaurav-prasanna/coursemd/internal/logging"
)

func runConvert(cmd *cobra.Command, _ []string) error {
	if viper.GetBool("debug") {
		logging.SetLevel("debug")
	}
	logger := logging.Default()
	ctx := logging.WithLogger(cmd.Context(), logger)

	cfg := batch.Config{
		Dir: viper.GetString("dir"),
		PDF: viper.GetBool("pdf"),
	}
	logger.Debug("starting run", logging.FieldDir, cfg.Dir)

	report, err := batch.New(afero.NewOsFs(), cfg).Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("done",
		logging.FieldProcessed, len(report.Processed),
		logging.FieldFailed, len(report.Failed),
		logging.FieldWeeks, len(report.Weekly),
	)
	return nil
}
