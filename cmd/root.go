// Package cmd implements the CLI for coursemd using Cobra.
// Flags are bound through viper, so each one can also come from the
// environment (COURSEMD_DIR, COURSEMD_PDF, COURSEMD_DEBUG) or from a
// .coursemd.yaml file.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/coursemd/internal/logging"
)

const envPrefix = "COURSEMD"

var rootCmd = &cobra.Command{
	Use:   "coursemd",
	Short: "coursemd — turn a folder of course pages into Markdown summaries",
	Long: `coursemd converts every HTML page in a directory to Markdown, sorts the
results into numbered unit folders, and builds a week_<N>.md summary per
folder plus a single combined.md for the whole course.

Run it with no arguments inside the course directory:
  coursemd
  coursemd --dir ./course --pdf`,
	Args:          cobra.NoArgs,
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .coursemd.yaml in the target, current or home directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.Flags().String("dir", ".", "directory containing the HTML pages")
	rootCmd.Flags().Bool("pdf", false, "also render combined.pdf")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("dir", rootCmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(viper.GetString("dir"))
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".coursemd")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	// A missing config file is fine; every setting has a default.
	if err := viper.ReadInConfig(); err == nil {
		logging.Default().Debug("using config file", logging.FieldFile, viper.ConfigFileUsed())
	}
}

// Execute runs the root command and exits non-zero on setup errors.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Default().Error("coursemd failed", logging.FieldError, err)
		os.Exit(1)
	}
}
