// Command train fits the impact score model on the district dataset and
// writes the model artifact read by the sipp predictor.
//
// Usage:
//
//	train [--config sipp.toml]
//
// Paths default to data/synthetic_dataset_with_districts.csv and
// models/impact_model.json relative to the working directory.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ezoic/sipp/config"
	"github.com/ezoic/sipp/impact"
	"github.com/ezoic/sipp/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "train",
		Short:         "Train the district impact score model",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file (default ./"+config.DefaultFile+" when present)")
	return cmd
}

func run(out io.Writer, configPath string) error {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)

	cfg, err := config.Load(configPath)
	if err != nil {
		_, _ = failure.Fprintf(out, "❌ Error: %v\n", err)
		return err
	}
	log.SetupLogger(cfg.LogLevel)

	report, err := impact.Train(cfg.DataPath, cfg.ModelPath)
	if err != nil {
		log.LogError(err, "Training failed", log.PathKey, cfg.DataPath)
		_, _ = failure.Fprintf(out, "❌ Error: %v\n", err)
		return err
	}

	_, _ = success.Fprintf(out, "✅ Model trained and saved to: %s\n", report.ModelPath)
	fmt.Fprintf(out, "   samples: %d  R²: %.4f  RMSE: %.4f\n", report.Samples, report.R2, report.RMSE)
	return nil
}
