// Command sipp is the terminal predictor: pick a district, predict its
// impact score and review the resulting tier.
//
// The dataset and the trained model are loaded before the screen opens; a
// missing or invalid file prints the error and exits with status 1. Log
// output goes to the configured log file so it never draws over the UI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ezoic/sipp/chart"
	"github.com/ezoic/sipp/config"
	"github.com/ezoic/sipp/impact"
	"github.com/ezoic/sipp/pkg/log"
	"github.com/ezoic/sipp/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// runUI runs the screen until the user quits.
var runUI = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "sipp",
		Short:         "Social Impact Prediction Platform",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, closeLog, err := setup(cmd.OutOrStdout(), configPath)
			if err != nil {
				return err
			}
			defer closeLog()

			if err := runUI(m); err != nil {
				log.LogError(err, "UI stopped")
				fmt.Fprintln(cmd.OutOrStdout(), "Error:", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file (default ./"+config.DefaultFile+" when present)")
	return cmd
}

// setup loads configuration, logging, data and model and returns the
// initial screen. Startup errors are printed to out.
func setup(out io.Writer, configPath string) (ui.Model, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
		return ui.Model{}, nil, err
	}

	closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
		return ui.Model{}, nil, err
	}
	log.SetupLogger(cfg.LogLevel)

	state, err := impact.Load(cfg.DataPath, cfg.ModelPath)
	if err != nil {
		log.LogError(err, "Startup failed", log.PathKey, cfg.ModelPath)
		fmt.Fprintln(out, "Error:", err)
		closeLog()
		return ui.Model{}, nil, err
	}

	m := ui.New(state, state.Districts(),
		ui.WithChart(chart.NewRenderer(cfg.ChartPath), cfg.ChartPath),
	)
	return m, closeLog, nil
}

// openLog points the global logger at path, or discards output when path
// is empty.
func openLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}
