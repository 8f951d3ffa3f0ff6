package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pbaille/notecat/internal/config"
	"github.com/pbaille/notecat/internal/settings"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "notecat",
		Short:        "Notes auto-categorized by AI providers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ~/.notecat/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "settings database path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(categorizeCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(keysCmd(a))
	rootCmd.AddCommand(categoriesCmd(a))
	rootCmd.AddCommand(providerCmd(a))

	return rootCmd
}

// load reads configuration, letting explicitly set flags win
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}

	for _, name := range []string{"db", "verbose", "addr", "provider", "timeout"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(name, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) openSettings() (*settings.Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(a.cfg.DB)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return settings.New(a.cfg.DB)
}
