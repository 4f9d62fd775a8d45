package main

import (
	"github.com/spf13/cobra"

	"musyoka.dev/internal/config"
	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/oops"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Serve or export the portfolio site",
	Long: `portfolio renders the portfolio site from its content file. It serves
the pages and their HTMX fragments over HTTP, or writes them to a directory
for static hosting.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yaml", "config file path")
}

// loadConfig reads the config file and sets up the global logger from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, oops.New(err, "failed to load config")
	}
	if err := logging.Init(cfg.LogLevel, cfg.IsDev()); err != nil {
		return nil, err
	}
	return cfg, nil
}
