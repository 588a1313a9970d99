package main

import (
	"fmt"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/alexballas/xfileinput/internal/app"
	"github.com/alexballas/xfileinput/internal/config"
	"github.com/alexballas/xfileinput/internal/logging"
)

const appID = "com.alexballas.xfileinput"

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath, level string

	cmd := &cobra.Command{
		Use:           "xfileinput",
		Short:         "Pick or drop files into a list",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath, level)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger.WithField("config", cfgPath).Debug("starting")

			app.New(fyneapp.NewWithID(appID), cfg, logger).ShowAndRun()
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&level, "log-level", "", "override the configured log level")
	return cmd
}

func loadConfig(path, level string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
