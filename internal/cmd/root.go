// Package cmd implements the inkwell command line.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/internal/config"
	"github.com/iw2rmb/inkwell/internal/log"
)

type options struct {
	configPath string
	cfg        config.Config
}

func Root() *cobra.Command {
	opts := &options{cfg: config.Default()}

	cmd := cobra.Command{
		Use:           "inkwell",
		Short:         "Edit, format and check structured rich-text markup",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath(), "Path to a YAML or TOML config file.")

	cmd.AddCommand(editCmd(opts))
	cmd.AddCommand(fmtCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(importCmd())
	cmd.AddCommand(versionCmd())

	return &cmd
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "inkwell", "config.yaml")
}

func (o *options) load() error {
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}
	if o.cfg.LogFile != "" {
		if err := log.Set(o.cfg.Level(), o.cfg.LogFile); err != nil {
			return err
		}
	}
	log.Get().Debug("config loaded", zap.String("path", o.configPath))
	return nil
}
