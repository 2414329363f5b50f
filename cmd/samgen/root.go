package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/samgen/config"
	"github.com/reoring/samgen/i18n"
	"github.com/reoring/samgen/internal/log"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "samgen",
		Short: "Generate SAM declarations and templates",
		Long: `samgen reads a JSON Schema for SAM templates and generates Go
declarations for its union-typed properties. It also renders deployment
templates from the template section of samgen.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./samgen.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(newDeclsCommand(a))
	root.AddCommand(newTemplateCommand(a))
	root.AddCommand(newVersionCommand())
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := log.NewWriter(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	i18n.SetLanguage(cfg.Lang)
	a.cfg = cfg
	a.log = logger.Named(cmd.Name())
	a.log.Debug("configuration loaded", zap.String("file", a.configPath))
	return nil
}
