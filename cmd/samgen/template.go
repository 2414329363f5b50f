package main

import (
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/samgen/descriptor"
)

func newTemplateCommand(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Render the configured SAM template",
		Long: `Build the deployment descriptor described by the template section of the
configuration and render it as YAML (default) or JSON.

Examples:
  samgen template --config samgen.yaml --out template.yaml
  samgen template --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := a.cfg.Template.Build()
			if err != nil {
				return err
			}
			var b []byte
			switch format {
			case "yaml", "yml":
				b = descriptor.MarshalYAML(tpl)
			case "json":
				b = descriptor.MarshalJSON(tpl)
			default:
				return errors.Errorf("unknown format %q (want yaml or json)", format)
			}
			if err := writeOutput(cmd, out, b); err != nil {
				return err
			}
			a.log.Info("template rendered", zap.Int("resources", tpl.Resources.Len()), zap.String("format", format))
			if out != "" {
				color.New(color.FgGreen, color.Bold).Fprintf(cmd.ErrOrStderr(), "✓ wrote %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
