package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/samgen/declgen"
	"github.com/reoring/samgen/internal/gen"
	"github.com/reoring/samgen/jsonschema"
)

func newDeclsCommand(a *app) *cobra.Command {
	var schemaPath, pkg, typeName, out, driver string

	cmd := &cobra.Command{
		Use:   "decls",
		Short: "Generate Go declarations from a SAM JSON Schema",
		Long: `Decode a JSON Schema (draft-04, 2019-09 or 2020-12) and emit one Go
declaration per anyOf property. Schemas ending in .yaml or .yml are read as YAML.

Examples:
  samgen decls --schema samtranslator/schema.json --out sam/template.go
  samgen decls --schema schema.yaml --package deploy --type Descriptor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if schemaPath == "" {
				return errors.New("--schema is required")
			}
			if pkg == "" {
				pkg = a.cfg.Generate.Package
			}
			if typeName == "" {
				typeName = a.cfg.Generate.Type
			}
			if driver != "" {
				a.cfg.Schema.Driver = driver
			}

			opts, err := a.cfg.DecodeOptions()
			if err != nil {
				return err
			}
			opts = append(opts, jsonschema.WithLogger(a.log))

			data, err := os.ReadFile(schemaPath)
			if err != nil {
				return errors.Wrap(err, "read schema")
			}
			var doc *jsonschema.Document
			switch strings.ToLower(filepath.Ext(schemaPath)) {
			case ".yaml", ".yml":
				doc, err = jsonschema.DecodeYAML(data, opts...)
			default:
				doc, err = jsonschema.Decode(data, opts...)
			}
			if err != nil {
				return errors.Wrapf(err, "decode %s", schemaPath)
			}

			dirs := declgen.New(declgen.WithLogger(a.log)).Generate(doc)
			src, err := gen.Render(pkg, typeName, dirs)
			if err != nil {
				return errors.Wrap(err, "render declarations")
			}
			if err := writeOutput(cmd, out, src); err != nil {
				return err
			}

			a.log.Info("declarations generated",
				zap.String("dialect", doc.Dialect.String()),
				zap.Int("directives", len(dirs)))
			if out != "" {
				color.New(color.FgGreen, color.Bold).Fprintf(cmd.ErrOrStderr(), "✓ wrote %d declarations to %s\n", len(dirs), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "JSON Schema file")
	cmd.Flags().StringVar(&pkg, "package", "", "package of the generated file (default generate.package)")
	cmd.Flags().StringVar(&typeName, "type", "", "name of the generated struct (default generate.type)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&driver, "driver", "", "JSON tokenizer: go-json or encoding/json")
	return cmd
}

// writeOutput writes to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, b []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}
	return errors.Wrap(os.WriteFile(path, b, 0o644), "write output")
}
