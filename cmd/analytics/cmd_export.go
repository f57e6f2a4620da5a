package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	analyticsdomain "jnmoveis/internal/analytics/domain"
	exportapp "jnmoveis/internal/export/application"
	exportdomain "jnmoveis/internal/export/domain"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		params analyticsdomain.Params
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <visão|facts>",
		Short: "Exporta uma visão (csv ou json) ou a tabela consolidada (csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			var export exportapp.Export
			if args[0] == "facts" {
				export, err = app.Exports.ExportFacts(cmd.Context())
			} else {
				export, err = exportView(cmd, app.Exports, args[0], format, params)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = export.Job.FileName()
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(export.Data)
				return err
			}
			if err := os.WriteFile(output, export.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✅ %d linhas exportadas em %s\n", export.Rows, output)
			return nil
		},
	}
	addViewFlags(cmd, &params)
	cmd.Flags().StringVar(&format, "format", "csv", "formato: csv ou json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de saída (- para stdout)")
	return cmd
}

func exportView(cmd *cobra.Command, exports *exportapp.ExportService, slug, format string, params analyticsdomain.Params) (exportapp.Export, error) {
	kind, err := analyticsdomain.ParseViewKind(slug)
	if err != nil {
		return exportapp.Export{}, err
	}
	q, err := analyticsdomain.BuildQuery(kind, params)
	if err != nil {
		return exportapp.Export{}, err
	}
	f, err := exportdomain.ParseFormat(format)
	if err != nil {
		return exportapp.Export{}, err
	}
	return exports.ExportView(cmd.Context(), q, f)
}
