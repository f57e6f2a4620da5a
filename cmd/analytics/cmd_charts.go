package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	chartsapp "jnmoveis/internal/charts/application"
	chartsdomain "jnmoveis/internal/charts/domain"
)

func newChartsCmd(c *cli) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "charts [gráfico]",
		Short: "Lista os gráficos ou imprime a figura JSON de um deles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 && !all {
				for _, name := range chartsapp.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			var payload any
			if all {
				payload, err = app.Charts.BuildAll(cmd.Context())
			} else {
				var fig chartsdomain.Figure
				fig, err = app.Charts.Build(cmd.Context(), args[0])
				payload = fig
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "constrói todos os gráficos")
	return cmd
}
