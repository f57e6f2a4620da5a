package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	analyticsdomain "jnmoveis/internal/analytics/domain"
)

func newViewsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "Lista as visões disponíveis",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, k := range analyticsdomain.AllViews() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", k.String(), k.Title())
			}
		},
	}
}

// addViewFlags paramètres communs des vues
func addViewFlags(cmd *cobra.Command, p *analyticsdomain.Params) {
	f := cmd.Flags()
	f.IntVar(&p.TopN, "top-n", 0, "quantidade de linhas (0 = padrão da visão)")
	f.IntVar(&p.Year, "year", 0, "ano")
	f.IntVar(&p.Month, "month", 0, "mês (1-12)")
	f.IntVar(&p.BaseYear, "base-year", 0, "ano base da comparação")
	f.IntVar(&p.CompareYear, "compare-year", 0, "ano comparado")
	f.StringVar(&p.Category, "category", "", "categoria da campanha")
	f.StringVar(&p.Horizon, "horizon", "", "horizonte da campanha: trimestre, semestre ou ano")
}

func newViewCmd(c *cli) *cobra.Command {
	var (
		params analyticsdomain.Params
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "view <visão>",
		Short:   "Calcula uma visão agregada",
		Example: "  analytics view top_products --top-n 5\n  analytics view month_comparison --month 3 --year 2023",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := analyticsdomain.ParseViewKind(args[0])
			if err != nil {
				return err
			}
			q, err := analyticsdomain.BuildQuery(kind, params)
			if err != nil {
				return err
			}
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			report, err := app.Dashboard.Run(cmd.Context(), q)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprint(cmd.OutOrStdout(), c.renderer().Render(report))
			return nil
		},
	}
	addViewFlags(cmd, &params)
	cmd.Flags().BoolVar(&asJSON, "json", false, "saída JSON")
	return cmd
}

func newReportCmd(c *cli) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Imprime todas as visões que não exigem parâmetros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			renderer := c.renderer()
			for _, kind := range analyticsdomain.AllViews() {
				q, err := analyticsdomain.BuildQuery(kind, analyticsdomain.Params{Year: year})
				if err != nil {
					// comparação de meses exige --month
					continue
				}
				report, err := app.Dashboard.Run(cmd.Context(), q)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(report))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "filtra as visões por ano")
	return cmd
}
