package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	analyticsapp "jnmoveis/internal/analytics/application"
	"jnmoveis/internal/bootstrap"
	"jnmoveis/internal/config"
	"jnmoveis/internal/logging"
)

// cli état partagé par les sous-commandes
type cli struct {
	configPath string
	driver     string
	plain      bool

	app *bootstrap.App
}

func (c *cli) renderer() analyticsapp.TextRenderer {
	if c.plain {
		return analyticsapp.PlainRenderer()
	}
	return analyticsapp.TerminalRenderer()
}

// open charge la configuration et câble les services, une seule fois
func (c *cli) open(ctx context.Context) (*bootstrap.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.driver != "" {
		cfg.Store.Driver = c.driver
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	logger := logging.New(cfg.Log.Level, logging.Format(cfg.Log.Format), os.Stderr)
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.app = app
	return app, nil
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close(context.Background())
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "analytics",
		Short: "Análises de vendas da JN Móveis no terminal",
		Long: `analytics consulta o banco da JN Móveis e imprime os relatórios
de clientes, produtos e vendas, os gráficos e as respostas do assistente.`,
		SilenceUsage: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			c.close()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "arquivo YAML de configuração (CONFIG_FILE por padrão)")
	root.PersistentFlags().StringVar(&c.driver, "driver", "", "driver do banco: mongo, postgres, sqlite ou memory")
	root.PersistentFlags().BoolVar(&c.plain, "plain", false, "saída sem cores")

	root.AddCommand(
		newViewsCmd(c),
		newViewCmd(c),
		newReportCmd(c),
		newChartsCmd(c),
		newExportCmd(c),
		newAskCmd(c),
	)
	return root
}

func main() {
	c := &cli{}
	if err := newRootCmd(c).Execute(); err != nil {
		c.close()
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
