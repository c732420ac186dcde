package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anyulbade/card-fee-simulator/internal/config"
	"github.com/anyulbade/card-fee-simulator/internal/dto"
	"github.com/anyulbade/card-fee-simulator/internal/model"
	"github.com/anyulbade/card-fee-simulator/internal/repository"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

// App is the feesim command-line interface.
type App struct {
	rootCmd *cobra.Command
	out     io.Writer

	catalogFile string
	currency    string
	concurrency int
}

func NewApp(version string) *App {
	app := &App{out: os.Stdout}

	rootCmd := &cobra.Command{
		Use:           "feesim",
		Short:         "Compare card installment fees across payment processors",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&app.catalogFile, "catalog", "C", "config/catalog.yaml", "Path to a YAML, TOML or JSON catalog file")
	rootCmd.PersistentFlags().StringVar(&app.currency, "currency", "BRL", "Currency used to display amounts")
	rootCmd.PersistentFlags().IntVar(&app.concurrency, "concurrency", 4, "Rate sources read in parallel")

	rootCmd.AddCommand(app.quoteCmd(), app.compareCmd(), app.brandsCmd())

	app.rootCmd = rootCmd
	return app
}

func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

// SetOutput redirects rendered tables, mainly for tests.
func (app *App) SetOutput(w io.Writer) {
	app.out = w
	app.rootCmd.SetOut(w)
	app.rootCmd.SetErr(w)
}

func (app *App) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

func (app *App) loadCatalog(ctx context.Context) (*model.RateCatalog, error) {
	cf, err := config.LoadCatalogFile(app.catalogFile)
	if err != nil {
		return nil, err
	}
	catalog, err := service.LoadCatalog(ctx, repository.NewRateSourceRepository(cf.Dir), cf.CalcMode(), cf.Sources(), app.concurrency)
	if err != nil {
		var loadErrs service.LoadErrors
		if errors.As(err, &loadErrs) {
			renderLoadErrors(app.out, loadErrs)
		}
		return nil, err
	}
	return catalog, nil
}

func (app *App) quoteCmd() *cobra.Command {
	var amount, brand, installments, provider string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote one sale on every provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			q := dto.SimulationQuery{Amount: amount, Brand: brand, Installments: installments, Provider: provider}
			req, err := q.ToRequest()
			if err != nil {
				return err
			}

			svc := service.NewSimulationService(staticCatalog{catalog}, 0)
			if req.Installments.IsAll() {
				amt, _ := req.Amount.Get()
				b, _ := req.Brand.Get()
				cmp, err := svc.Compare(cmd.Context(), amt, b)
				if err != nil {
					return err
				}
				renderComparison(app.out, cmp, app.currency)
				return nil
			}

			sim, err := svc.Simulate(cmd.Context(), req)
			if err != nil {
				return err
			}
			renderSimulation(app.out, sim, catalog.Mode(), app.currency)
			return nil
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Sale amount, e.g. 5000,00")
	cmd.Flags().StringVarP(&brand, "brand", "b", "", "Card brand")
	cmd.Flags().StringVarP(&installments, "installments", "i", "", "Installment count or \"all\" (default: 1 or the smallest offered)")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Only this provider")
	return cmd
}

func (app *App) compareCmd() *cobra.Command {
	var amount, brand string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Show the per-installment amount of every installment count on every provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if brand == "" {
				return fmt.Errorf("--brand is required")
			}
			catalog, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			amt, _ := dto.ParseAmount(amount).Get()
			cmp := service.BuildComparison(catalog, amt, brand)
			renderComparison(app.out, &cmp, app.currency)
			return nil
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Sale amount, e.g. 5000,00")
	cmd.Flags().StringVarP(&brand, "brand", "b", "", "Card brand")
	return cmd
}

func (app *App) brandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List brands and the installment counts offered",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			renderBrands(app.out, catalog)
			return nil
		},
	}
}

type staticCatalog struct {
	catalog *model.RateCatalog
}

func (s staticCatalog) Catalog(context.Context) (*model.RateCatalog, error) {
	return s.catalog, nil
}
