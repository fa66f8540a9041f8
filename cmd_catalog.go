package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"menu-ordering/app"
	"menu-ordering/catalog"
)

var catalogFlags struct {
	category string
	search   string
	json     bool
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show or reset the cached menu",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the menu, optionally filtered",
	Args:  cobra.NoArgs,
	RunE:  runCatalogShow,
}

var catalogResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the cached menu so the next load refetches the asset",
	Args:  cobra.NoArgs,
	RunE:  runCatalogReset,
}

func init() {
	f := catalogShowCmd.Flags()
	f.StringVar(&catalogFlags.category, "category", "", "only this category")
	f.StringVar(&catalogFlags.search, "search", "", "case-insensitive name filter")
	f.BoolVar(&catalogFlags.json, "json", false, "print JSON")

	catalogCmd.AddCommand(catalogShowCmd, catalogResetCmd)
}

func runCatalogShow(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := cmd.Context()
	st := env.newStore()
	s := app.Bootstrap(ctx, st)
	if s.Catalog.Err != nil {
		return fmt.Errorf("load menu: %w", s.Catalog.Err)
	}
	if catalogFlags.category != "" {
		s = st.Dispatch(ctx, catalog.SetCategory{Category: catalogFlags.category})
	}
	if catalogFlags.search != "" {
		s = st.Dispatch(ctx, catalog.SetSearchTerm{SearchTerm: catalogFlags.search})
	}

	products := catalog.SelectFilteredProducts(s.Catalog)
	out := cmd.OutOrStdout()
	if catalogFlags.json {
		return printJSON(out, products)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock)
	}
	return tw.Flush()
}

func runCatalogReset(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.catalog.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset menu: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Menu cache cleared")
	return nil
}
