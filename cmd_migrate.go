package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"menu-ordering/config"
	"menu-ordering/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the key-value table in Postgres",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	out := cmd.OutOrStdout()
	if cfg.Storage.Backend != store.BackendPostgres {
		fmt.Fprintf(out, "storage backend %q needs no migration\n", cfg.Storage.Backend)
		return nil
	}

	pg, err := store.NewPostgresStore(cmd.Context(), cfg.Storage.PostgresDSN)
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := pg.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Fprintln(out, "Database migrations executed successfully ✔")
	return nil
}
