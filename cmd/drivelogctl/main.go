// Command drivelogctl is the admin CLI for the drive logbook: it runs
// migrations, creates users and issues bearer tokens for them.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pkordes/drivelog/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "drivelogctl",
		Short:        "Admin CLI for the drive logbook",
		Long:         `drivelogctl manages the drive logbook database and accounts. It reads the same environment (and .env file) as the API server.`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newUserCmd(), newTokenCmd())
	return root
}

// openPool loads configuration and connects to the database.
func openPool(ctx context.Context) (*pgxpool.Pool, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, config.Config{}, fmt.Errorf("connecting to database: %w", err)
	}
	return pool, cfg, nil
}
