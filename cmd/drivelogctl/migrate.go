package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/drivelog/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect schema migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, func(p *goose.Provider) error {
					results, err := p.Up(cmd.Context())
					if err != nil {
						return err
					}
					if len(results) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
					}
					for _, res := range results {
						fmt.Fprintf(cmd.OutOrStdout(), "OK   %s (%s)\n", res.Source.Path, res.Duration)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, func(p *goose.Provider) error {
					res, err := p.Down(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "DOWN %s (%s)\n", res.Source.Path, res.Duration)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether each is applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, func(p *goose.Provider) error {
					statuses, err := p.Status(cmd.Context())
					if err != nil {
						return err
					}
					for _, st := range statuses {
						applied := "pending"
						if st.State == goose.StateApplied {
							applied = "applied " + st.AppliedAt.Format("2006-01-02 15:04:05")
						}
						fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", st.Source.Path, applied)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

// withProvider opens the database, builds a goose provider over the embedded
// migrations and hands it to fn.
func withProvider(cmd *cobra.Command, fn func(*goose.Provider) error) error {
	pool, _, err := openPool(cmd.Context())
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	return fn(provider)
}
