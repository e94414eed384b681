package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/repo"
	"github.com/pkordes/drivelog/internal/service"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var (
		u            domain.User
		startAddress string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user and print its id",
		Long: `Create a user account and print its id.

Examples:
  drivelogctl user create --username alice
  drivelogctl user create --username bob --first-name Bob --start-address "Main St 1"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("start-address") {
				u.DefaultStartAddress = &startAddress
			}

			pool, _, err := openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			created, err := service.NewUserService(repo.NewStore(pool)).Create(cmd.Context(), u)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&u.Username, "username", "", "unique login name (required)")
	create.Flags().StringVar(&u.Email, "email", "", "email address")
	create.Flags().StringVar(&u.FirstName, "first-name", "", "first name")
	create.Flags().StringVar(&u.LastName, "last-name", "", "last name")
	create.Flags().StringVar(&startAddress, "start-address", "", "default start address for trips")
	_ = create.MarkFlagRequired("username")

	cmd.AddCommand(create)
	return cmd
}
