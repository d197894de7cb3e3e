package main

import (
	"fmt"

	"equipment-loan/internal/adapter/repository/sqlite"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the submissions table in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.connector()
			if err != nil {
				return err
			}
			if err := sqlite.Migrate(cmd.Context(), conn, a.log); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date: %s\n", conn.Path())
			return nil
		},
	}
}
