package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gormrepo "github.com/narwhalmedia/splice/internal/infrastructure/persistence/gorm"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var status, dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending catalog database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := ctx.ensure()
			if err != nil {
				return err
			}
			db, cleanup, err := gormrepo.OpenDB(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			migrator := gormrepo.NewMigrator(db, log)
			out := cmd.OutOrStdout()
			switch {
			case status:
				return showMigrationStatus(out, migrator)
			case dryRun:
				return showPendingMigrations(out, migrator)
			default:
				if err := migrator.Migrate(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Migrations completed successfully")
				return nil
			}
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "Show applied and pending migrations")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show pending migrations without applying them")
	return cmd
}

func showMigrationStatus(out io.Writer, migrator *gormrepo.Migrator) error {
	applied, err := migrator.Applied()
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(out, "No migrations have been applied yet")
	} else {
		rows := make([][]string, 0, len(applied))
		for _, m := range applied {
			rows = append(rows, []string{m.Version, m.Name, m.AppliedAt.Format("2006-01-02 15:04:05")})
		}
		fmt.Fprintln(out, renderTable(out, []string{"Version", "Name", "Applied"}, rows, nil))
	}
	return showPendingMigrations(out, migrator)
}

func showPendingMigrations(out io.Writer, migrator *gormrepo.Migrator) error {
	pending, err := migrator.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(out, "No pending migrations")
		return nil
	}
	rows := make([][]string, 0, len(pending))
	for _, m := range pending {
		rows = append(rows, []string{m.Version, m.Name})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Version", "Pending"}, rows, nil))
	return nil
}
