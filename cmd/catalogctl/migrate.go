package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mytheresa/interior-catalog/app/database"
	"github.com/mytheresa/interior-catalog/app/migrate"
	"github.com/mytheresa/interior-catalog/models"
)

type backfill func(r *migrate.Runner, ctx context.Context, opts migrate.Options) (*migrate.Report, error)

func (c *cli) migrateCmd() *cobra.Command {
	var (
		tenant string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Backfill legacy hex and name values with reference IDs",
	}
	cmd.PersistentFlags().StringVar(&tenant, "tenant", "", "tenant slug (default: every tenant)")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would change without saving")

	job := func(use, short string, run backfill) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withDB(func(db *gorm.DB) error {
					opts := migrate.Options{DryRun: dryRun}
					if tenant != "" {
						t, err := models.NewTenantsRepository(db).GetBySlug(tenant)
						if err != nil {
							return fmt.Errorf("tenant %q: %w", tenant, err)
						}
						opts.TenantID = &t.ID
					}

					runner := migrate.NewRunner(
						models.NewRoomProfilesRepository(db),
						models.NewColorsRepository(db),
						models.NewMaterialsRepository(db),
						models.NewStylesRepository(db),
					)
					report, err := run(runner, cmd.Context(), opts)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), report.String())
					for _, u := range report.Unmatched {
						fmt.Fprintf(cmd.OutOrStdout(), "  unmatched record=%d value=%q reason=%s\n", u.RecordID, u.Value, u.Reason)
					}
					return nil
				})
			},
		}
	}

	cmd.AddCommand(
		job("colors", "Resolve room palette hex colors to color IDs", (*migrate.Runner).ColorBackfill),
		job("materials", "Resolve room palette material names to material IDs", (*migrate.Runner).MaterialBackfill),
		job("style-colors", "Resolve legacy style hex colors to color IDs", (*migrate.Runner).StyleColorBackfill),
	)
	return cmd
}

// withDB opens the configured database for the duration of fn.
func (c *cli) withDB(fn func(db *gorm.DB) error) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	db, closeDB, err := database.New(c.cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer closeDB()
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return fn(db)
}
