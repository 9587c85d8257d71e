package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mytheresa/interior-catalog/app/seed"
)

func (c *cli) seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert a YAML catalog fixture for its tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			fx, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			return c.withDB(func(db *gorm.DB) error {
				sum, err := seed.Apply(cmd.Context(), db, fx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sum.String())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file")
	return cmd
}
