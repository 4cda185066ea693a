package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epicurean/epicurean/config"
	"github.com/epicurean/epicurean/database/seeders"
	"github.com/epicurean/epicurean/pkg/mongodb"
)

var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Replace the menu collection with the bundled sample catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		if err := mongodb.Connect(); err != nil {
			return err
		}
		ctx := context.Background()
		defer mongodb.Disconnect(ctx)

		if err := seeders.SeedMenu(ctx); err != nil {
			return err
		}
		fmt.Println("Menu seeded.")
		return nil
	},
}
