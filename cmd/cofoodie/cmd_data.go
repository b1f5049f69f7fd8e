package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cofoodie/internal/models"
	"cofoodie/internal/store"
)

// Starter menus installed by `cofoodie seed` on an empty store.
var starterMenus = []models.MenuCategory{
	{
		Label: "美味便當",
		Config: models.MenuConfig{
			Options: []models.MenuOption{
				{ID: "opt_1", Label: "排骨飯", Price: 100},
				{ID: "opt_2", Label: "雞腿飯", Price: 110},
				{ID: "opt_3", Label: "鱈魚飯", Price: 120},
			},
		},
	},
	{
		Label: "清涼飲料",
		Config: models.MenuConfig{
			Options: []models.MenuOption{
				{ID: "drink_1", Label: "紅茶", Price: 20},
				{ID: "drink_2", Label: "綠茶", Price: 20},
				{ID: "drink_3", Label: "奶茶", Price: 30},
			},
		},
	},
}

// cofoodie seed — install starter menus through the façade.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed starter menus into the configured backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if existing := db.MenuCategories(ctx); len(existing) > 0 {
			fmt.Println("Store already has menus, skipping seed.")
			return nil
		}

		for _, menu := range starterMenus {
			if err := db.AddMenuCategory(ctx, menu.Label, menu.Config); err != nil {
				return fmt.Errorf("seed menu %s: %w", menu.Label, err)
			}
			fmt.Printf("Added menu: %s\n", menu.Label)
		}
		fmt.Println("Seed completed.")
		return nil
	},
}

// cofoodie check — verify the configured backend answers.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check connectivity to the configured backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open()
		if err != nil {
			return err
		}

		mode := "local"
		if db.Remote() {
			mode = "remote"
		}

		if !db.CheckConnection(cmd.Context()) {
			return fmt.Errorf("backend (%s) did not answer", mode)
		}
		fmt.Printf("Backend (%s) is reachable.\n", mode)
		return nil
	},
}
