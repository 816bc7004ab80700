package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample menu items and reviews into empty collections",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := database.Connect(ctx)
		if err != nil {
			return err
		}
		defer database.Disconnect(db) //nolint:errcheck

		menuRepo := repositories.NewMenuRepository(db)
		reviewRepo := repositories.NewReviewRepository(db)

		if n, err := menuRepo.EstimatedCount(ctx); err != nil {
			return err
		} else if n == 0 {
			for _, item := range sampleMenu {
				if _, err := menuRepo.Insert(ctx, item); err != nil {
					return err
				}
			}
			fmt.Printf("seeded %d menu items\n", len(sampleMenu))
		}

		if n, err := reviewRepo.EstimatedCount(ctx); err != nil {
			return err
		} else if n == 0 {
			for _, review := range sampleReviews {
				if _, err := reviewRepo.Insert(ctx, review); err != nil {
					return err
				}
			}
			fmt.Printf("seeded %d reviews\n", len(sampleReviews))
		}

		return nil
	},
}

var sampleMenu = []models.MenuItem{
	{Name: "Roast Duck Breast", Recipe: "Roasted duck breast, black truffle, and a red wine jus.", Category: "offered", Price: 14.5},
	{Name: "Tuna Niçoise", Recipe: "Seared tuna, kalamata olives, green beans, and soft egg.", Category: "salad", Price: 11.5},
	{Name: "Escalope de Veau", Recipe: "Veal escalope with lemon butter and capers.", Category: "offered", Price: 12.5},
	{Name: "Chicken and Walnut Salad", Recipe: "Poached chicken, toasted walnuts, and grapes.", Category: "salad", Price: 10.0},
	{Name: "French Onion Soup", Recipe: "Caramelised onions, beef stock, and a gruyère crouton.", Category: "soup", Price: 8.5},
	{Name: "Wild Mushroom Soup", Recipe: "Cep and chestnut mushrooms finished with cream.", Category: "soup", Price: 9.0},
	{Name: "Margherita Pizza", Recipe: "San Marzano tomato, fior di latte, and basil.", Category: "pizza", Price: 12.0},
	{Name: "Prosciutto e Rucola", Recipe: "Parma ham, rocket, and shaved parmesan.", Category: "pizza", Price: 14.0},
	{Name: "Chocolate Fondant", Recipe: "Warm chocolate fondant with vanilla ice cream.", Category: "dessert", Price: 7.5},
	{Name: "Crème Brûlée", Recipe: "Vanilla custard with a caramelised sugar crust.", Category: "dessert", Price: 7.0},
	{Name: "Fresh Lime Soda", Recipe: "Lime, soda, and a touch of cane sugar.", Category: "drinks", Price: 4.5},
	{Name: "Mango Lassi", Recipe: "Alphonso mango blended with yoghurt.", Category: "drinks", Price: 5.0},
}

var sampleReviews = []models.Review{
	{Name: "Amina K.", Details: "The tasting menu was superb, every course landed.", Rating: 5},
	{Name: "Daniel R.", Details: "Quick service and the onion soup is the real thing.", Rating: 4.5},
	{Name: "Priya S.", Details: "Great for groups, the pizzas disappear fast.", Rating: 4},
}
