package services

import "github.com/epicurean/epicurean/app/models"

// FallbackCatalog returns the bundled menu used when the remote catalog is
// empty or unreachable. The seeder loads the same list into Mongo, so demo
// mode and a freshly seeded database look identical.
func FallbackCatalog() []models.MenuItem {
	return []models.MenuItem{
		{
			ID:           "1",
			Name:         "Margherita Pizza",
			Description:  "Classic pizza with fresh tomatoes, mozzarella, and basil",
			Price:        14.99,
			Category:     "mains",
			Image:        "https://images.unsplash.com/photo-1604068549290-dea0e4a305ca?w=400&auto=format&fit=crop&q=80",
			IsVegetarian: true,
			IsAvailable:  true,
		},
		{
			ID:          "2",
			Name:        "Caesar Salad",
			Description: "Fresh romaine lettuce with Caesar dressing, croutons, and parmesan",
			Price:       9.99,
			Category:    "starters",
			Image:       "https://images.unsplash.com/photo-1546793665-c74683f339c1?w=400&auto=format&fit=crop&q=80",
			IsAvailable: true,
		},
		{
			ID:          "3",
			Name:        "Grilled Salmon",
			Description: "Fresh salmon fillet with lemon butter sauce and seasonal vegetables",
			Price:       22.99,
			Category:    "mains",
			Image:       "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=400&auto=format&fit=crop&q=80",
			IsAvailable: true,
		},
		{
			ID:           "4",
			Name:         "Chocolate Lava Cake",
			Description:  "Warm chocolate cake with molten center, served with vanilla ice cream",
			Price:        7.99,
			Category:     "desserts",
			Image:        "https://images.unsplash.com/photo-1624353365286-3f8d62daad51?w=400&auto=format&fit=crop&q=80",
			IsVegetarian: true,
			IsAvailable:  true,
		},
		{
			ID:           "5",
			Name:         "Iced Coffee",
			Description:  "Chilled coffee with milk and vanilla syrup",
			Price:        4.99,
			Category:     "drinks",
			Image:        "https://images.unsplash.com/photo-1437418747212-8d9709afab22?w=400&auto=format&fit=crop&q=80",
			IsVegetarian: true,
			IsAvailable:  true,
		},
		{
			ID:           "6",
			Name:         "Garlic Bread",
			Description:  "Toasted bread with garlic butter and herbs",
			Price:        5.99,
			Category:     "starters",
			Image:        "https://images.unsplash.com/photo-1573140247632-f8fd74997d5c?w=400&auto=format&fit=crop&q=80",
			IsVegetarian: true,
			IsAvailable:  true,
		},
		{
			ID:          "7",
			Name:        "Beef Burger",
			Description: "Juicy beef patty with lettuce, tomato, and special sauce",
			Price:       16.99,
			Category:    "mains",
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400&auto=format&fit=crop&q=80",
			IsAvailable: true,
		},
		{
			ID:           "8",
			Name:         "Tiramisu",
			Description:  "Classic Italian dessert with coffee-soaked ladyfingers",
			Price:        8.99,
			Category:     "desserts",
			Image:        "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?w=400&auto=format&fit=crop&q=80",
			IsVegetarian: true,
			IsAvailable:  true,
		},
	}
}
