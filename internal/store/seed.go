package store

import (
	"log/slog"

	"github.com/oaksoe19620-creator/Webapp/internal/models"
)

var sampleProducts = []models.Product{
	{Name: "Premium Coffee", Price: 15.99, Category: "Beverages",
		Description: "High-quality arabica coffee beans",
		ImageURL:    "https://images.unsplash.com/photo-1447933601403-0c6688de566e?w=300"},
	{Name: "Wireless Headphones", Price: 89.99, Category: "Electronics",
		Description: "Noise-cancelling wireless headphones",
		ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300"},
	{Name: "Organic Tea", Price: 12.50, Category: "Beverages",
		Description: "Premium organic green tea",
		ImageURL:    "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=300"},
	{Name: "Smart Watch", Price: 199.99, Category: "Electronics",
		Description: "Fitness tracking smart watch",
		ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300"},
}

// SeedProducts inserts the sample catalog when the products table is empty.
// Idempotent: a non-empty table is left untouched.
func (s *Store) SeedProducts() error {
	var count int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Products table already seeded, skipping", "count", count)
		return nil
	}

	for i := range sampleProducts {
		p := sampleProducts[i]
		if err := s.CreateProduct(&p); err != nil {
			return err
		}
	}
	slog.Info("Seeded sample products", "count", len(sampleProducts))
	return nil
}
