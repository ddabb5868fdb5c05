package store

import (
	"database/sql"

	"github.com/oaksoe19620-creator/Webapp/internal/models"
)

func (s *Store) CreateProduct(p *models.Product) error {
	query := `
		INSERT INTO products (name, price, category, description, image_url, active, created_at)
		VALUES (?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, p.Name, p.Price, p.Category, p.Description, p.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	p.Active = true
	return nil
}

// ListActiveProducts returns customer-facing products. Soft-deleted rows are
// excluded; category is an exact match and skipped when empty.
func (s *Store) ListActiveProducts(category string) ([]models.Product, error) {
	query := `SELECT id, name, price, category, COALESCE(description, '') as description, COALESCE(image_url, '') as image_url, active, created_at
	          FROM products
	          WHERE active = 1`
	args := []any{}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Description, &p.ImageURL, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListCategories spans ALL rows, active or not, so the filter UI keeps
// showing categories whose last product was soft-deleted.
func (s *Store) ListCategories() ([]string, error) {
	rows, err := s.DB.Query(`SELECT DISTINCT category FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT id, name, price, category, COALESCE(description, '') as description, COALESCE(image_url, '') as image_url, active, created_at
	          FROM products WHERE id = ?`
	var p models.Product
	err := s.DB.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Description, &p.ImageURL, &p.Active, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProduct(p *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, price = ?, category = ?, description = ?, image_url = ?, active = ?
		WHERE id = ?
	`
	_, err := s.DB.Exec(query, p.Name, p.Price, p.Category, p.Description, p.ImageURL, p.Active, p.ID)
	return err
}

func (s *Store) UpdateProductImage(id int, imageURL string) (bool, error) {
	res, err := s.DB.Exec(`UPDATE products SET image_url = ? WHERE id = ?`, imageURL, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeactivateProduct is a soft delete: the row stays, historical order items
// keep a valid reference. Returns false when the id does not exist.
func (s *Store) DeactivateProduct(id int) (bool, error) {
	res, err := s.DB.Exec(`UPDATE products SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
