package store

import "database/sql"

type DashboardStats struct {
	TotalProducts      int                 `json:"total_products"`
	TotalOrders        int                 `json:"total_orders"`
	OrdersByStatus     map[string]int      `json:"orders_by_status"`
	ProductOrderCounts []ProductOrderCount `json:"product_order_counts"`
}

type ProductOrderCount struct {
	ProductID  int    `json:"product_id"`
	Name       string `json:"name"`
	OrderCount int    `json:"order_count"`
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int),
	}

	// 1. Total Products
	err := s.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&stats.TotalProducts)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	// 2. Total Orders
	err = s.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	// 3. Orders by Status
	rows, err := s.DB.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 4. Orders per Product
	productRows, err := s.DB.Query(`
		SELECT p.id, p.name, COUNT(DISTINCT oi.order_id) as order_count
		FROM products p
		LEFT JOIN order_items oi ON p.id = oi.product_id
		GROUP BY p.id
		ORDER BY order_count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer productRows.Close()
	for productRows.Next() {
		var poc ProductOrderCount
		if err := productRows.Scan(&poc.ProductID, &poc.Name, &poc.OrderCount); err != nil {
			return nil, err
		}
		stats.ProductOrderCounts = append(stats.ProductOrderCounts, poc)
	}

	return stats, productRows.Err()
}
