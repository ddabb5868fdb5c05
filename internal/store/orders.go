package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oaksoe19620-creator/Webapp/internal/models"
)

// CreateOrder inserts the order row and all of its line items in one
// transaction. A failed item insert rolls the whole order back; a partial
// order never persists. Sets order.ID on success.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, username, first_name, last_name, total, status, payment_method, created_at)
		VALUES (?, ?, ?, ?, ?, 'pending', ?, CURRENT_TIMESTAMP)`,
		order.UserID, order.Username, order.FirstName, order.LastName, order.Total, order.PaymentMethod,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i := range order.Items {
		order.Items[i].OrderID = int(orderID)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			orderID, order.Items[i].ProductID, order.Items[i].Quantity, order.Items[i].Price,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	order.ID = int(orderID)
	order.Status = "pending"
	return nil
}

func (s *Store) GetOrderByID(id int) (*models.Order, error) {
	query := `SELECT id, user_id, username, COALESCE(first_name, ''), COALESCE(last_name, ''), total, status, COALESCE(payment_method, ''), COALESCE(payment_proof, ''), created_at
	          FROM orders WHERE id = ?`

	var o models.Order
	err := s.DB.QueryRow(query, id).Scan(&o.ID, &o.UserID, &o.Username, &o.FirstName, &o.LastName, &o.Total, &o.Status, &o.PaymentMethod, &o.PaymentProof, &o.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	items, err := s.getOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// GetAllOrders returns every order, newest first, with line items attached.
func (s *Store) GetAllOrders() ([]models.Order, error) {
	query := `SELECT id, user_id, username, COALESCE(first_name, ''), COALESCE(last_name, ''), total, status, COALESCE(payment_method, ''), COALESCE(payment_proof, ''), created_at
	          FROM orders
	          ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Username, &o.FirstName, &o.LastName, &o.Total, &o.Status, &o.PaymentMethod, &o.PaymentProof, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.getOrderItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *Store) getOrderItems(orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id
	`
	rows, err := s.DB.Query(query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateOrderStatus persists any status string; the caller decides what
// values make sense. Returns false when the order does not exist.
func (s *Store) UpdateOrderStatus(id int, status string) (bool, error) {
	res, err := s.DB.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetPaymentProof records the stored proof filename. Returns false when the
// order does not exist.
func (s *Store) SetPaymentProof(id int, filename string) (bool, error) {
	res, err := s.DB.Exec(`UPDATE orders SET payment_proof = ? WHERE id = ?`, filename, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
