package models

import (
	"time"
)

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Order struct {
	ID            int         `json:"id"`
	UserID        string      `json:"user_id"` // Telegram chat id, opaque to this system
	Username      string      `json:"username"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"` // "pending", "confirmed", "declined"
	PaymentMethod string      `json:"payment_method"`
	PaymentProof  string      `json:"payment_proof"` // stored filename, empty until uploaded
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `json:"items"`
}

type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"` // For display convenience
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"` // Unit price captured at order time, not the live catalog price
}
