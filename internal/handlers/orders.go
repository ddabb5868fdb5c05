package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/oaksoe19620-creator/Webapp/internal/config"
	"github.com/oaksoe19620-creator/Webapp/internal/models"
	"github.com/oaksoe19620-creator/Webapp/internal/notify"
	"github.com/oaksoe19620-creator/Webapp/internal/store"
)

type OrderHandler struct {
	Store    *store.Store
	Notifier *notify.Client
	Cfg      *config.Config
}

func (h *OrderHandler) Register(r *chi.Mux) {
	r.Post("/api/create_order", h.CreateOrder)
	r.Get("/api/orders", h.ListOrders)
	r.Get("/api/orders/{id}", h.GetOrder)
	r.Post("/api/upload_payment_proof", h.UploadPaymentProof)
	r.Post("/api/update_order_status", h.UpdateOrderStatus)
	r.Get("/api/stats", h.Stats)
	r.Get("/api/checkout", h.CheckoutInfo)
	r.Post("/webhook", h.Webhook)
}

type createOrderItem struct {
	ProductID int      `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price"`
}

type createOrderRequest struct {
	UserID        string            `json:"user_id"`
	Username      string            `json:"username"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Total         *float64          `json:"total"`
	PaymentMethod string            `json:"payment_method"`
	Items         []createOrderItem `json:"items"`
}

// CreateOrder persists the order and all line items atomically. Item prices
// and the order total are taken from the client as-is; they are a snapshot
// of what the buyer saw, not a server-side recomputation.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == "" || req.Username == "" || req.Total == nil || req.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, "user_id, username, total and payment_method are required")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order must contain at least one item")
		return
	}
	for _, it := range req.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 || it.Price == nil {
			writeError(w, http.StatusBadRequest, "each item needs product_id, a positive quantity and a price")
			return
		}
	}

	order := &models.Order{
		UserID:        req.UserID,
		Username:      req.Username,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Total:         *req.Total,
		PaymentMethod: req.PaymentMethod,
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     *it.Price,
		})
	}

	if err := h.Store.CreateOrder(r.Context(), order); err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint") {
			writeError(w, http.StatusBadRequest, "order references an unknown product")
			return
		}
		slog.Error("Failed to create order", "error", err)
		writeError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order_id": order.ID})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetAllOrders()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching order")
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type updateOrderStatusRequest struct {
	OrderID int    `json:"order_id"`
	Status  string `json:"status"`
}

// UpdateOrderStatus persists the new status, then fires one best-effort
// notification to the buyer. Notification failure is logged and never
// affects the response.
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderID <= 0 || req.Status == "" {
		writeError(w, http.StatusBadRequest, "order_id and status are required")
		return
	}

	order, err := h.Store.GetOrderByID(req.OrderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching order")
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	if _, err := h.Store.UpdateOrderStatus(req.OrderID, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating order status")
		return
	}

	if err := h.Notifier.SendOrderStatus(r.Context(), order.UserID, order.ID, req.Status); err != nil {
		slog.Error("Failed to send order notification", "order_id", order.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CheckoutInfo exposes the payment-collection account shown at checkout.
func (h *OrderHandler) CheckoutInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"payment_number": h.Cfg.KBZPayNumber})
}

// Webhook is the Telegram webhook sink. Updates are accepted and dropped;
// the bot side of the shop does not live in this process.
func (h *OrderHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
