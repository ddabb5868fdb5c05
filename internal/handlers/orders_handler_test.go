package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oaksoe19620-creator/Webapp/internal/models"
	"github.com/oaksoe19620-creator/Webapp/internal/notify"
)

func TestCreateOrderAndFetch(t *testing.T) {
	r, db, _ := newTestEnv(t, nil)

	mustCreateProduct(t, db, "Premium Coffee", "Beverages", 15.99)

	w := doJSON(t, r, http.MethodPost, "/api/create_order",
		`{"user_id":"chat-123","username":"alice","total":31.98,"payment_method":"KBZ Pay",
		  "items":[{"product_id":1,"quantity":2,"price":15.99}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["success"] != true || resp["order_id"] != float64(1) {
		t.Fatalf("expected success with order_id 1, got %v", resp)
	}

	w = doJSON(t, r, http.MethodGet, "/api/orders/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching order, got %d", w.Code)
	}
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(order.Items))
	}
	if order.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", order.Items[0].Quantity)
	}
	if order.Status != "pending" {
		t.Errorf("expected pending status, got %q", order.Status)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	r, _, _ := newTestEnv(t, nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing user_id", `{"username":"alice","total":1,"payment_method":"KBZ Pay","items":[{"product_id":1,"quantity":1,"price":1}]}`},
		{"missing total", `{"user_id":"c","username":"alice","payment_method":"KBZ Pay","items":[{"product_id":1,"quantity":1,"price":1}]}`},
		{"no items", `{"user_id":"c","username":"alice","total":1,"payment_method":"KBZ Pay","items":[]}`},
		{"zero quantity", `{"user_id":"c","username":"alice","total":1,"payment_method":"KBZ Pay","items":[{"product_id":1,"quantity":0,"price":1}]}`},
		{"missing item price", `{"user_id":"c","username":"alice","total":1,"payment_method":"KBZ Pay","items":[{"product_id":1,"quantity":1}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/create_order", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	r, db, _ := newTestEnv(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/create_order",
		`{"user_id":"chat-123","username":"alice","total":15.99,"payment_method":"KBZ Pay",
		  "items":[{"product_id":42,"quantity":1,"price":15.99}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	orders, err := db.GetAllOrders()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders after failed create, got %d", len(orders))
	}
}

func TestUpdateOrderStatusPersistsWhenNotifierFails(t *testing.T) {
	// Telegram is down; the status change must still stick.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r, db, _ := newTestEnv(t, notify.New("TESTTOKEN", srv.URL))

	p := mustCreateProduct(t, db, "Premium Coffee", "Beverages", 15.99)
	order := mustCreateOrder(t, db, p.ID)

	w := doJSON(t, r, http.MethodPost, "/api/update_order_status",
		`{"order_id":1,"status":"confirmed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["success"] != true {
		t.Errorf("expected success despite notifier failure, got %v", resp)
	}

	got, err := db.GetOrderByID(order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Status != "confirmed" {
		t.Errorf("expected status confirmed, got %q", got.Status)
	}
}

func TestUpdateOrderStatusSendsNotification(t *testing.T) {
	var gotChatID, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotChatID = r.FormValue("chat_id")
		gotText = r.FormValue("text")
	}))
	defer srv.Close()

	r, db, _ := newTestEnv(t, notify.New("TESTTOKEN", srv.URL))

	p := mustCreateProduct(t, db, "Premium Coffee", "Beverages", 15.99)
	mustCreateOrder(t, db, p.ID)

	w := doJSON(t, r, http.MethodPost, "/api/update_order_status",
		`{"order_id":1,"status":"declined"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotChatID != "chat-123" {
		t.Errorf("expected notification to chat-123, got %q", gotChatID)
	}
	if gotText != "Order #1 has been declined!" {
		t.Errorf("unexpected notification text %q", gotText)
	}
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	r, _, _ := newTestEnv(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/update_order_status",
		`{"order_id":42,"status":"confirmed"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["success"] != false {
		t.Errorf("expected success=false, got %v", resp)
	}
}

func TestUpdateOrderStatusAcceptsAnyString(t *testing.T) {
	r, db, _ := newTestEnv(t, nil)

	p := mustCreateProduct(t, db, "Premium Coffee", "Beverages", 15.99)
	order := mustCreateOrder(t, db, p.ID)

	w := doJSON(t, r, http.MethodPost, "/api/update_order_status",
		`{"order_id":1,"status":"on hold"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got, err := db.GetOrderByID(order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Status != "on hold" {
		t.Errorf("expected free-form status persisted, got %q", got.Status)
	}
}

func TestWebhook(t *testing.T) {
	r, _, _ := newTestEnv(t, nil)

	w := doJSON(t, r, http.MethodPost, "/webhook", `{"update_id":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp)
	}
}

func TestCheckoutInfo(t *testing.T) {
	r, _, cfg := newTestEnv(t, nil)

	w := doJSON(t, r, http.MethodGet, "/api/checkout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["payment_number"] != cfg.KBZPayNumber {
		t.Errorf("expected payment number %q, got %v", cfg.KBZPayNumber, resp["payment_number"])
	}
}

func TestStats(t *testing.T) {
	r, db, _ := newTestEnv(t, nil)

	p := mustCreateProduct(t, db, "Premium Coffee", "Beverages", 15.99)
	mustCreateOrder(t, db, p.ID)

	w := doJSON(t, r, http.MethodGet, "/api/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["total_orders"] != float64(1) {
		t.Errorf("expected 1 total order, got %v", resp["total_orders"])
	}
}
