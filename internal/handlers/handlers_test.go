package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/oaksoe19620-creator/Webapp/internal/config"
	"github.com/oaksoe19620-creator/Webapp/internal/models"
	"github.com/oaksoe19620-creator/Webapp/internal/notify"
	"github.com/oaksoe19620-creator/Webapp/internal/store"
)

func newTestEnv(t *testing.T, notifier *notify.Client) (*chi.Mux, *store.Store, *config.Config) {
	t.Helper()

	db, err := store.NewStore(filepath.Join(t.TempDir(), "shop.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := db.InitSchema(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	t.Cleanup(func() { db.DB.Close() })

	if notifier == nil {
		// Empty token: notifications are skipped entirely.
		notifier = notify.New("", "http://127.0.0.1:1")
	}

	cfg := &config.Config{
		UploadDir:     filepath.Join(t.TempDir(), "uploads"),
		MaxUploadSize: 16 << 20,
		KBZPayNumber:  "09440823954",
	}

	r := chi.NewRouter()
	productHandler := &ProductHandler{Store: db, Cfg: cfg}
	orderHandler := &OrderHandler{Store: db, Notifier: notifier, Cfg: cfg}
	productHandler.Register(r)
	orderHandler.Register(r)

	return r, db, cfg
}

func doJSON(t *testing.T, r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func multipartUpload(t *testing.T, field, filename string, content []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func mustCreateOrder(t *testing.T, db *store.Store, productID int) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:        "chat-123",
		Username:      "alice",
		Total:         15.99,
		PaymentMethod: "KBZ Pay",
		Items:         []models.OrderItem{{ProductID: productID, Quantity: 1, Price: 15.99}},
	}
	if err := db.CreateOrder(context.Background(), order); err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func mustCreateProduct(t *testing.T, db *store.Store, name, category string, price float64) *models.Product {
	t.Helper()

	p := &models.Product{Name: name, Price: price, Category: category}
	if err := db.CreateProduct(p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}
