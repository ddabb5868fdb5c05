package handlers

import (
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/oaksoe19620-creator/Webapp/internal/config"
	"github.com/oaksoe19620-creator/Webapp/internal/models"
	"github.com/oaksoe19620-creator/Webapp/internal/store"
)

type ProductHandler struct {
	Store *store.Store
	Cfg   *config.Config
}

func (h *ProductHandler) Register(r *chi.Mux) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/categories", h.ListCategories)
	r.Post("/api/add_product", h.AddProduct)
	r.Put("/api/update_product/{id}", h.UpdateProduct)
	r.Delete("/api/delete_product/{id}", h.DeleteProduct)
	r.Post("/api/upload_product_image", h.UploadProductImage)
}

// productResponse is the customer-facing shape; active flag and timestamps
// stay internal.
type productResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	products, err := h.Store.ListActiveProducts(category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Category:    p.Category,
			Description: p.Description,
			ImageURL:    p.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.ListCategories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

type addProductRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Category == "" || req.Price == nil {
		writeError(w, http.StatusBadRequest, "name, price and category are required")
		return
	}
	if *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}

	p := &models.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.Store.CreateProduct(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": p.ID})
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Active      *bool    `json:"active"`
}

// UpdateProduct merges the supplied fields into the stored row; omitted
// fields keep their current values.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.Store.GetProductByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			writeError(w, http.StatusBadRequest, "price must be non-negative")
			return
		}
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := h.Store.UpdateProduct(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	found, err := h.Store.DeactivateProduct(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ProductHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	// Bound the body before parsing; see UploadPaymentProof.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	id, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	var img image.Image
	switch filepath.Ext(header.Filename) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpeg", ".jpg":
		img, err = jpeg.Decode(file)
	default:
		writeError(w, http.StatusBadRequest, "Unsupported image format")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image file")
		return
	}

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "Error saving image")
		return
	}

	newImage := resize.Resize(800, 0, img, resize.Lanczos3)
	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	uploadPath := filepath.Join(h.Cfg.UploadDir, filename)

	out, err := os.Create(uploadPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error saving image")
		return
	}
	if err := jpeg.Encode(out, newImage, &jpeg.Options{Quality: 80}); err != nil {
		out.Close()
		writeError(w, http.StatusInternalServerError, "Error saving image")
		return
	}
	out.Close()

	imageURL := "/" + path.Join(filepath.ToSlash(h.Cfg.UploadDir), filename)
	found, err := h.Store.UpdateProductImage(id, imageURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating product")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "image_url": imageURL})
}
