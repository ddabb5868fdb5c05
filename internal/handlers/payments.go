package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFilename strips directory components and collapses anything
// outside [A-Za-z0-9._-] so a hostile filename cannot escape the upload dir.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// UploadPaymentProof stores the uploaded proof image and attaches its
// filename to the order. The file is written before the order lookup, so a
// proof for an unknown order id still lands on disk with no referencing row.
func (h *OrderHandler) UploadPaymentProof(w http.ResponseWriter, r *http.Request) {
	// ParseMultipartForm alone only bounds memory use and spills the rest
	// to temp files; MaxBytesReader is what actually rejects large bodies.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, header, err := r.FormFile("payment_proof")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	orderIDStr := r.FormValue("order_id")
	if header.Filename == "" || orderIDStr == "" {
		writeError(w, http.StatusBadRequest, "Invalid file or order ID")
		return
	}
	orderID, err := strconv.Atoi(orderIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid file or order ID")
		return
	}

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "Error saving file")
		return
	}

	// Same order id plus same original filename overwrites the previous
	// upload; the newest proof wins.
	filename := fmt.Sprintf("payment_%d_%s", orderID, sanitizeFilename(header.Filename))
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, filename))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error saving file")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "Error saving file")
		return
	}
	dst.Close()

	found, err := h.Store.SetPaymentProof(orderID, filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating order")
		return
	}
	if !found {
		// The file stays on disk: matches the original behavior of
		// writing before looking the order up.
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
