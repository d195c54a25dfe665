package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"adminpanel/internal/service"
)

// multipartOverhead is room for boundaries and part headers around the file.
const multipartOverhead = 1 << 20

func (g *GatewayHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	limit := g.Cfg.MaxUploadSize

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			g.writeTooLarge(w)
			return
		}
		WriteError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > limit {
		g.writeTooLarge(w)
		return
	}

	uploaded, err := g.Uploads.UploadImage(r.Context(), header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFileType) {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		g.Log.Error("upload failed", "error", err)
		WriteError(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	g.Log.Info("image uploaded", "key", uploaded.Key, "size", header.Size)
	WriteJSON(w, uploaded, http.StatusOK)
}

func (g *GatewayHandlers) SignedImageURL(w http.ResponseWriter, r *http.Request) {
	signed, err := g.Uploads.SignedURL(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		if errors.Is(err, service.ErrBadKey) {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		g.Log.Error("s3-get failed", "error", err)
		WriteError(w, "Failed to sign GET", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, signed, http.StatusOK)
}

func (g *GatewayHandlers) writeTooLarge(w http.ResponseWriter) {
	WriteError(w, fmt.Sprintf("File too large (max %d MB)", g.Cfg.MaxUploadSize/(1024*1024)), http.StatusRequestEntityTooLarge)
}
