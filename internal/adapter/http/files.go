package httpadapter

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

// maxUploadBytes caps multipart uploads at 32 MiB.
const maxUploadBytes = 32 << 20

type fileResponse struct {
	ID          int64     `json:"id"`
	EntityType  string    `json:"entityType"`
	EntityID    int64     `json:"entityId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func toFileResponse(f *domain.StoredFile) fileResponse {
	return fileResponse{
		ID:          f.ID,
		EntityType:  string(f.EntityType),
		EntityID:    f.EntityID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		UploadedAt:  f.UploadedAt,
	}
}

// handleUploadFile accepts a multipart form with fields entityType,
// entityId and file.
func (h *Handler) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	entityID, err := strconv.ParseInt(r.FormValue("entityId"), 10, 64)
	if err != nil || entityID <= 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid entityId"})
		return
	}
	owner := domain.AttachmentOwner(r.FormValue("entityType"))

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file"})
		return
	}
	defer file.Close()

	stored, err := h.files.Upload(r.Context(), owner, entityID, header.Filename,
		header.Header.Get("Content-Type"), file)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toFileResponse(stored))
}

// handleDownloadFile streams the stored bytes with the original file name.
func (h *Handler) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	meta, rc, err := h.files.Open(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer rc.Close()

	if meta.ContentType != "" {
		w.Header().Set("Content-Type", meta.ContentType)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.FileName))
	w.Header().Set("Content-Length", strconv.FormatInt(meta.SizeBytes, 10))
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("stream file error", slog.Any("error", err))
	}
}

// handleListFiles lists attachments for ?entityType=&entityId=.
func (h *Handler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	entityID, err := strconv.ParseInt(r.URL.Query().Get("entityId"), 10, 64)
	if err != nil || entityID <= 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid entityId"})
		return
	}
	owner := domain.AttachmentOwner(r.URL.Query().Get("entityType"))

	files, err := h.files.List(r.Context(), owner, entityID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]fileResponse, 0, len(files))
	for i := range files {
		out = append(out, toFileResponse(&files[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.files.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
