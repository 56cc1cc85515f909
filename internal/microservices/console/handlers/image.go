package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/microservices/console/service"
	"restaurant-admin/internal/record"
)

// generationHeader pins an upload to the draft the client was looking at.
const generationHeader = "X-Draft-Generation"

type ImageHandler struct {
	menu *service.MenuService
	view *ScreenHandler[domain.MenuItem]
	lg   *logger.Logger
}

func NewImageHandler(menu *service.MenuService, view *ScreenHandler[domain.MenuItem], lg *logger.Logger) *ImageHandler {
	return &ImageHandler{menu: menu, view: view, lg: lg}
}

// Upload reads the multipart "image" field into the menu draft preview.
// The draft generation is taken before the body is read; if the draft is
// gone by the time the upload is decoded, the preview is dropped.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	lg := loggerFor(r, h.lg)
	_, gen, _, err := h.menu.Draft()
	if err != nil {
		writeError(w, lg, err)
		return
	}
	if v := r.Header.Get(generationHeader); v != "" {
		if gen, err = strconv.ParseUint(v, 10, 64); err != nil {
			writeError(w, lg, fmt.Errorf("%w: invalid %s", errBadRequest, generationHeader))
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageBytes+maxBody)
	f, hdr, err := r.FormFile("image")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, lg, mbe)
			return
		}
		writeError(w, lg, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	defer f.Close()

	if _, err := h.menu.AttachImage(gen, hdr.Header.Get("Content-Type"), f); err != nil {
		if errors.Is(err, record.ErrStaleDraft) {
			lg.Info("image_preview_dropped", map[string]any{"generation": gen})
		}
		writeError(w, lg, err)
		return
	}
	h.view.writeDraft(w, r, http.StatusOK)
}
