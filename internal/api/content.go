package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/4liaghaie/sait/internal/logger"
	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/metrics"
	"github.com/4liaghaie/sait/internal/store"
)

// contentAPIHandler edits the about and logo singletons.
type contentAPIHandler struct {
	content  *store.ContentStore
	uploader *media.Uploader
	maxBytes int64
	log      logger.Logger
}

func registerContentRoutes(r chi.Router, deps Deps) {
	h := &contentAPIHandler{
		content:  deps.Content,
		uploader: deps.Uploader,
		maxBytes: deps.MaxUploadBytes,
		log:      deps.Logger,
	}
	r.Put("/about", h.UpdateAbout)
	r.Post("/logo", h.UpdateLogo)
}

// UpdateAbout replaces both language variants of the about text.
// PUT /admin/about
func (h *contentAPIHandler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	var req AboutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	en, tr := req.text()
	about, err := h.content.UpdateAbout(r.Context(), store.UpdateAbout{
		ContentEN: store.Some(en),
		ContentTR: store.Some(tr),
	})
	if err != nil {
		writeInternal(w, r, h.log, "update about", err)
		return
	}
	metrics.RecordWrite("about", "update")
	writeData(w, http.StatusOK, about)
}

// UpdateLogo sets the logo from an uploaded "img" file or a remoteUrl.
// POST /admin/logo
func (h *contentAPIHandler) UpdateLogo(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r, h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	path, ok, err := mediaPath(r, h.uploader, "img", "remoteUrl")
	if err != nil {
		writeInternal(w, r, h.log, "save logo upload", err)
		return
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "Please provide a file or remote URL")
		return
	}
	altEN, _ := formValue(r, "alt_en")
	altTR, _ := formValue(r, "alt_tr")

	logo, err := h.content.UpdateLogo(r.Context(), store.UpdateLogo{
		ImagePath: store.Some(path),
		AltEN:     store.Some(altEN),
		AltTR:     store.Some(altTR),
	})
	if err != nil {
		writeInternal(w, r, h.log, "update logo", err)
		return
	}
	metrics.RecordWrite("logo", "update")
	writeData(w, http.StatusOK, logo)
}

// decodeJSON decodes the request body into v. An empty body leaves v zero.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
