package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/logger"
	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/metrics"
	"github.com/4liaghaie/sait/internal/query"
	"github.com/4liaghaie/sait/internal/store"
)

// imagesAPIHandler provides admin CRUD for gallery images. Bodies are
// multipart forms carrying an "image" file or a remoteUrl.
type imagesAPIHandler struct {
	images   *store.ImageStore
	uploader *media.Uploader
	maxBytes int64
	log      logger.Logger
}

func registerImageRoutes(r chi.Router, deps Deps) {
	h := &imagesAPIHandler{
		images:   deps.Images,
		uploader: deps.Uploader,
		maxBytes: deps.MaxUploadBytes,
		log:      deps.Logger,
	}
	r.Post("/images", h.Create)
	r.Patch("/images/{id}", h.Update)
	r.Delete("/images/{id}", h.Delete)
}

// Create stores a new image. Omitted text fields are empty, home is false
// and the path is empty when neither file nor URL is sent.
// POST /admin/images
func (h *imagesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r, h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	path, _, err := mediaPath(r, h.uploader, "image", "remoteUrl")
	if err != nil {
		writeInternal(w, r, h.log, "save image upload", err)
		return
	}

	titleEN, _ := formValue(r, "title_en")
	titleTR, _ := formValue(r, "title_tr")
	altEN, _ := formValue(r, "alt_en")
	altTR, _ := formValue(r, "alt_tr")
	home, _ := formValue(r, "home")
	categories, _ := formValue(r, "categories")
	references, _ := formValue(r, "references")

	img, err := h.images.Create(r.Context(), store.CreateImage{
		Title:        locale.NewBundle(titleEN, titleTR),
		Alt:          locale.NewBundle(altEN, altTR),
		Home:         query.ParseBool(home),
		Position:     optionalInt(r, "position").Get(0),
		ImagePath:    path,
		CategoryIDs:  splitIDs(categories),
		ReferenceIDs: splitIDs(references),
	})
	if err != nil {
		writeInternal(w, r, h.log, "create image", err)
		return
	}
	metrics.RecordWrite("image", "create")
	writeData(w, http.StatusCreated, img)
}

// Update applies the form fields that were sent. A sent categories or
// references list, even an empty one, replaces the whole link set.
// PATCH /admin/images/{id}
func (h *imagesAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.images.Get(r.Context(), id); err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	if err := parseForm(r, h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	u := store.UpdateImage{
		TitleEN:      optionalString(r, "title_en"),
		TitleTR:      optionalString(r, "title_tr"),
		AltEN:        optionalString(r, "alt_en"),
		AltTR:        optionalString(r, "alt_tr"),
		Home:         optionalBool(r, "home"),
		Position:     optionalInt(r, "position"),
		CategoryIDs:  optionalIDs(r, "categories"),
		ReferenceIDs: optionalIDs(r, "references"),
	}
	path, ok, err := mediaPath(r, h.uploader, "image", "remoteUrl")
	if err != nil {
		writeInternal(w, r, h.log, "save image upload", err)
		return
	}
	if ok {
		u.ImagePath = store.Some(path)
	}

	img, err := h.images.Update(r.Context(), id, u)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	metrics.RecordWrite("image", "update")
	writeData(w, http.StatusOK, img)
}

// Delete removes an image and its link rows. Unknown ids still answer 204.
// DELETE /admin/images/{id}
func (h *imagesAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.images.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternal(w, r, h.log, "delete image", err)
		return
	}
	metrics.RecordWrite("image", "delete")
	w.WriteHeader(http.StatusNoContent)
}

func (h *imagesAPIHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	writeInternal(w, r, h.log, "update image", err)
}
