package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/logger"
	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/metrics"
	"github.com/4liaghaie/sait/internal/store"
)

// referencesAPIHandler provides admin CRUD for client references. Each
// reference has two logo slots, light and dark.
type referencesAPIHandler struct {
	references *store.ReferenceStore
	uploader   *media.Uploader
	maxBytes   int64
	log        logger.Logger
}

func registerReferenceRoutes(r chi.Router, deps Deps) {
	h := &referencesAPIHandler{
		references: deps.References,
		uploader:   deps.Uploader,
		maxBytes:   deps.MaxUploadBytes,
		log:        deps.Logger,
	}
	r.Post("/references", h.Create)
	r.Patch("/references/{id}", h.Update)
	r.Delete("/references/{id}", h.Delete)
}

// Create stores a new reference.
// POST /admin/references
func (h *referencesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r, h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	light, _, err := mediaPath(r, h.uploader, "logo_light", "remoteLogoLight")
	if err != nil {
		writeInternal(w, r, h.log, "save logo upload", err)
		return
	}
	dark, _, err := mediaPath(r, h.uploader, "logo_dark", "remoteLogoDark")
	if err != nil {
		writeInternal(w, r, h.log, "save logo upload", err)
		return
	}

	titleEN, _ := formValue(r, "title_en")
	titleTR, _ := formValue(r, "title_tr")
	descEN, _ := formValue(r, "description_en")
	descTR, _ := formValue(r, "description_tr")
	year, _ := formValue(r, "year")
	images, _ := formValue(r, "images")

	ref, err := h.references.Create(r.Context(), store.CreateReference{
		Title:         locale.NewBundle(titleEN, titleTR),
		Description:   locale.NewBundle(descEN, descTR),
		Year:          year,
		LogoLightPath: light,
		LogoDarkPath:  dark,
		ImageIDs:      splitIDs(images),
	})
	if err != nil {
		writeInternal(w, r, h.log, "create reference", err)
		return
	}
	metrics.RecordWrite("reference", "create")
	writeData(w, http.StatusCreated, ref)
}

// Update applies the form fields that were sent. A logo slot changes only
// when a new file or remote URL arrives for it.
// PATCH /admin/references/{id}
func (h *referencesAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.references.Get(r.Context(), id); err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	if err := parseForm(r, h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	u := store.UpdateReference{
		TitleEN:       optionalString(r, "title_en"),
		TitleTR:       optionalString(r, "title_tr"),
		DescriptionEN: optionalString(r, "description_en"),
		DescriptionTR: optionalString(r, "description_tr"),
		Year:          optionalString(r, "year"),
		ImageIDs:      optionalIDs(r, "images"),
	}
	light, ok, err := mediaPath(r, h.uploader, "logo_light", "remoteLogoLight")
	if err != nil {
		writeInternal(w, r, h.log, "save logo upload", err)
		return
	}
	if ok {
		u.LogoLightPath = store.Some(light)
	}
	dark, ok, err := mediaPath(r, h.uploader, "logo_dark", "remoteLogoDark")
	if err != nil {
		writeInternal(w, r, h.log, "save logo upload", err)
		return
	}
	if ok {
		u.LogoDarkPath = store.Some(dark)
	}

	ref, err := h.references.Update(r.Context(), id, u)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	metrics.RecordWrite("reference", "update")
	writeData(w, http.StatusOK, ref)
}

// Delete removes a reference and its image links. Unknown ids still
// answer 204.
// DELETE /admin/references/{id}
func (h *referencesAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.references.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternal(w, r, h.log, "delete reference", err)
		return
	}
	metrics.RecordWrite("reference", "delete")
	w.WriteHeader(http.StatusNoContent)
}

func (h *referencesAPIHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Reference not found")
		return
	}
	writeInternal(w, r, h.log, "update reference", err)
}
