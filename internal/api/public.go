package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/logger"
	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/query"
	"github.com/4liaghaie/sait/internal/store"
	"github.com/4liaghaie/sait/internal/view"
)

// publicAPIHandler serves the read-only, localized content API.
type publicAPIHandler struct {
	content    *store.ContentStore
	categories *store.CategoryStore
	images     *store.ImageStore
	references *store.ReferenceStore
	media      *media.Resolver
	log        logger.Logger
}

func registerPublicRoutes(r chi.Router, deps Deps) {
	h := &publicAPIHandler{
		content:    deps.Content,
		categories: deps.Categories,
		images:     deps.Images,
		references: deps.References,
		media:      deps.Media,
		log:        deps.Logger,
	}
	r.Get("/about", h.About)
	r.Get("/logo", h.Logo)
	r.Get("/categories", h.Categories)
	r.Get("/references", h.References)
	r.Get("/images", h.ListImages)
	r.Get("/images/{id}", h.GetImage)
}

func (h *publicAPIHandler) projector(r *http.Request) *view.Projector {
	return view.New(h.media.ForRequest(r))
}

// About returns the localized about document.
// GET /api/about
func (h *publicAPIHandler) About(w http.ResponseWriter, r *http.Request) {
	a, err := h.content.GetAbout(r.Context())
	if err != nil {
		writeInternal(w, r, h.log, "get about", err)
		return
	}
	writeData(w, http.StatusOK, h.projector(r).About(a, locale.FromContext(r.Context())))
}

// Logo returns the site logo with its resolved media reference.
// GET /api/logo
func (h *publicAPIHandler) Logo(w http.ResponseWriter, r *http.Request) {
	l, err := h.content.GetLogo(r.Context())
	if err != nil {
		writeInternal(w, r, h.log, "get logo", err)
		return
	}
	writeData(w, http.StatusOK, h.projector(r).Logo(l, locale.FromContext(r.Context())))
}

// Categories returns every category ordered by position.
// GET /api/categories
func (h *publicAPIHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		writeInternal(w, r, h.log, "list categories", err)
		return
	}
	writeData(w, http.StatusOK, h.projector(r).Categories(query.SortCategories(cats), locale.FromContext(r.Context())))
}

// References returns every reference with its images as id stubs.
// GET /api/references
func (h *publicAPIHandler) References(w http.ResponseWriter, r *http.Request) {
	refs, err := h.references.List(r.Context())
	if err != nil {
		writeInternal(w, r, h.log, "list references", err)
		return
	}
	writeData(w, http.StatusOK, h.projector(r).References(refs, locale.FromContext(r.Context()), true, nil))
}

// GetImage returns one image with its categories and references expanded.
// GET /api/images/{id}
func (h *publicAPIHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	img, err := h.images.Get(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		writeInternal(w, r, h.log, "get image", err)
		return
	}
	cats, refs, err := h.catalog(r)
	if err != nil {
		writeInternal(w, r, h.log, "load catalog", err)
		return
	}
	writeData(w, http.StatusOK, h.projector(r).Image(img, locale.FromContext(ctx), cats, refs))
}

type imageListResponse struct {
	Data []view.ImageView `json:"data"`
	Meta query.Meta       `json:"meta"`
}

// ListImages returns a filtered page of images, newest first.
// GET /api/images?filters[home][$eq]=&filters[categories][Title][$eq]=&pagination[page]=&pagination[pageSize]=
func (h *publicAPIHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	all, err := h.images.List(ctx)
	if err != nil {
		writeInternal(w, r, h.log, "list images", err)
		return
	}
	cats, refs, err := h.catalog(r)
	if err != nil {
		writeInternal(w, r, h.log, "load catalog", err)
		return
	}

	filter, page := parseImageQuery(r)
	res := query.Images(all, cats, filter, page)
	writeJSON(w, http.StatusOK, imageListResponse{
		Data: h.projector(r).Images(res.Items, locale.FromContext(ctx), cats, refs),
		Meta: res.Meta,
	})
}

// catalog loads the category and reference lists an image projection draws
// its linked entities from.
func (h *publicAPIHandler) catalog(r *http.Request) ([]*store.Category, []*store.Reference, error) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		return nil, nil, err
	}
	refs, err := h.references.List(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return cats, refs, nil
}
