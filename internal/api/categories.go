package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/logger"
	"github.com/4liaghaie/sait/internal/metrics"
	"github.com/4liaghaie/sait/internal/store"
)

// categoriesAPIHandler provides admin CRUD for categories.
type categoriesAPIHandler struct {
	categories *store.CategoryStore
	log        logger.Logger
}

func registerCategoryRoutes(r chi.Router, deps Deps) {
	h := &categoriesAPIHandler{categories: deps.Categories, log: deps.Logger}
	r.Post("/categories", h.Create)
	r.Patch("/categories/{id}", h.Update)
	r.Delete("/categories/{id}", h.Delete)
}

// Create adds a category. Position defaults to 0 and is_active to true.
// POST /admin/categories
func (h *categoriesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cat, err := h.categories.Create(r.Context(), store.CreateCategory{
		Title:       locale.NewBundle(req.Title.en().Get(""), req.Title.tr().Get("")),
		Description: locale.NewBundle(req.Description.en().Get(""), req.Description.tr().Get("")),
		Position:    req.position().Get(0),
		IsActive:    req.isActive().Get(true),
	})
	if err != nil {
		writeInternal(w, r, h.log, "create category", err)
		return
	}
	metrics.RecordWrite("category", "create")
	writeData(w, http.StatusCreated, cat)
}

// Update applies the fields present in the body.
// PATCH /admin/categories/{id}
func (h *categoriesAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cat, err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), store.UpdateCategory{
		TitleEN:       req.Title.en(),
		TitleTR:       req.Title.tr(),
		DescriptionEN: req.Description.en(),
		DescriptionTR: req.Description.tr(),
		Position:      req.position(),
		IsActive:      req.isActive(),
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		writeInternal(w, r, h.log, "update category", err)
		return
	}
	metrics.RecordWrite("category", "update")
	writeData(w, http.StatusOK, cat)
}

// Delete removes a category and unlinks it from every image. Unknown ids
// still answer 204.
// DELETE /admin/categories/{id}
func (h *categoriesAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternal(w, r, h.log, "delete category", err)
		return
	}
	metrics.RecordWrite("category", "delete")
	w.WriteHeader(http.StatusNoContent)
}
