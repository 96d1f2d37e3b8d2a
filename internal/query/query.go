// Package query filters, orders and paginates content lists in memory.
package query

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/store"
)

// FallbackPageSize applies when a page size is supplied but unusable.
const FallbackPageSize = 25

// ImageFilter narrows an image list. A nil Home and an empty CategoryTitle
// match everything.
type ImageFilter struct {
	Home          *bool
	CategoryTitle string
}

// Pagination holds the raw page tokens from the request. Nil means absent.
type Pagination struct {
	Page     *string
	PageSize *string
}

type PageMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type Meta struct {
	Pagination PageMeta `json:"pagination"`
}

// Result is one page of images plus its pagination metadata.
type Result struct {
	Items []*store.Image
	Meta  Meta
}

// ParseBool accepts booleans, the number 1, and the strings true, on, 1 and
// yes in any case. Everything else is false.
func ParseBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t == 1
	case int64:
		return t == 1
	case float64:
		return t == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

// Images filters all (already in display order) and slices out one page.
// The category title filter matches either language, case-insensitively.
func Images(all []*store.Image, cats []*store.Category, f ImageFilter, p Pagination) Result {
	filtered := make([]*store.Image, 0, len(all))
	matching := matchingCategories(cats, f.CategoryTitle)
	for _, img := range all {
		if f.Home != nil && img.Home != *f.Home {
			continue
		}
		if f.CategoryTitle != "" && !hasAny(img, matching) {
			continue
		}
		filtered = append(filtered, img)
	}

	total := len(filtered)
	page := positiveInt(p.Page, 1, 1)
	pageSize := positiveInt(p.PageSize, max(total, 1), FallbackPageSize)

	start := (page - 1) * pageSize
	items := []*store.Image{}
	if start < total {
		items = filtered[start:min(start+pageSize, total)]
	}

	return Result{
		Items: items,
		Meta: Meta{Pagination: PageMeta{
			Page:      page,
			PageSize:  pageSize,
			PageCount: max(1, int(math.Ceil(float64(total)/float64(pageSize)))),
			Total:     total,
		}},
	}
}

// SortCategories returns cats ordered by ascending position; equal positions
// keep their input order.
func SortCategories(cats []*store.Category) []*store.Category {
	out := slices.Clone(cats)
	slices.SortStableFunc(out, func(a, b *store.Category) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return out
}

// positiveInt parses raw. Absent yields absent; unparsable or non-positive
// yields invalid.
func positiveInt(raw *string, absent, invalid int) int {
	if raw == nil {
		return absent
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil || n <= 0 {
		return invalid
	}
	return n
}

func matchingCategories(cats []*store.Category, title string) map[string]struct{} {
	ids := make(map[string]struct{})
	if title == "" {
		return ids
	}
	for _, c := range cats {
		for _, lang := range locale.Supported {
			if v := c.Title.Resolve(lang); v != "" && strings.EqualFold(v, title) {
				ids[c.ID] = struct{}{}
			}
		}
	}
	return ids
}

func hasAny(img *store.Image, ids map[string]struct{}) bool {
	if img.CategoryIDs == nil {
		return false
	}
	for id := range ids {
		if img.CategoryIDs.Contains(id) {
			return true
		}
	}
	return false
}
