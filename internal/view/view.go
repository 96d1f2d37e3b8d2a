// Package view projects stored content into the localized JSON shapes the
// gallery client consumes. Every function is pure over its arguments.
package view

import (
	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/store"
)

type CategoryTranslations struct {
	Title       locale.Bundle `json:"title"`
	Description locale.Bundle `json:"description"`
}

type CategoryView struct {
	ID           string               `json:"id"`
	Title        string               `json:"Title"`
	Description  string               `json:"Description"`
	Position     int                  `json:"position"`
	IsActive     bool                 `json:"is_active"`
	Translations CategoryTranslations `json:"translations"`
}

type ImageTranslations struct {
	Title locale.Bundle `json:"title"`
	Alt   locale.Bundle `json:"alt"`
}

type ImageView struct {
	ID           string            `json:"id"`
	DocumentID   string            `json:"documentId"`
	Title        string            `json:"Title"`
	Alt          string            `json:"alt"`
	Home         bool              `json:"home"`
	Position     int               `json:"position"`
	Image        *media.Ref        `json:"image"`
	Categories   []CategoryView    `json:"categories"`
	References   []ReferenceView   `json:"references"`
	Translations ImageTranslations `json:"translations"`
}

// ImageStub is the id-only image form used inside nested references.
type ImageStub struct {
	DocumentID string `json:"documentId"`
	ID         string `json:"id"`
}

type ReferenceTranslations struct {
	Title       locale.Bundle `json:"title"`
	Description locale.Bundle `json:"description"`
}

// ReferenceView carries either stubs or full images in Images, depending on
// whether it was projected nested.
type ReferenceView struct {
	ID           string                `json:"id"`
	DocumentID   string                `json:"documentId"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Year         string                `json:"year"`
	LogoLight    *media.Ref            `json:"logo_light"`
	LogoDark     *media.Ref            `json:"logo_dark"`
	Images       any                   `json:"images"`
	Translations ReferenceTranslations `json:"translations"`
}

type AboutView struct {
	Text         string        `json:"About_text"`
	Translations locale.Bundle `json:"translations"`
	UpdatedAt    int64         `json:"updatedAt"`
}

type LogoView struct {
	ID           string        `json:"id"`
	Img          *media.Ref    `json:"img"`
	Alt          string        `json:"alt"`
	Translations locale.Bundle `json:"translations"`
}

// Projector localizes entities and resolves their media paths.
type Projector struct {
	Media *media.Resolver
}

func New(m *media.Resolver) *Projector {
	return &Projector{Media: m}
}

func (p *Projector) resolve(path string) *media.Ref {
	if p.Media == nil {
		return media.NewResolver("").Resolve(path)
	}
	return p.Media.Resolve(path)
}

func (p *Projector) Category(c *store.Category, lang locale.Lang) CategoryView {
	return CategoryView{
		ID:           c.ID,
		Title:        c.Title.Resolve(lang),
		Description:  c.Description.Resolve(lang),
		Position:     c.Position,
		IsActive:     c.IsActive,
		Translations: CategoryTranslations{Title: c.Title, Description: c.Description},
	}
}

func (p *Projector) Categories(cats []*store.Category, lang locale.Lang) []CategoryView {
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, p.Category(c, lang))
	}
	return out
}

// Image projects img with its linked categories and references taken from
// cats and refs, in their order. Ids with no matching entity are dropped.
// References are always projected nested.
func (p *Projector) Image(img *store.Image, lang locale.Lang, cats []*store.Category, refs []*store.Reference) ImageView {
	v := ImageView{
		ID:           img.ID,
		DocumentID:   img.ID,
		Title:        img.Title.Resolve(lang),
		Alt:          img.Alt.Resolve(lang),
		Home:         img.Home,
		Position:     img.Position,
		Image:        p.resolve(img.ImagePath),
		Categories:   []CategoryView{},
		References:   []ReferenceView{},
		Translations: ImageTranslations{Title: img.Title, Alt: img.Alt},
	}
	if img.CategoryIDs != nil {
		for _, c := range cats {
			if img.CategoryIDs.Contains(c.ID) {
				v.Categories = append(v.Categories, p.Category(c, lang))
			}
		}
	}
	if img.ReferenceIDs != nil {
		for _, r := range refs {
			if img.ReferenceIDs.Contains(r.ID) {
				v.References = append(v.References, p.Reference(r, lang, true, nil))
			}
		}
	}
	return v
}

func (p *Projector) Images(imgs []*store.Image, lang locale.Lang, cats []*store.Category, refs []*store.Reference) []ImageView {
	out := make([]ImageView, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, p.Image(img, lang, cats, refs))
	}
	return out
}

// Reference projects ref. Nested references list their images as id stubs.
// Otherwise images come from imgs, each carrying ref itself as its only
// reference. Image projects references nested, so expansion stops there.
func (p *Projector) Reference(ref *store.Reference, lang locale.Lang, nested bool, imgs []*store.Image) ReferenceView {
	v := ReferenceView{
		ID:           ref.ID,
		DocumentID:   ref.ID,
		Title:        ref.Title.Resolve(lang),
		Description:  ref.Description.Resolve(lang),
		Year:         ref.Year,
		LogoLight:    p.resolve(ref.LogoLightPath),
		LogoDark:     p.resolve(ref.LogoDarkPath),
		Translations: ReferenceTranslations{Title: ref.Title, Description: ref.Description},
	}
	if nested {
		ids := store.SortedIDs(ref.ImageIDs)
		stubs := make([]ImageStub, 0, len(ids))
		for _, id := range ids {
			stubs = append(stubs, ImageStub{DocumentID: id, ID: id})
		}
		v.Images = stubs
		return v
	}
	full := []ImageView{}
	if ref.ImageIDs != nil {
		self := []*store.Reference{ref}
		for _, img := range imgs {
			if ref.ImageIDs.Contains(img.ID) {
				full = append(full, p.Image(img, lang, nil, self))
			}
		}
	}
	v.Images = full
	return v
}

func (p *Projector) References(refs []*store.Reference, lang locale.Lang, nested bool, imgs []*store.Image) []ReferenceView {
	out := make([]ReferenceView, 0, len(refs))
	for _, r := range refs {
		out = append(out, p.Reference(r, lang, nested, imgs))
	}
	return out
}

func (p *Projector) About(a *store.About, lang locale.Lang) AboutView {
	return AboutView{
		Text:         a.Content.Resolve(lang),
		Translations: a.Content,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (p *Projector) Logo(l *store.Logo, lang locale.Lang) LogoView {
	return LogoView{
		ID:           l.ID,
		Img:          p.resolve(l.ImagePath),
		Alt:          l.Alt.Resolve(lang),
		Translations: l.Alt,
	}
}
