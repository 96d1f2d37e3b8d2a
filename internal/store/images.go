package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/4liaghaie/sait/internal/locale"
)

// Image is a gallery item with its category and reference links.
type Image struct {
	ID           string
	Title        locale.Bundle
	Alt          locale.Bundle
	Home         bool
	Position     int
	ImagePath    string
	CreatedAt    int64
	CategoryIDs  mapset.Set[string]
	ReferenceIDs mapset.Set[string]
}

// MarshalJSON renders the link sets as sorted id lists.
func (i Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           string        `json:"id"`
		Title        locale.Bundle `json:"title"`
		Alt          locale.Bundle `json:"alt"`
		Home         bool          `json:"home"`
		Position     int           `json:"position"`
		ImagePath    string        `json:"imagePath"`
		CreatedAt    int64         `json:"createdAt"`
		CategoryIDs  []string      `json:"categoryIds"`
		ReferenceIDs []string      `json:"referenceIds"`
	}{i.ID, i.Title, i.Alt, i.Home, i.Position, i.ImagePath, i.CreatedAt, SortedIDs(i.CategoryIDs), SortedIDs(i.ReferenceIDs)})
}

// CreateImage is the input to ImageStore.Create. Nil sets mean no links and a
// zero CreatedAt means now.
type CreateImage struct {
	ID           string
	Title        locale.Bundle
	Alt          locale.Bundle
	Home         bool
	Position     int
	ImagePath    string
	CreatedAt    int64
	CategoryIDs  mapset.Set[string]
	ReferenceIDs mapset.Set[string]
}

// UpdateImage carries per-field partial updates. A set CategoryIDs or
// ReferenceIDs replaces the whole link set; CreatedAt is never updatable.
type UpdateImage struct {
	TitleEN      Optional[string]
	TitleTR      Optional[string]
	AltEN        Optional[string]
	AltTR        Optional[string]
	Home         Optional[bool]
	Position     Optional[int]
	ImagePath    Optional[string]
	CategoryIDs  Optional[mapset.Set[string]]
	ReferenceIDs Optional[mapset.Set[string]]
}

type imageRow struct {
	ID        string `db:"id"`
	TitleEN   string `db:"title_en"`
	TitleTR   string `db:"title_tr"`
	AltEN     string `db:"alt_en"`
	AltTR     string `db:"alt_tr"`
	Home      bool   `db:"home"`
	Position  int    `db:"position"`
	ImagePath string `db:"image_path"`
	CreatedAt int64  `db:"created_at"`
}

func (r imageRow) toImage(cats, refs mapset.Set[string]) *Image {
	return &Image{
		ID:           r.ID,
		Title:        locale.NewBundle(r.TitleEN, r.TitleTR),
		Alt:          locale.NewBundle(r.AltEN, r.AltTR),
		Home:         r.Home,
		Position:     r.Position,
		ImagePath:    r.ImagePath,
		CreatedAt:    r.CreatedAt,
		CategoryIDs:  setOrEmpty(cats),
		ReferenceIDs: setOrEmpty(refs),
	}
}

const imageColumns = `id, title_en, title_tr, alt_en, alt_tr, home, position, image_path, created_at`

// ImageStore is the sqlx-backed image repository.
type ImageStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewImageStore(db *sqlx.DB) *ImageStore {
	return &ImageStore{db: db, now: time.Now}
}

// Create inserts an image and its links in one transaction.
func (s *ImageStore) Create(ctx context.Context, c CreateImage) (*Image, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = s.now().UnixMilli()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := insertImage(ctx, tx, c); err != nil {
		return nil, err
	}
	img, err := getImage(ctx, tx, c.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return img, nil
}

// insertImage writes c and its links inside tx. ID and CreatedAt must be set.
func insertImage(ctx context.Context, tx *sqlx.Tx, c CreateImage) error {
	seq, err := nextSeq(ctx, tx, "images")
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO images (id, title_en, title_tr, alt_en, alt_tr, home, position, image_path, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), c.ID, c.Title.EN, c.Title.TR, c.Alt.EN, c.Alt.TR, boolInt(c.Home), c.Position, c.ImagePath, c.CreatedAt, seq)
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	if err := imageCategories.Replace(ctx, tx, c.ID, c.CategoryIDs); err != nil {
		return err
	}
	return imageReferences.Replace(ctx, tx, c.ID, c.ReferenceIDs)
}

// Get returns the image with id and its links, or ErrNotFound.
func (s *ImageStore) Get(ctx context.Context, id string) (*Image, error) {
	return getImage(ctx, s.db, id)
}

func getImage(ctx context.Context, q queryer, id string) (*Image, error) {
	var r imageRow
	err := sqlx.GetContext(ctx, q, &r, q.Rebind(`SELECT `+imageColumns+` FROM images WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	cats, err := imageCategories.Members(ctx, q, id)
	if err != nil {
		return nil, err
	}
	refs, err := imageReferences.Members(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return r.toImage(cats, refs), nil
}

// List returns every image, newest first. Images sharing a created_at keep
// the reverse of their insertion order.
func (s *ImageStore) List(ctx context.Context) ([]*Image, error) {
	var rows []imageRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+imageColumns+` FROM images ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	cats, err := imageCategories.All(ctx, s.db)
	if err != nil {
		return nil, err
	}
	refs, err := imageReferences.All(ctx, s.db)
	if err != nil {
		return nil, err
	}
	out := make([]*Image, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toImage(cats[r.ID], refs[r.ID]))
	}
	return out, nil
}

// Update applies u to the image with id, replacing link sets that are set.
func (s *ImageStore) Update(ctx context.Context, id string, u UpdateImage) (*Image, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cur, err := getImage(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	title := locale.NewBundle(u.TitleEN.Get(cur.Title.EN), u.TitleTR.Get(cur.Title.TR))
	alt := locale.NewBundle(u.AltEN.Get(cur.Alt.EN), u.AltTR.Get(cur.Alt.TR))
	_, err = tx.ExecContext(ctx, tx.Rebind(`
		UPDATE images
		SET title_en = ?, title_tr = ?, alt_en = ?, alt_tr = ?, home = ?, position = ?, image_path = ?
		WHERE id = ?
	`), title.EN, title.TR, alt.EN, alt.TR,
		boolInt(u.Home.Get(cur.Home)), u.Position.Get(cur.Position), u.ImagePath.Get(cur.ImagePath), id)
	if err != nil {
		return nil, fmt.Errorf("update image: %w", err)
	}
	if u.CategoryIDs.Set {
		if err := imageCategories.Replace(ctx, tx, id, u.CategoryIDs.Value); err != nil {
			return nil, err
		}
	}
	if u.ReferenceIDs.Set {
		if err := imageReferences.Replace(ctx, tx, id, u.ReferenceIDs.Value); err != nil {
			return nil, err
		}
	}

	img, err := getImage(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return img, nil
}

// Delete removes the image and every link row that mentions it. Deleting a
// missing id is not an error.
func (s *ImageStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := imageCategories.RemoveOwner(ctx, tx, id); err != nil {
		return err
	}
	if err := imageReferences.RemoveOwner(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM images WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return tx.Commit()
}
