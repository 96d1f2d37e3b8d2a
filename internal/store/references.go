package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/4liaghaie/sait/internal/locale"
)

// Reference is a client or brand entry with light and dark logos.
type Reference struct {
	ID            string
	Title         locale.Bundle
	Description   locale.Bundle
	Year          string
	LogoLightPath string
	LogoDarkPath  string
	ImageIDs      mapset.Set[string]
}

// MarshalJSON renders ImageIDs as a sorted id list.
func (r Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID            string        `json:"id"`
		Title         locale.Bundle `json:"title"`
		Description   locale.Bundle `json:"description"`
		Year          string        `json:"year"`
		LogoLightPath string        `json:"logoLightPath"`
		LogoDarkPath  string        `json:"logoDarkPath"`
		ImageIDs      []string      `json:"imageIds"`
	}{r.ID, r.Title, r.Description, r.Year, r.LogoLightPath, r.LogoDarkPath, SortedIDs(r.ImageIDs)})
}

// CreateReference is the input to ReferenceStore.Create.
type CreateReference struct {
	ID            string
	Title         locale.Bundle
	Description   locale.Bundle
	Year          string
	LogoLightPath string
	LogoDarkPath  string
	ImageIDs      mapset.Set[string]
}

// UpdateReference carries per-field partial updates.
type UpdateReference struct {
	TitleEN       Optional[string]
	TitleTR       Optional[string]
	DescriptionEN Optional[string]
	DescriptionTR Optional[string]
	Year          Optional[string]
	LogoLightPath Optional[string]
	LogoDarkPath  Optional[string]
	ImageIDs      Optional[mapset.Set[string]]
}

type referenceRow struct {
	ID            string `db:"id"`
	TitleEN       string `db:"title_en"`
	TitleTR       string `db:"title_tr"`
	DescriptionEN string `db:"description_en"`
	DescriptionTR string `db:"description_tr"`
	Year          string `db:"year"`
	LogoLightPath string `db:"logo_light_path"`
	LogoDarkPath  string `db:"logo_dark_path"`
}

func (r referenceRow) toReference(images mapset.Set[string]) *Reference {
	return &Reference{
		ID:            r.ID,
		Title:         locale.NewBundle(r.TitleEN, r.TitleTR),
		Description:   locale.NewBundle(r.DescriptionEN, r.DescriptionTR),
		Year:          r.Year,
		LogoLightPath: r.LogoLightPath,
		LogoDarkPath:  r.LogoDarkPath,
		ImageIDs:      setOrEmpty(images),
	}
}

const referenceColumns = `id, title_en, title_tr, description_en, description_tr, year, logo_light_path, logo_dark_path`

// ReferenceStore is the sqlx-backed reference repository.
type ReferenceStore struct {
	db *sqlx.DB
}

func NewReferenceStore(db *sqlx.DB) *ReferenceStore {
	return &ReferenceStore{db: db}
}

// Create inserts a reference and its image links in one transaction.
func (s *ReferenceStore) Create(ctx context.Context, c CreateReference) (*Reference, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := insertReference(ctx, tx, c); err != nil {
		return nil, err
	}
	ref, err := getReference(ctx, tx, c.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ref, nil
}

// insertReference writes c and its image links inside tx. ID must be set.
func insertReference(ctx context.Context, tx *sqlx.Tx, c CreateReference) error {
	seq, err := nextSeq(ctx, tx, "reference_items")
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO reference_items (id, title_en, title_tr, description_en, description_tr, year, logo_light_path, logo_dark_path, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), c.ID, c.Title.EN, c.Title.TR, c.Description.EN, c.Description.TR, c.Year, c.LogoLightPath, c.LogoDarkPath, seq)
	if err != nil {
		return fmt.Errorf("insert reference: %w", err)
	}
	return referenceImages.Replace(ctx, tx, c.ID, c.ImageIDs)
}

// Get returns the reference with id and its image links, or ErrNotFound.
func (s *ReferenceStore) Get(ctx context.Context, id string) (*Reference, error) {
	return getReference(ctx, s.db, id)
}

func getReference(ctx context.Context, q queryer, id string) (*Reference, error) {
	var r referenceRow
	err := sqlx.GetContext(ctx, q, &r, q.Rebind(`SELECT `+referenceColumns+` FROM reference_items WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reference: %w", err)
	}
	images, err := referenceImages.Members(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return r.toReference(images), nil
}

// List returns every reference in insertion order.
func (s *ReferenceStore) List(ctx context.Context) ([]*Reference, error) {
	var rows []referenceRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+referenceColumns+` FROM reference_items ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	images, err := referenceImages.All(ctx, s.db)
	if err != nil {
		return nil, err
	}
	out := make([]*Reference, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toReference(images[r.ID]))
	}
	return out, nil
}

// Update applies u to the reference with id, replacing the image set when set.
func (s *ReferenceStore) Update(ctx context.Context, id string, u UpdateReference) (*Reference, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cur, err := getReference(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	title := locale.NewBundle(u.TitleEN.Get(cur.Title.EN), u.TitleTR.Get(cur.Title.TR))
	desc := locale.NewBundle(u.DescriptionEN.Get(cur.Description.EN), u.DescriptionTR.Get(cur.Description.TR))
	_, err = tx.ExecContext(ctx, tx.Rebind(`
		UPDATE reference_items
		SET title_en = ?, title_tr = ?, description_en = ?, description_tr = ?, year = ?, logo_light_path = ?, logo_dark_path = ?
		WHERE id = ?
	`), title.EN, title.TR, desc.EN, desc.TR, u.Year.Get(cur.Year),
		u.LogoLightPath.Get(cur.LogoLightPath), u.LogoDarkPath.Get(cur.LogoDarkPath), id)
	if err != nil {
		return nil, fmt.Errorf("update reference: %w", err)
	}
	if u.ImageIDs.Set {
		if err := referenceImages.Replace(ctx, tx, id, u.ImageIDs.Value); err != nil {
			return nil, err
		}
	}

	ref, err := getReference(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ref, nil
}

// Delete removes the reference and its image links. Deleting a missing id is
// not an error.
func (s *ReferenceStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := referenceImages.RemoveOwner(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM reference_items WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete reference: %w", err)
	}
	return tx.Commit()
}
