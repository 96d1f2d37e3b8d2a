package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/4liaghaie/sait/internal/locale"
)

// Category groups images on the public site.
type Category struct {
	ID          string        `json:"id"`
	Title       locale.Bundle `json:"title"`
	Description locale.Bundle `json:"description"`
	Position    int           `json:"position"`
	IsActive    bool          `json:"is_active"`
}

// CreateCategory is the input to CategoryStore.Create. An empty ID gets a
// generated UUID.
type CreateCategory struct {
	ID          string
	Title       locale.Bundle
	Description locale.Bundle
	Position    int
	IsActive    bool
}

// UpdateCategory carries per-field partial updates.
type UpdateCategory struct {
	TitleEN       Optional[string]
	TitleTR       Optional[string]
	DescriptionEN Optional[string]
	DescriptionTR Optional[string]
	Position      Optional[int]
	IsActive      Optional[bool]
}

type categoryRow struct {
	ID            string `db:"id"`
	TitleEN       string `db:"title_en"`
	TitleTR       string `db:"title_tr"`
	DescriptionEN string `db:"description_en"`
	DescriptionTR string `db:"description_tr"`
	Position      int    `db:"position"`
	IsActive      bool   `db:"is_active"`
}

func (r categoryRow) toCategory() *Category {
	return &Category{
		ID:          r.ID,
		Title:       locale.NewBundle(r.TitleEN, r.TitleTR),
		Description: locale.NewBundle(r.DescriptionEN, r.DescriptionTR),
		Position:    r.Position,
		IsActive:    r.IsActive,
	}
}

const categoryColumns = `id, title_en, title_tr, description_en, description_tr, position, is_active`

// CategoryStore is the sqlx-backed category repository.
type CategoryStore struct {
	db *sqlx.DB
}

func NewCategoryStore(db *sqlx.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a category.
func (s *CategoryStore) Create(ctx context.Context, c CreateCategory) (*Category, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := insertCategory(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Category{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		IsActive:    c.IsActive,
	}, nil
}

// insertCategory writes c, whose ID is already set, inside tx.
func insertCategory(ctx context.Context, tx *sqlx.Tx, c CreateCategory) error {
	seq, err := nextSeq(ctx, tx, "categories")
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO categories (id, title_en, title_tr, description_en, description_tr, position, is_active, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), c.ID, c.Title.EN, c.Title.TR, c.Description.EN, c.Description.TR, c.Position, boolInt(c.IsActive), seq)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Get returns the category with id, or ErrNotFound.
func (s *CategoryStore) Get(ctx context.Context, id string) (*Category, error) {
	return getCategory(ctx, s.db, id)
}

func getCategory(ctx context.Context, q queryer, id string) (*Category, error) {
	var r categoryRow
	err := sqlx.GetContext(ctx, q, &r, q.Rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return r.toCategory(), nil
}

// List returns every category in insertion order.
func (s *CategoryStore) List(ctx context.Context) ([]*Category, error) {
	var rows []categoryRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+categoryColumns+` FROM categories ORDER BY seq ASC`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]*Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toCategory())
	}
	return out, nil
}

// Update applies u to the category with id. Unset fields keep their values.
func (s *CategoryStore) Update(ctx context.Context, id string, u UpdateCategory) (*Category, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cur, err := getCategory(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	next := &Category{
		ID:          id,
		Title:       locale.NewBundle(u.TitleEN.Get(cur.Title.EN), u.TitleTR.Get(cur.Title.TR)),
		Description: locale.NewBundle(u.DescriptionEN.Get(cur.Description.EN), u.DescriptionTR.Get(cur.Description.TR)),
		Position:    u.Position.Get(cur.Position),
		IsActive:    u.IsActive.Get(cur.IsActive),
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(`
		UPDATE categories
		SET title_en = ?, title_tr = ?, description_en = ?, description_tr = ?, position = ?, is_active = ?
		WHERE id = ?
	`), next.Title.EN, next.Title.TR, next.Description.EN, next.Description.TR, next.Position, boolInt(next.IsActive), id)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return next, nil
}

// Delete removes the category and its image links. Deleting a missing id is
// not an error.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := imageCategories.RemoveMember(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM categories WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return tx.Commit()
}
