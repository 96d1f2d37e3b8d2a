package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/4liaghaie/sait/internal/locale"
)

const (
	aboutID = "about"
	logoID  = "logo"
)

// About is the singleton about-page text.
type About struct {
	ID        string
	Content   locale.Bundle
	UpdatedAt int64
}

// MarshalJSON emits the row shape the admin client reads back.
func (a About) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string `json:"id"`
		ContentEN string `json:"content_en"`
		ContentTR string `json:"content_tr"`
		UpdatedAt int64  `json:"updated_at"`
	}{a.ID, a.Content.EN, a.Content.TR, a.UpdatedAt})
}

// Logo is the singleton site logo.
type Logo struct {
	ID        string
	ImagePath string
	Alt       locale.Bundle
	UpdatedAt int64
}

// MarshalJSON emits the row shape the admin client reads back.
func (l Logo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string `json:"id"`
		ImgPath   string `json:"img_path"`
		AltEN     string `json:"alt_en"`
		AltTR     string `json:"alt_tr"`
		UpdatedAt int64  `json:"updated_at"`
	}{l.ID, l.ImagePath, l.Alt.EN, l.Alt.TR, l.UpdatedAt})
}

// UpdateAbout holds per-language partial updates to the about text.
type UpdateAbout struct {
	ContentEN Optional[string]
	ContentTR Optional[string]
}

// UpdateLogo holds partial updates to the logo.
type UpdateLogo struct {
	ImagePath Optional[string]
	AltEN     Optional[string]
	AltTR     Optional[string]
}

type aboutRow struct {
	ID        string `db:"id"`
	ContentEN string `db:"content_en"`
	ContentTR string `db:"content_tr"`
	UpdatedAt int64  `db:"updated_at"`
}

type logoRow struct {
	ID        string `db:"id"`
	ImgPath   string `db:"img_path"`
	AltEN     string `db:"alt_en"`
	AltTR     string `db:"alt_tr"`
	UpdatedAt int64  `db:"updated_at"`
}

// ContentStore reads and writes the about and logo singletons.
type ContentStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db, now: time.Now}
}

// GetAbout returns the about singleton.
func (s *ContentStore) GetAbout(ctx context.Context) (*About, error) {
	return getAbout(ctx, s.db)
}

func getAbout(ctx context.Context, q queryer) (*About, error) {
	var r aboutRow
	err := sqlx.GetContext(ctx, q, &r, q.Rebind(
		`SELECT id, content_en, content_tr, updated_at FROM about WHERE id = ?`), aboutID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get about: %w", err)
	}
	return &About{ID: r.ID, Content: locale.NewBundle(r.ContentEN, r.ContentTR), UpdatedAt: r.UpdatedAt}, nil
}

// UpdateAbout applies u and refreshes UpdatedAt.
func (s *ContentStore) UpdateAbout(ctx context.Context, u UpdateAbout) (*About, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cur, err := getAbout(ctx, tx)
	if err != nil {
		return nil, err
	}
	next := About{
		ID:        aboutID,
		Content:   locale.NewBundle(u.ContentEN.Get(cur.Content.EN), u.ContentTR.Get(cur.Content.TR)),
		UpdatedAt: s.now().UnixMilli(),
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(
		`UPDATE about SET content_en = ?, content_tr = ?, updated_at = ? WHERE id = ?`),
		next.Content.EN, next.Content.TR, next.UpdatedAt, aboutID)
	if err != nil {
		return nil, fmt.Errorf("update about: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &next, nil
}

// GetLogo returns the logo singleton.
func (s *ContentStore) GetLogo(ctx context.Context) (*Logo, error) {
	return getLogo(ctx, s.db)
}

func getLogo(ctx context.Context, q queryer) (*Logo, error) {
	var r logoRow
	err := sqlx.GetContext(ctx, q, &r, q.Rebind(
		`SELECT id, img_path, alt_en, alt_tr, updated_at FROM logo WHERE id = ?`), logoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get logo: %w", err)
	}
	return &Logo{ID: r.ID, ImagePath: r.ImgPath, Alt: locale.NewBundle(r.AltEN, r.AltTR), UpdatedAt: r.UpdatedAt}, nil
}

// UpdateLogo applies u and refreshes UpdatedAt.
func (s *ContentStore) UpdateLogo(ctx context.Context, u UpdateLogo) (*Logo, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cur, err := getLogo(ctx, tx)
	if err != nil {
		return nil, err
	}
	next := Logo{
		ID:        logoID,
		ImagePath: u.ImagePath.Get(cur.ImagePath),
		Alt:       locale.NewBundle(u.AltEN.Get(cur.Alt.EN), u.AltTR.Get(cur.Alt.TR)),
		UpdatedAt: s.now().UnixMilli(),
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(
		`UPDATE logo SET img_path = ?, alt_en = ?, alt_tr = ?, updated_at = ? WHERE id = ?`),
		next.ImagePath, next.Alt.EN, next.Alt.TR, next.UpdatedAt, logoID)
	if err != nil {
		return nil, fmt.Errorf("update logo: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &next, nil
}
