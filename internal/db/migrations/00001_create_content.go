package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateContent, downCreateContent)
}

var contentTables = []string{
	"reference_images",
	"image_categories",
	"reference_items",
	"images",
	"categories",
	"logo",
	"about",
}

func upCreateContent(ctx context.Context, tx *sql.Tx) error {
	r := strings.NewReplacer("{id}", idType(), "{text}", textType())
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS about (
    id         {id} PRIMARY KEY,
    content_en {text},
    content_tr {text},
    updated_at BIGINT NOT NULL DEFAULT 0
)`,
		`CREATE TABLE IF NOT EXISTS logo (
    id         {id} PRIMARY KEY,
    img_path   {text},
    alt_en     {text},
    alt_tr     {text},
    updated_at BIGINT NOT NULL DEFAULT 0
)`,
		`CREATE TABLE IF NOT EXISTS categories (
    id             {id} PRIMARY KEY,
    title_en       {text},
    title_tr       {text},
    description_en {text},
    description_tr {text},
    position       INTEGER NOT NULL DEFAULT 0,
    is_active      SMALLINT NOT NULL DEFAULT 1,
    seq            BIGINT NOT NULL DEFAULT 0
)`,
		`CREATE TABLE IF NOT EXISTS images (
    id         {id} PRIMARY KEY,
    title_en   {text},
    title_tr   {text},
    alt_en     {text},
    alt_tr     {text},
    home       SMALLINT NOT NULL DEFAULT 0,
    position   INTEGER NOT NULL DEFAULT 0,
    image_path {text},
    created_at BIGINT NOT NULL DEFAULT 0,
    seq        BIGINT NOT NULL DEFAULT 0
)`,
		`CREATE TABLE IF NOT EXISTS image_categories (
    image_id    {id} NOT NULL,
    category_id {id} NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS reference_items (
    id              {id} PRIMARY KEY,
    title_en        {text},
    title_tr        {text},
    description_en  {text},
    description_tr  {text},
    year            {text},
    logo_light_path {text},
    logo_dark_path  {text},
    seq             BIGINT NOT NULL DEFAULT 0
)`,
		`CREATE TABLE IF NOT EXISTS reference_images (
    reference_id {id} NOT NULL,
    image_id     {id} NOT NULL
)`,
		`CREATE INDEX idx_image_categories_image ON image_categories (image_id)`,
		`CREATE INDEX idx_image_categories_category ON image_categories (category_id)`,
		`CREATE INDEX idx_reference_images_reference ON reference_images (reference_id)`,
		`CREATE INDEX idx_reference_images_image ON reference_images (image_id)`,
		`CREATE INDEX idx_images_created ON images (created_at, seq)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("create content schema: %w", err)
		}
	}
	return nil
}

func downCreateContent(ctx context.Context, tx *sql.Tx) error {
	for _, table := range contentTables {
		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
