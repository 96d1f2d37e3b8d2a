package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upSeedSingletons, downSeedSingletons)
}

const (
	welcomeEN = "<p>Welcome to your bilingual portfolio backend. Use the admin panel to replace this copy with your own story.</p>"
	welcomeTR = "<p>Çift dilli portföy backend'inize hoş geldiniz. Bu metni kendi hikayenizle değiştirmek için yönetim panelini kullanın.</p>"
)

// upSeedSingletons guarantees the about and logo rows exist so reads never
// have to handle their absence.
func upSeedSingletons(ctx context.Context, tx *sql.Tx) error {
	now := time.Now().UnixMilli()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM about WHERE id = 'about'`).Scan(&n); err != nil {
		return fmt.Errorf("count about: %w", err)
	}
	if n == 0 {
		_, err := tx.ExecContext(ctx, bind(`INSERT INTO about (id, content_en, content_tr, updated_at) VALUES ('about', ?, ?, ?)`),
			welcomeEN, welcomeTR, now)
		if err != nil {
			return fmt.Errorf("seed about: %w", err)
		}
	}

	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM logo WHERE id = 'logo'`).Scan(&n); err != nil {
		return fmt.Errorf("count logo: %w", err)
	}
	if n == 0 {
		_, err := tx.ExecContext(ctx, bind(`INSERT INTO logo (id, img_path, alt_en, alt_tr, updated_at) VALUES ('logo', '', ?, ?, ?)`),
			"Portfolio logo", "Portföy logosu", now)
		if err != nil {
			return fmt.Errorf("seed logo: %w", err)
		}
	}
	return nil
}

func downSeedSingletons(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM logo WHERE id = 'logo'`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM about WHERE id = 'about'`)
	return err
}
