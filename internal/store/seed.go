package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/4liaghaie/sait/internal/locale"
)

// Seeder fills an empty catalog with placeholder content so a fresh install
// renders something.
type Seeder struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSeeder(db *sqlx.DB) *Seeder {
	return &Seeder{db: db, now: time.Now}
}

var sampleCategories = []CreateCategory{
	{
		ID:          "cat-architecture",
		Title:       locale.NewBundle("architecture", "mimari"),
		Description: locale.NewBundle("Built environments", "Yapılı çevreler"),
		Position:    1,
		IsActive:    true,
	},
	{
		ID:          "cat-portrait",
		Title:       locale.NewBundle("portraits", "portreler"),
		Description: locale.NewBundle("Character driven frames", "Karakter odaklı kareler"),
		Position:    2,
		IsActive:    true,
	},
}

var sampleImages = []CreateImage{
	{
		ID:          "img-sample-1",
		Title:       locale.NewBundle("Sunlit lines", "Güneşli çizgiler"),
		Alt:         locale.NewBundle("Architecture study", "Mimari çalışması"),
		Home:        true,
		Position:    1,
		ImagePath:   "https://images.unsplash.com/photo-1493238792000-8113da705763?auto=format&fit=crop&w=1200&q=80",
		CategoryIDs: NewIDSet("cat-architecture"),
	},
	{
		ID:          "img-sample-2",
		Title:       locale.NewBundle("Soft portrait", "Yumuşak portre"),
		Alt:         locale.NewBundle("Portrait study", "Portre çalışması"),
		Home:        true,
		Position:    2,
		ImagePath:   "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=1200&q=80",
		CategoryIDs: NewIDSet("cat-portrait"),
	},
}

var sampleReference = CreateReference{
	ID:          "ref-sample",
	Title:       locale.NewBundle("Sample brand", "Örnek marka"),
	Description: locale.NewBundle("Demo reference entry. Replace via admin.", "Demo referans kaydı. Yönetim panelinden değiştirin."),
	Year:        "2024",
	ImageIDs:    NewIDSet("img-sample-2"),
}

// SeedSamples inserts the sample categories, images and reference when the
// catalog holds no category, image or reference. Everything is written in
// one transaction. It reports whether anything was written.
func (s *Seeder) SeedSamples(ctx context.Context) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for _, table := range []string{"categories", "images", "reference_items"} {
		var n int
		if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table); err != nil {
			return false, fmt.Errorf("count %s: %w", table, err)
		}
		if n > 0 {
			return false, nil
		}
	}

	for _, c := range sampleCategories {
		if err := insertCategory(ctx, tx, c); err != nil {
			return false, fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}
	createdAt := s.now().UnixMilli()
	for _, img := range sampleImages {
		img.CreatedAt = createdAt
		if err := insertImage(ctx, tx, img); err != nil {
			return false, fmt.Errorf("seed image %s: %w", img.ID, err)
		}
	}
	if err := insertReference(ctx, tx, sampleReference); err != nil {
		return false, fmt.Errorf("seed reference: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
