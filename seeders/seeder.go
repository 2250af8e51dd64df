package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries fills hospitals and categories. Existing rows are matched
// by name and left untouched.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  seeding dictionaries...")

	if err := seedLocations(ctx, db); err != nil {
		log.Fatalf("❌ failed to seed locations: %v", err)
	}
	if err := seedCategories(ctx, db); err != nil {
		log.Fatalf("❌ failed to seed categories: %v", err)
	}
	log.Println("✅ dictionaries seeded")
}

// SeedEquipment registers the demo equipment fleet. Rows conflict on
// equipment_code and are skipped when already present.
func SeedEquipment(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  seeding equipment...")

	if err := seedEquipment(ctx, db); err != nil {
		log.Fatalf("❌ failed to seed equipment: %v", err)
	}
	log.Println("✅ equipment seeded")
}

func seedLocations(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - filling 'locations'...")

	query := `INSERT INTO locations (name, address, contact_number)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (SELECT 1 FROM locations WHERE name = $1)`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, l := range locationsData {
		if _, err := tx.Exec(ctx, query, l.Name, l.Address, l.ContactNumber); err != nil {
			log.Printf("failed to insert location %q: %v", l.Name, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedCategories(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - filling 'categories'...")

	query := `INSERT INTO categories (name, description, color, icon)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (SELECT 1 FROM categories WHERE name = $1)`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, c := range categoriesData {
		if _, err := tx.Exec(ctx, query, c.Name, c.Description, c.Color, c.Icon); err != nil {
			log.Printf("failed to insert category %q: %v", c.Name, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - filling 'equipment'...")

	query := `INSERT INTO equipment (equipment_code, name, category_id, location_id, manufacturer, model_number)
		VALUES (
			$1, $2,
			(SELECT id FROM categories WHERE name = $3),
			(SELECT id FROM locations WHERE name = $4),
			$5, $6
		)
		ON CONFLICT (equipment_code) DO NOTHING`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, e := range equipmentData {
		if _, err := tx.Exec(ctx, query, e.EquipmentCode, e.Name, e.Category, e.Location, e.Manufacturer, e.ModelNumber); err != nil {
			log.Printf("failed to insert equipment %q: %v", e.EquipmentCode, err)
			return err
		}
	}
	return tx.Commit(ctx)
}
