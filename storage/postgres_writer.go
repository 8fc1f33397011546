package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"traveldeals/models"

	_ "github.com/lib/pq"
)

// PostgresWriter persists merged hotel records for cross-run comparison.
// It is optional: the pipeline's interchange format stays flat JSON files.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection and pings the DB.
func NewPostgresWriter(connStr string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	log.Info().Msg("connected to PostgreSQL")
	return &PostgresWriter{db: db}, nil
}

// CreateTable creates the merged_hotels table if it doesn't exist, with indexes
func (w *PostgresWriter) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS merged_hotels (
		id            SERIAL PRIMARY KEY,
		name          TEXT         NOT NULL,
		city          TEXT,
		source        VARCHAR(50)  NOT NULL,
		stars         INT,
		google_rating NUMERIC(3,1),
		review_count  INT,
		price_min     NUMERIC(10,2),
		price_max     NUMERIC(10,2),
		price_avg     NUMERIC(10,2),
		package_count INT          NOT NULL DEFAULT 0,
		merged_at     TIMESTAMP    NOT NULL DEFAULT NOW(),
		UNIQUE (name, source)
	);

	CREATE INDEX IF NOT EXISTS idx_merged_hotels_city   ON merged_hotels (city);
	CREATE INDEX IF NOT EXISTS idx_merged_hotels_rating ON merged_hotels (google_rating);
	CREATE INDEX IF NOT EXISTS idx_merged_hotels_price  ON merged_hotels (price_min);
	`
	if _, err := w.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	log.Info().Msg("table 'merged_hotels' is ready")
	return nil
}

// BatchUpsert writes merged hotels in a single transaction, replacing the
// previous record for a (name, source) pair. Per-row failures are skipped.
func (w *PostgresWriter) BatchUpsert(hotels []models.HotelData) error {
	if len(hotels) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO merged_hotels
			(name, city, source, stars, google_rating, review_count,
			 price_min, price_max, price_avg, package_count, merged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (name, source) DO UPDATE SET
			city = EXCLUDED.city,
			stars = EXCLUDED.stars,
			google_rating = EXCLUDED.google_rating,
			review_count = EXCLUDED.review_count,
			price_min = EXCLUDED.price_min,
			price_max = EXCLUDED.price_max,
			price_avg = EXCLUDED.price_avg,
			package_count = EXCLUDED.package_count,
			merged_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, h := range hotels {
		_, err = stmt.Exec(
			h.Name,
			h.City,
			h.Source,
			h.Stars,
			h.GoogleRating,
			h.ReviewCount,
			h.PriceRange.Min,
			h.PriceRange.Max,
			h.PriceRange.Avg,
			len(h.Packages),
		)
		if err != nil {
			log.Warn().Err(err).Str("hotel", h.Name).Msg("skipping db upsert")
			err = nil
			continue
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info().Int("inserted", inserted).Int("total", len(hotels)).
		Msg("merged hotels stored in PostgreSQL")
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() {
	if w.db != nil {
		_ = w.db.Close()
	}
}
