package database

import (
	"context"
	"fmt"
)

// schema creates the listing and inquiry tables. Coordinates are stored as a
// PostGIS point; listing ids are serial so creates get max(id)+1 semantics.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,
	`CREATE TABLE IF NOT EXISTS listings (
		id            SERIAL PRIMARY KEY,
		title         TEXT NOT NULL,
		price         DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		address       TEXT NOT NULL DEFAULT '',
		city          TEXT NOT NULL DEFAULT '',
		state         TEXT NOT NULL DEFAULT '',
		zip_code      TEXT NOT NULL DEFAULT '',
		property_type TEXT NOT NULL,
		bedrooms      INTEGER NOT NULL DEFAULT 0 CHECK (bedrooms >= 0),
		bathrooms     DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (bathrooms >= 0),
		square_feet   INTEGER NOT NULL DEFAULT 0 CHECK (square_feet >= 0),
		year_built    INTEGER NOT NULL DEFAULT 0,
		description   TEXT NOT NULL DEFAULT '',
		images        TEXT[] NOT NULL DEFAULT '{}',
		amenities     TEXT[] NOT NULL DEFAULT '{}',
		geom          geometry(Point, 4326),
		listing_date  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id             BIGSERIAL PRIMARY KEY,
		reference      UUID NOT NULL UNIQUE,
		listing_id     INTEGER,
		property_title TEXT NOT NULL DEFAULT '',
		property_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		name           TEXT NOT NULL,
		email          TEXT NOT NULL,
		phone          TEXT NOT NULL DEFAULT '',
		subject        TEXT NOT NULL DEFAULT '',
		message        TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_listing_date ON listings (listing_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_geom ON listings USING GIST (geom)`,
}

// EnsureSchema creates the tables the service needs if they do not exist.
func (db *Database) EnsureSchema(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
