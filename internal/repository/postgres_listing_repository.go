package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/database"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/jackc/pgx/v5"
)

const listingColumns = `
	id,
	title,
	price,
	address,
	city,
	state,
	zip_code,
	property_type,
	bedrooms,
	bathrooms,
	square_feet,
	year_built,
	description,
	images,
	amenities,
	ST_AsGeoJSON(geom) AS geometry,
	listing_date`

// postgresListingRepository stores listings in PostgreSQL with a PostGIS point column.
type postgresListingRepository struct {
	db *database.Database
}

// NewPostgresListingRepository creates a ListingRepository backed by PostgreSQL.
func NewPostgresListingRepository(db *database.Database) ListingRepository {
	return &postgresListingRepository{
		db: db,
	}
}

// scanListing reads one row selected with listingColumns.
func scanListing(row pgx.Row) (models.Listing, error) {
	var l models.Listing
	var propertyType string
	var geomJSON *string

	err := row.Scan(
		&l.ID,
		&l.Title,
		&l.Price,
		&l.Address,
		&l.City,
		&l.State,
		&l.ZipCode,
		&propertyType,
		&l.Bedrooms,
		&l.Bathrooms,
		&l.SquareFeet,
		&l.YearBuilt,
		&l.Description,
		&l.Images,
		&l.Amenities,
		&geomJSON,
		&l.ListingDate,
	)
	if err != nil {
		return l, err
	}
	l.PropertyType = models.PropertyType(propertyType)

	if geomJSON != nil {
		var p models.Point
		if err := p.Scan(*geomJSON); err != nil {
			return l, fmt.Errorf("failed to parse geometry for listing %d: %w", l.ID, err)
		}
		l.Coordinates = p.Coordinates
	}
	return l, nil
}

// geomParam converts coordinates into a GeoJSON parameter for ST_GeomFromGeoJSON.
func geomParam(c *models.Coordinates) (*string, error) {
	v, err := models.Point{Coordinates: c}.Value()
	if err != nil || v == nil {
		return nil, err
	}
	s := v.(string)
	return &s, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *postgresListingRepository) GetAll(ctx context.Context) ([]models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listing rows: %w", err)
	}
	return listings, nil
}

func (r *postgresListingRepository) GetByID(ctx context.Context, id int) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query listing %d: %w", id, err)
	}
	return &l, nil
}

func (r *postgresListingRepository) Create(ctx context.Context, listing models.Listing) (*models.Listing, error) {
	geom, err := geomParam(listing.Coordinates)
	if err != nil {
		return nil, err
	}

	// PostGIS expects (lng, lat) order; the GeoJSON parameter already carries it.
	query := `
		INSERT INTO listings (
			title, price, address, city, state, zip_code, property_type,
			bedrooms, bathrooms, square_feet, year_built, description,
			images, amenities, geom, listing_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			ST_SetSRID(ST_GeomFromGeoJSON($15), 4326), NOW()
		)
		RETURNING ` + listingColumns

	created, err := scanListing(r.db.Pool.QueryRow(ctx, query,
		listing.Title,
		listing.Price,
		listing.Address,
		listing.City,
		listing.State,
		listing.ZipCode,
		string(listing.PropertyType),
		listing.Bedrooms,
		listing.Bathrooms,
		listing.SquareFeet,
		listing.YearBuilt,
		listing.Description,
		nonNil(listing.Images),
		nonNil(listing.Amenities),
		geom,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	return &created, nil
}

// Update reads the row under lock, applies the patch in Go, and writes the
// merged listing back in the same transaction.
func (r *postgresListingRepository) Update(ctx context.Context, id int, patch models.ListingPatch) (*models.Listing, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	current, err := scanListing(tx.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load listing %d: %w", id, err)
	}

	merged := patch.Apply(current)
	geom, err := geomParam(merged.Coordinates)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE listings SET
			title = $2, price = $3, address = $4, city = $5, state = $6,
			zip_code = $7, property_type = $8, bedrooms = $9, bathrooms = $10,
			square_feet = $11, year_built = $12, description = $13,
			images = $14, amenities = $15,
			geom = ST_SetSRID(ST_GeomFromGeoJSON($16), 4326)
		WHERE id = $1
		RETURNING ` + listingColumns

	updated, err := scanListing(tx.QueryRow(ctx, query,
		id,
		merged.Title,
		merged.Price,
		merged.Address,
		merged.City,
		merged.State,
		merged.ZipCode,
		string(merged.PropertyType),
		merged.Bedrooms,
		merged.Bathrooms,
		merged.SquareFeet,
		merged.YearBuilt,
		merged.Description,
		nonNil(merged.Images),
		nonNil(merged.Amenities),
		geom,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update listing %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit listing update: %w", err)
	}
	return &updated, nil
}

func (r *postgresListingRepository) Delete(ctx context.Context, id int) (*models.Listing, error) {
	query := `DELETE FROM listings WHERE id = $1 RETURNING ` + listingColumns

	deleted, err := scanListing(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete listing %d: %w", id, err)
	}
	return &deleted, nil
}

func (r *postgresListingRepository) GetNeighborhoodStats(ctx context.Context, id int) (*models.NeighborhoodStats, error) {
	l, err := r.GetByID(ctx, id)
	if err != nil || l == nil {
		return nil, err
	}
	stats := NeighborhoodFor(*l)
	return &stats, nil
}
