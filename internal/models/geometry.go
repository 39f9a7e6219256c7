package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Point is a GeoJSON Point used to store listing coordinates in PostGIS.
// GeoJSON orders positions as [lng, lat]; SRID 4326 (WGS84) is assumed.
type Point struct {
	Coordinates *Coordinates
	SRID        int
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Scan implements sql.Scanner for reading ST_AsGeoJSON output.
// A NULL geometry leaves Coordinates nil.
func (p *Point) Scan(value interface{}) error {
	if value == nil {
		p.Coordinates = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan Point: expected []byte, got %T", value)
	}

	var geom geoJSONPoint
	if err := json.Unmarshal(raw, &geom); err != nil {
		return fmt.Errorf("failed to unmarshal point geometry: %w", err)
	}
	if geom.Type != "Point" {
		return fmt.Errorf("expected Point type, got %s", geom.Type)
	}

	p.Coordinates = &Coordinates{Lat: geom.Coordinates[1], Lng: geom.Coordinates[0]}
	p.SRID = 4326
	return nil
}

// Value implements driver.Valuer. It returns a GeoJSON string to be used with
// ST_GeomFromGeoJSON, or nil when no coordinates are set.
func (p Point) Value() (driver.Value, error) {
	if p.Coordinates == nil {
		return nil, nil
	}

	geoJSON, err := json.Marshal(geoJSONPoint{
		Type:        "Point",
		Coordinates: [2]float64{p.Coordinates.Lng, p.Coordinates.Lat},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal point to GeoJSON: %w", err)
	}
	return string(geoJSON), nil
}
