package store

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/evanhutnik/castcheck-service/internal/geo"
	t "github.com/evanhutnik/castcheck-service/internal/types"
)

// Store is a read-only view of the location database. The schema is owned
// by the import tooling; this pipeline never writes.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening location database %v: %w", path, err)
	}
	return New(db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Several columns are nullable in the import schema.
const locationColumns = `
	location_id, name,
	COALESCE(description, '') AS description,
	latitude, longitude,
	COALESCE(location_type, '') AS location_type,
	COALESCE(water_body_name, '') AS water_body_name,
	COALESCE(access_type, '') AS access_type,
	COALESCE(parking_available, 0) AS parking_available,
	COALESCE(boat_ramp, 0) AS boat_ramp,
	COALESCE(shore_fishing, 0) AS shore_fishing,
	COALESCE(rating, 0) AS rating`

// QueryRadius returns every location within radiusMiles of the center,
// annotated with its distance and sorted ascending by distance. A bounding
// box narrows the scan in SQL; the exact haversine filter runs in-process
// so the distance engine stays the single source of truth.
func (s *Store) QueryRadius(ctx context.Context, lat float64, lon float64, radiusMiles float64) ([]t.Location, error) {
	// One degree of latitude is ~69 miles. The box is padded so only the
	// exact filter below excludes rows.
	latMargin := radiusMiles/69.0 + 0.01
	lonMargin := 360.0
	if c := math.Cos(lat * math.Pi / 180); c > 0.01 {
		lonMargin = radiusMiles/(69.0*c) + 0.01
	}

	candidates := []t.Location{}
	query := `SELECT ` + locationColumns + ` FROM locations
		WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?
		ORDER BY location_id`
	err := s.db.SelectContext(ctx, &candidates, query,
		lat-latMargin, lat+latMargin, lon-lonMargin, lon+lonMargin)
	if err != nil {
		return nil, fmt.Errorf("querying locations in bounds: %w", err)
	}

	matched := []t.Location{}
	for _, loc := range candidates {
		d := geo.Distance(lat, lon, loc.Latitude, loc.Longitude)
		if d <= radiusMiles {
			loc.Distance = d
			matched = append(matched, loc)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Distance < matched[j].Distance
	})
	return matched, nil
}

func (s *Store) CountLocations(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM locations`); err != nil {
		return 0, fmt.Errorf("counting locations: %w", err)
	}
	return count, nil
}
