package store

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE locations (
	location_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	location_type TEXT,
	water_body_name TEXT,
	access_type TEXT,
	parking_available INTEGER,
	boat_ramp INTEGER,
	shore_fishing INTEGER,
	rating REAL
);`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	// a second pool connection would see a different in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return New(db)
}

func seedLocation(t *testing.T, s *Store, name string, lat, lon float64) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO locations (name, latitude, longitude, location_type) VALUES (?, ?, ?, 'pier')`,
		name, lat, lon)
	if err != nil {
		t.Fatalf("seeding location %v: %v", name, err)
	}
}

func TestQueryRadius(t *testing.T) {
	s := newTestStore(t)

	centerLat, centerLon := 40.7128, -74.0060
	seedLocation(t, s, "Center Pier", centerLat, centerLon)
	seedLocation(t, s, "North Jetty", centerLat+0.1, centerLon)   // ~6.9 mi
	seedLocation(t, s, "East Bank", centerLat, centerLon+1)       // ~52.4 mi
	seedLocation(t, s, "Far Reef", centerLat+2, centerLon)        // ~138 mi

	tests := []struct {
		name      string
		radius    float64
		wantNames []string
	}{
		{"tight radius", 1, []string{"Center Pier"}},
		{"ten miles", 10, []string{"Center Pier", "North Jetty"}},
		{"sixty miles", 60, []string{"Center Pier", "North Jetty", "East Bank"}},
		{"everything", 200, []string{"Center Pier", "North Jetty", "East Bank", "Far Reef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.QueryRadius(context.Background(), centerLat, centerLon, tt.radius)
			if err != nil {
				t.Fatalf("QueryRadius() error = %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("QueryRadius() returned %d locations, want %d", len(got), len(tt.wantNames))
			}
			for i, loc := range got {
				if loc.Name != tt.wantNames[i] {
					t.Errorf("result[%d] = %v, want %v", i, loc.Name, tt.wantNames[i])
				}
				if loc.Distance > tt.radius {
					t.Errorf("result[%d] distance %v exceeds radius %v", i, loc.Distance, tt.radius)
				}
				if i > 0 && got[i-1].Distance > loc.Distance {
					t.Errorf("results not sorted by distance: %v before %v", got[i-1].Distance, loc.Distance)
				}
			}
		})
	}
}

func TestQueryRadiusNoMatches(t *testing.T) {
	s := newTestStore(t)
	seedLocation(t, s, "Center Pier", 40.7128, -74.0060)

	got, err := s.QueryRadius(context.Background(), -33.8688, 151.2093, 10)
	if err != nil {
		t.Fatalf("QueryRadius() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("QueryRadius() = %v, want empty result", got)
	}
}

func TestQueryRadiusNullColumns(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec(
		`INSERT INTO locations (name, latitude, longitude) VALUES ('Bare Spot', 40.7128, -74.0060)`); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	got, err := s.QueryRadius(context.Background(), 40.7128, -74.0060, 5)
	if err != nil {
		t.Fatalf("QueryRadius() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("QueryRadius() returned %d locations, want 1", len(got))
	}
	if got[0].Description != "" || got[0].AccessType != "" {
		t.Errorf("null columns should scan as empty strings, got %+v", got[0])
	}
}

func TestCountLocations(t *testing.T) {
	s := newTestStore(t)
	seedLocation(t, s, "A", 1, 1)
	seedLocation(t, s, "B", 2, 2)

	count, err := s.CountLocations(context.Background())
	if err != nil {
		t.Fatalf("CountLocations() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountLocations() = %d, want 2", count)
	}
}
