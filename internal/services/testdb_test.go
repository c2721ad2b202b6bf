package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"cantrack/internal/domain"
)

// newTestDB opens an in-memory database with the minimal tables the
// service under test touches.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE drinks(
	  id TEXT PRIMARY KEY,
	  user_id TEXT NOT NULL,
	  name TEXT NOT NULL,
	  series TEXT NOT NULL,
	  volume_ml INTEGER NOT NULL,
	  cost NUMERIC NOT NULL,
	  rating INTEGER NOT NULL,
	  notes TEXT,
	  created_at TEXT NOT NULL
	);
	CREATE TABLE can_images(
	  id TEXT PRIMARY KEY,
	  user_id TEXT NOT NULL,
	  can_name TEXT NOT NULL,
	  series TEXT NOT NULL,
	  image_url TEXT NOT NULL,
	  created_at TEXT,
	  UNIQUE(user_id, can_name, series)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func mkDrink(id, name, series string, cost float64, rating int, createdAt string) domain.Drink {
	return domain.Drink{
		ID:        id,
		UserID:    "u1",
		Name:      name,
		Series:    series,
		VolumeML:  500,
		Cost:      cost,
		Rating:    rating,
		CreatedAt: createdAt,
	}
}

func canImage(userID, name, series, url string) domain.CanImage {
	return domain.CanImage{ID: uuid.NewString(), UserID: userID, CanName: name, Series: series, ImageURL: url}
}
