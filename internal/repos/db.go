package repos

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Demo user + sample log (idempotent; safe to run every start)
	if err := seedDemo(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- One row per logged purchase, owned by exactly one user.
CREATE TABLE IF NOT EXISTS drinks(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  series TEXT NOT NULL CHECK (series IN ('Normal','Ultra','Juice','Reserve','Special')),
  volume_ml INTEGER NOT NULL CHECK (volume_ml > 0),
  cost NUMERIC NOT NULL CHECK (cost >= 0),
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  notes TEXT,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_drinks_user       ON drinks(user_id);
CREATE INDEX IF NOT EXISTS idx_drinks_created_at ON drinks(created_at);
CREATE INDEX IF NOT EXISTS idx_drinks_name       ON drinks(LOWER(name));

CREATE TABLE IF NOT EXISTS can_images(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  can_name TEXT NOT NULL,
  series TEXT NOT NULL,
  image_url TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, can_name, series)
);
CREATE INDEX IF NOT EXISTS idx_can_images_user ON can_images(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedDemo ensures a demo account with a few logged drinks exists.
func seedDemo(db *sqlx.DB) error {
	h, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO users(id,email,name,password_hash)
		VALUES('u-demo','demo@cantrack.test','Demo',?)
		ON CONFLICT(email) DO NOTHING
	`, string(h)); err != nil {
		return err
	}

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM drinks WHERE user_id='u-demo'`); err != nil {
		return err
	}
	if n > 0 {
		return tx.Commit()
	}

	log.Println("[seed] inserting demo drinks for u-demo")
	now := time.Now().UTC()
	seed := []struct {
		name, series string
		vol          int
		cost         float64
		rating       int
		daysAgo      int
	}{
		{"Monster Energy", "Normal", 500, 2.99, 4, 6},
		{"Monster Ultra White", "Ultra", 500, 3.49, 5, 4},
		{"Monster Juice Mango Loco", "Juice", 473, 3.99, 3, 2},
		{"Monster Energy", "Normal", 500, 2.99, 4, 1},
	}
	for _, d := range seed {
		ts := now.AddDate(0, 0, -d.daysAgo).Format(time.RFC3339)
		if _, err := tx.Exec(`
			INSERT INTO drinks(id,user_id,name,series,volume_ml,cost,rating,notes,created_at)
			VALUES(?,?,?,?,?,?,?,NULL,?)
		`, uuid.NewString(), "u-demo", d.name, d.series, d.vol, d.cost, d.rating, ts); err != nil {
			return err
		}
	}

	return tx.Commit()
}
