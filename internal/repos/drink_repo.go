package repos

import (
	"strings"

	"cantrack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type DrinkRepo struct{ db *sqlx.DB }

func NewDrinkRepo(db *sqlx.DB) *DrinkRepo { return &DrinkRepo{db: db} }

// DrinkFilters narrows List results. Zero values mean "no filter".
type DrinkFilters struct {
	Search   string // case-insensitive substring on name
	Series   string // exact match
	DateFrom string // created_at >= (RFC3339 or date prefix)
	DateTo   string // created_at <=
}

const drinkCols = `id, user_id, name, series, volume_ml, cost, rating, COALESCE(notes,'') AS notes, created_at`

func (r *DrinkRepo) List(userID string, f DrinkFilters, limit, offset int) ([]domain.Drink, error) {
	where := `user_id = ?`
	args := []any{userID}
	if f.Search != "" {
		where += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Series != "" {
		where += ` AND series = ?`
		args = append(args, f.Series)
	}
	if f.DateFrom != "" {
		where += ` AND created_at >= ?`
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		where += ` AND created_at <= ?`
		args = append(args, f.DateTo)
	}
	sql := `SELECT ` + drinkCols + ` FROM drinks WHERE ` + where + `
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Drink
	err := r.db.Select(&out, sql, args...)
	return out, err
}

// ListAll returns every drink owned by the user, unpaginated, for the
// stats/chart/library aggregations which regroup the full set anyway.
func (r *DrinkRepo) ListAll(userID string) ([]domain.Drink, error) {
	var out []domain.Drink
	err := r.db.Select(&out, `SELECT `+drinkCols+` FROM drinks WHERE user_id=? ORDER BY created_at DESC`, userID)
	return out, err
}

func (r *DrinkRepo) Recent(userID string, n int) ([]domain.Drink, error) {
	var out []domain.Drink
	err := r.db.Select(&out, `SELECT `+drinkCols+` FROM drinks WHERE user_id=? ORDER BY created_at DESC LIMIT ?`, userID, n)
	return out, err
}

func (r *DrinkRepo) Get(userID, id string) (domain.Drink, error) {
	var d domain.Drink
	err := r.db.Get(&d, `SELECT `+drinkCols+` FROM drinks WHERE id=? AND user_id=?`, id, userID)
	return d, err
}

func (r *DrinkRepo) Insert(d domain.Drink) error {
	_, err := r.db.Exec(`
	  INSERT INTO drinks(id,user_id,name,series,volume_ml,cost,rating,notes,created_at)
	  VALUES(?,?,?,?,?,?,?,NULLIF(?,''),?)
	`, d.ID, d.UserID, d.Name, d.Series, d.VolumeML, d.Cost, d.Rating, d.Notes, d.CreatedAt)
	return err
}

func (r *DrinkRepo) Update(d domain.Drink) error {
	res, err := r.db.Exec(`
	  UPDATE drinks
	  SET name=?, series=?, volume_ml=?, cost=?, rating=?, notes=NULLIF(?,''), created_at=?
	  WHERE id=? AND user_id=?
	`, d.Name, d.Series, d.VolumeML, d.Cost, d.Rating, d.Notes, d.CreatedAt, d.ID, d.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DrinkRepo) Delete(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM drinks WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CanTypes returns the distinct (name, series) pairs the user has logged.
func (r *DrinkRepo) CanTypes(userID string) ([]domain.CanType, error) {
	var out []domain.CanType
	err := r.db.Select(&out, `
	  SELECT DISTINCT name, series FROM drinks
	  WHERE user_id=?
	  ORDER BY name, series
	`, userID)
	return out, err
}
