package repos

import (
	"cantrack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CanImageRepo struct{ db *sqlx.DB }

func NewCanImageRepo(db *sqlx.DB) *CanImageRepo { return &CanImageRepo{db: db} }

// Upsert writes the image URL for (user, can_name, series), replacing any
// previous value for the same key.
func (r *CanImageRepo) Upsert(img domain.CanImage) error {
	_, err := r.db.Exec(`
	  INSERT INTO can_images(id,user_id,can_name,series,image_url,created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id,can_name,series) DO UPDATE SET image_url=excluded.image_url
	`, img.ID, img.UserID, img.CanName, img.Series, img.ImageURL)
	return err
}

func (r *CanImageRepo) ByUser(userID string) ([]domain.CanImage, error) {
	var out []domain.CanImage
	err := r.db.Select(&out, `
	  SELECT id, user_id, can_name, series, image_url, COALESCE(created_at,'') AS created_at
	  FROM can_images WHERE user_id=?
	`, userID)
	return out, err
}

func (r *CanImageRepo) Delete(userID, canName, series string) error {
	_, err := r.db.Exec(`DELETE FROM can_images WHERE user_id=? AND can_name=? AND series=?`,
		userID, canName, series)
	return err
}
