package services

import (
	"time"

	"cantrack/internal/domain"
	"cantrack/internal/repos"

	"github.com/google/uuid"
)

type DrinkService struct {
	Drinks *repos.DrinkRepo
}

func NewDrinkService(drinks *repos.DrinkRepo) *DrinkService {
	return &DrinkService{Drinks: drinks}
}

// DrinkInput carries validated form fields. CreatedAt empty means "now";
// on update it means "keep the stored purchase moment".
type DrinkInput struct {
	Name      string
	Series    string
	VolumeML  int
	Cost      float64
	Rating    int
	Notes     string
	CreatedAt string
}

func (s *DrinkService) List(userID string, f repos.DrinkFilters, page, pageSize int) ([]domain.Drink, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.Drinks.List(userID, f, pageSize, offset)
}

func (s *DrinkService) Get(userID, id string) (domain.Drink, error) {
	return s.Drinks.Get(userID, id)
}

// All returns the user's full log for the chart and stats views, which
// regroup it themselves.
func (s *DrinkService) All(userID string) ([]domain.Drink, error) {
	return s.Drinks.ListAll(userID)
}

func (s *DrinkService) Recent(userID string, n int) ([]domain.Drink, error) {
	if n <= 0 {
		n = 5
	}
	return s.Drinks.Recent(userID, n)
}

func (s *DrinkService) Create(userID string, in DrinkInput) (domain.Drink, error) {
	if userID == "" {
		return domain.Drink{}, ErrNotAuthenticated
	}
	ts := in.CreatedAt
	if ts == "" {
		ts = time.Now().UTC().Format(time.RFC3339)
	}
	d := domain.Drink{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      in.Name,
		Series:    in.Series,
		VolumeML:  in.VolumeML,
		Cost:      in.Cost,
		Rating:    in.Rating,
		Notes:     in.Notes,
		CreatedAt: ts,
	}
	if err := s.Drinks.Insert(d); err != nil {
		return domain.Drink{}, err
	}
	return d, nil
}

func (s *DrinkService) Update(userID, id string, in DrinkInput) (domain.Drink, error) {
	existing, err := s.Drinks.Get(userID, id)
	if err != nil {
		return domain.Drink{}, err
	}
	ts := in.CreatedAt
	if ts == "" {
		ts = existing.CreatedAt
	}
	d := domain.Drink{
		ID:        id,
		UserID:    userID,
		Name:      in.Name,
		Series:    in.Series,
		VolumeML:  in.VolumeML,
		Cost:      in.Cost,
		Rating:    in.Rating,
		Notes:     in.Notes,
		CreatedAt: ts,
	}
	if err := s.Drinks.Update(d); err != nil {
		return domain.Drink{}, err
	}
	return d, nil
}

func (s *DrinkService) Delete(userID, id string) error {
	return s.Drinks.Delete(userID, id)
}

// Stats summarizes the user's full log. Zero drinks yields all zeros; the
// average is guarded so it never divides by zero.
func (s *DrinkService) Stats(userID string) (domain.DrinkStats, error) {
	drinks, err := s.Drinks.ListAll(userID)
	if err != nil {
		return domain.DrinkStats{}, err
	}
	var st domain.DrinkStats
	st.TotalDrinks = len(drinks)
	if st.TotalDrinks == 0 {
		return st, nil
	}
	var ratingSum float64
	for _, d := range drinks {
		st.TotalSpent += d.Cost
		ratingSum += float64(d.Rating)
	}
	st.AverageRating = ratingSum / float64(st.TotalDrinks)
	return st, nil
}
