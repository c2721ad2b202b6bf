package services

import (
	"sort"
	"time"

	"cantrack/internal/domain"
	"cantrack/internal/repos"
)

// LibraryService builds the deduplicated "can library": one item per
// (name, series) pair across all of a user's drinks.
type LibraryService struct {
	Drinks *repos.DrinkRepo
	Images *ImageService
}

func NewLibraryService(drinks *repos.DrinkRepo, images *ImageService) *LibraryService {
	return &LibraryService{Drinks: drinks, Images: images}
}

// CanLibrary groups the user's drinks by can key and aggregates each
// group. A drinks fetch error propagates; image resolution never errors.
// Items come back sorted by purchase count, most purchased first.
func (s *LibraryService) CanLibrary(userID string) ([]domain.CanLibraryItem, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	drinks, err := s.Drinks.ListAll(userID)
	if err != nil {
		return nil, err
	}
	images := s.Images.Lookup(userID)

	groups := map[string][]domain.Drink{}
	var keys []string
	for _, d := range drinks {
		key := domain.CanKey(d.Name, d.Series)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], d)
	}

	items := make([]domain.CanLibraryItem, 0, len(keys))
	for _, key := range keys {
		group := groups[key]
		first := group[0]
		item := domain.CanLibraryItem{
			ID:       key,
			Name:     first.Name,
			Series:   first.Series,
			VolumeML: first.VolumeML,
			Count:    len(group),
			ImageURL: images[key],
		}
		var ratingSum float64
		var minT, maxT time.Time
		for _, d := range group {
			item.TotalSpent += d.Cost
			ratingSum += float64(d.Rating)
			t, ok := drinkTime(d)
			if !ok {
				continue
			}
			if minT.IsZero() || t.Before(minT) {
				minT = t
				item.FirstPurchased = d.CreatedAt
			}
			if maxT.IsZero() || t.After(maxT) {
				maxT = t
				item.LastPurchased = d.CreatedAt
			}
		}
		item.AverageRating = ratingSum / float64(item.Count)
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	return items, nil
}

// ExistingCanTypes lists the unique (name, series) pairs the user has
// logged, for pre-filling the image upload form.
func (s *LibraryService) ExistingCanTypes(userID string) ([]domain.CanType, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.Drinks.CanTypes(userID)
}
