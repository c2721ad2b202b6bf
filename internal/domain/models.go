package domain

// Series is the fixed product-line category of a drink.
const (
	SeriesNormal  = "Normal"
	SeriesUltra   = "Ultra"
	SeriesJuice   = "Juice"
	SeriesReserve = "Reserve"
	SeriesSpecial = "Special"
)

// AllSeries lists the valid series values in display order.
var AllSeries = []string{SeriesNormal, SeriesUltra, SeriesJuice, SeriesReserve, SeriesSpecial}

type Drink struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	Name      string  `db:"name"`
	Series    string  `db:"series"`
	VolumeML  int     `db:"volume_ml"`
	Cost      float64 `db:"cost"`
	Rating    int     `db:"rating"` // 1..5
	Notes     string  `db:"notes"`
	CreatedAt string  `db:"created_at"` // RFC3339, the purchase moment
}

// CanImage associates an uploaded image URL with a (name, series) pair.
// At most one per (user_id, can_name, series); writes upsert on that key.
type CanImage struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	CanName   string `db:"can_name"`
	Series    string `db:"series"`
	ImageURL  string `db:"image_url"`
	CreatedAt string `db:"created_at"`
}

type DrinkStats struct {
	TotalSpent    float64
	TotalDrinks   int
	AverageRating float64
}

// CanLibraryItem is the derived per-can aggregate shown in the library view.
// Never persisted; recomputed on every request.
type CanLibraryItem struct {
	ID             string // group key
	Name           string
	Series         string
	VolumeML       int
	Count          int
	TotalSpent     float64
	AverageRating  float64
	ImageURL       string // empty when no image resolved
	FirstPurchased string
	LastPurchased  string
}

type CanType struct {
	Name   string `db:"name"`
	Series string `db:"series"`
}

// CanKey builds the grouping key shared by the library aggregator and the
// image stores. Same name with a different series is a distinct can.
func CanKey(name, series string) string {
	return name + "_" + series
}
