package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cantrack/internal/domain"
	"cantrack/internal/services"
)

func sampleDrinks() []domain.Drink {
	return []domain.Drink{
		mkDrink("1", "Monster Energy", "Normal", 2.99, 4, "2024-01-15T10:00:00Z"),
		mkDrink("2", "Monster Ultra White", "Ultra", 3.49, 5, "2024-01-16T14:30:00Z"),
		mkDrink("3", "Monster Juice Mango Loco", "Juice", 3.99, 3, "2024-01-17T09:15:00Z"),
		mkDrink("4", "Monster Energy", "Normal", 2.99, 4, "2024-01-16T18:45:00Z"),
	}
}

func TestSpendingOverTimeBucketsByDay(t *testing.T) {
	got := services.SpendingOverTime(sampleDrinks())

	require.Equal(t, []string{"2024-01-15", "2024-01-16", "2024-01-17"}, got.Labels)
	require.Len(t, got.Datasets, 1)
	assert.InDeltaSlice(t, []float64{2.99, 6.48, 3.99}, got.Datasets[0].Data, 1e-9)

	// Hover detail keeps original record order per day.
	day := got.Hover["2024-01-16"]
	require.Len(t, day, 2)
	assert.Equal(t, "Monster Ultra White", day[0].Name)
	assert.Equal(t, "02:30 PM", day[0].Time)
	assert.Equal(t, "Monster Energy", day[1].Name)
	assert.Equal(t, "Ultra", day[0].Series)
}

func TestSpendingOverTimeEmpty(t *testing.T) {
	got := services.SpendingOverTime(nil)
	assert.Empty(t, got.Labels)
	require.Len(t, got.Datasets, 1)
	assert.Empty(t, got.Datasets[0].Data)
	assert.Empty(t, got.Hover)
}

func TestSpendingOverTimeSumMatchesStats(t *testing.T) {
	drinks := sampleDrinks()
	got := services.SpendingOverTime(drinks)

	var bucketSum, costSum float64
	for _, v := range got.Datasets[0].Data {
		bucketSum += v
	}
	for _, d := range drinks {
		costSum += d.Cost
	}
	assert.InDelta(t, costSum, bucketSum, 1e-9)
}

func TestDrinksBySeriesSortedLexicographically(t *testing.T) {
	got := services.DrinksBySeries(sampleDrinks())

	assert.Equal(t, []string{"Juice", "Normal", "Ultra"}, got.Labels)
	assert.Equal(t, []float64{1, 2, 1}, got.Datasets[0].Data)
}

func TestDrinksBySeriesEmpty(t *testing.T) {
	got := services.DrinksBySeries([]domain.Drink{})
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Datasets[0].Data)
}

func TestRatingDistribution(t *testing.T) {
	drinks := []domain.Drink{
		mkDrink("1", "A", "Normal", 1, 3, "2024-01-15T10:00:00Z"),
		mkDrink("2", "A", "Normal", 1, 4, "2024-01-15T10:00:00Z"),
		mkDrink("3", "A", "Normal", 1, 4, "2024-01-15T10:00:00Z"),
		mkDrink("4", "A", "Normal", 1, 5, "2024-01-15T10:00:00Z"),
		mkDrink("5", "A", "Normal", 1, 5, "2024-01-15T10:00:00Z"),
	}
	got := services.RatingDistribution(drinks)

	require.Equal(t, []string{"1★", "2★", "3★", "4★", "5★"}, got.Labels)
	assert.Equal(t, []float64{0, 0, 1, 2, 2}, got.Datasets[0].Data)
}

func TestRatingDistributionAlwaysFiveBuckets(t *testing.T) {
	got := services.RatingDistribution(nil)
	require.Len(t, got.Labels, 5)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, got.Datasets[0].Data)
}

func TestRatingDistributionClampsOutOfRange(t *testing.T) {
	drinks := []domain.Drink{
		mkDrink("1", "A", "Normal", 1, 0, "2024-01-15T10:00:00Z"),
		mkDrink("2", "A", "Normal", 1, 9, "2024-01-15T10:00:00Z"),
	}
	got := services.RatingDistribution(drinks)

	var sum float64
	for _, v := range got.Datasets[0].Data {
		sum += v
	}
	assert.Equal(t, float64(len(drinks)), sum)
	assert.Equal(t, []float64{1, 0, 0, 0, 1}, got.Datasets[0].Data)
}

func TestDrinksByDayOfWeek(t *testing.T) {
	// 2024-01-15 is a Monday, 2024-01-16 a Tuesday.
	got := services.DrinksByDayOfWeek(sampleDrinks())

	require.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, got.Labels)
	assert.Equal(t, []float64{1, 2, 1, 0, 0, 0, 0}, got.Datasets[0].Data)

	var sum float64
	for _, v := range got.Datasets[0].Data {
		sum += v
	}
	assert.Equal(t, float64(len(sampleDrinks())), sum)
}

func TestDrinksByDayOfWeekEmptyKeepsFixedBuckets(t *testing.T) {
	got := services.DrinksByDayOfWeek(nil)
	require.Len(t, got.Labels, 7)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0}, got.Datasets[0].Data)
}

func TestCumulativeTotalCans(t *testing.T) {
	// Deliberately unsorted input; the transform sorts by timestamp.
	drinks := []domain.Drink{
		mkDrink("3", "C", "Juice", 1, 3, "2024-01-17T09:15:00Z"),
		mkDrink("1", "A", "Normal", 1, 4, "2024-01-15T10:00:00Z"),
		mkDrink("4", "D", "Normal", 1, 4, "2024-01-16T18:45:00Z"),
		mkDrink("2", "B", "Ultra", 1, 5, "2024-01-16T14:30:00Z"),
	}
	got := services.CumulativeTotalCans(drinks)

	require.Equal(t, []string{"2024-01-15", "2024-01-16", "2024-01-17"}, got.Labels)
	assert.Equal(t, []float64{1, 3, 4}, got.Datasets[0].Data)

	prev := 0.0
	for _, v := range got.Datasets[0].Data {
		require.GreaterOrEqual(t, v, prev)
		prev = v
	}
	assert.Equal(t, float64(len(drinks)), got.Datasets[0].Data[len(got.Datasets[0].Data)-1])
}

func TestCumulativeTotalCansEmpty(t *testing.T) {
	got := services.CumulativeTotalCans(nil)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Datasets[0].Data)
}

func TestTransformsArePureAndIdempotent(t *testing.T) {
	drinks := sampleDrinks()
	snapshot := make([]domain.Drink, len(drinks))
	copy(snapshot, drinks)

	first := services.CumulativeTotalCans(drinks)
	second := services.CumulativeTotalCans(drinks)
	assert.Equal(t, first, second)

	assert.Equal(t, services.SpendingOverTime(drinks), services.SpendingOverTime(drinks))
	assert.Equal(t, services.DrinksBySeries(drinks), services.DrinksBySeries(drinks))

	// Input order must survive the sorting transform untouched.
	assert.Equal(t, snapshot, drinks)
}
