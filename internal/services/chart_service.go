package services

import (
	"fmt"
	"sort"
	"time"

	"cantrack/internal/domain"
)

// Chart transforms: pure functions from a drink list to a chart-ready
// shape. None of them mutate the input, touch storage, or log; callers
// pass the full record set and render what comes back. Empty input yields
// empty (or all-zero) series, never an error.

type Dataset struct {
	Data []float64
}

type ChartData struct {
	Labels   []string
	Datasets []Dataset
}

// DrinkDetail is one contributing purchase behind a spending bucket, for
// interactive hover display.
type DrinkDetail struct {
	Name   string
	Cost   float64
	Series string
	Time   string // time of day, e.g. "10:00 AM"
}

type SpendingData struct {
	ChartData
	Hover map[string][]DrinkDetail
}

// drinkTime parses the purchase moment. Malformed timestamps are rejected
// at the form boundary; a row that slips through anyway is skipped rather
// than crashing the chart.
func drinkTime(d domain.Drink) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, d.CreatedAt)
	return t, err == nil
}

func drinkDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SpendingOverTime buckets drinks by calendar date (UTC) and sums each
// day's cost. Each bucket is that day's total, not a running total. The
// hover map keeps the contributing drinks in original record order.
func SpendingOverTime(drinks []domain.Drink) SpendingData {
	daily := map[string]float64{}
	hover := map[string][]DrinkDetail{}

	for _, d := range drinks {
		t, ok := drinkTime(d)
		if !ok {
			continue
		}
		date := drinkDate(t)
		daily[date] += d.Cost
		hover[date] = append(hover[date], DrinkDetail{
			Name:   d.Name,
			Cost:   d.Cost,
			Series: d.Series,
			Time:   t.Format("03:04 PM"),
		})
	}

	labels := make([]string, 0, len(daily))
	for date := range daily {
		labels = append(labels, date)
	}
	sort.Strings(labels)

	data := make([]float64, len(labels))
	for i, date := range labels {
		data[i] = daily[date]
	}

	return SpendingData{
		ChartData: ChartData{Labels: labels, Datasets: []Dataset{{Data: data}}},
		Hover:     hover,
	}
}

// DrinksBySeries counts drinks per series actually present, labels sorted
// lexicographically (not enum order).
func DrinksBySeries(drinks []domain.Drink) ChartData {
	counts := map[string]int{}
	for _, d := range drinks {
		counts[d.Series]++
	}

	labels := make([]string, 0, len(counts))
	for s := range counts {
		labels = append(labels, s)
	}
	sort.Strings(labels)

	data := make([]float64, len(labels))
	for i, s := range labels {
		data[i] = float64(counts[s])
	}
	return ChartData{Labels: labels, Datasets: []Dataset{{Data: data}}}
}

// RatingDistribution is a fixed five-bucket histogram, "1★" through "5★",
// present even for empty input. Out-of-range ratings are clamped into
// [1,5] so they cannot shift counts out of the histogram.
func RatingDistribution(drinks []domain.Drink) ChartData {
	data := make([]float64, 5)
	for _, d := range drinks {
		idx := d.Rating - 1
		if idx < 0 {
			idx = 0
		}
		if idx > 4 {
			idx = 4
		}
		data[idx]++
	}
	labels := make([]string, 5)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d★", i+1)
	}
	return ChartData{Labels: labels, Datasets: []Dataset{{Data: data}}}
}

var dayLabels = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DrinksByDayOfWeek is a fixed seven-bucket histogram, week starting
// Monday, derived from the purchase timestamp's own zone.
func DrinksByDayOfWeek(drinks []domain.Drink) ChartData {
	data := make([]float64, 7)
	for _, d := range drinks {
		t, ok := drinkTime(d)
		if !ok {
			continue
		}
		// time.Weekday has Sunday=0; shift to Monday=0
		data[(int(t.Weekday())+6)%7]++
	}
	return ChartData{Labels: append([]string(nil), dayLabels...), Datasets: []Dataset{{Data: data}}}
}

// CumulativeTotalCans shows the running count of drinks per calendar date:
// non-decreasing, ending at the total record count.
func CumulativeTotalCans(drinks []domain.Drink) ChartData {
	sorted := make([]domain.Drink, len(drinks))
	copy(sorted, drinks)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := drinkTime(sorted[i])
		tj, _ := drinkTime(sorted[j])
		return ti.Before(tj)
	})

	var labels []string
	var data []float64
	total := 0.0
	for _, d := range sorted {
		t, ok := drinkTime(d)
		if !ok {
			continue
		}
		total++
		date := drinkDate(t)
		if len(labels) > 0 && labels[len(labels)-1] == date {
			data[len(data)-1] = total
			continue
		}
		labels = append(labels, date)
		data = append(data, total)
	}
	if labels == nil {
		labels = []string{}
		data = []float64{}
	}
	return ChartData{Labels: labels, Datasets: []Dataset{{Data: data}}}
}
