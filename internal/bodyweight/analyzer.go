package bodyweight

import (
	"sort"

	"github.com/liftlog-app/liftlog/internal/daykey"
)

// DailyPoint is one day of the bodyweight series, samples of the day
// averaged into a single value.
type DailyPoint struct {
	Day         daykey.DayKey `json:"day"`
	AvgWeightLb float64       `json:"avgWeightLb"`
	AvgWeightKg float64       `json:"avgWeightKg"`
}

// TrendLine is a least squares fit of daily weight against the
// sequential point index 0..n-1.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// DailySeries groups samples by day and averages each day, ascending
// by day, one point per day.
func DailySeries(samples []Sample) []DailyPoint {
	if len(samples) == 0 {
		return nil
	}

	sums := make(map[daykey.DayKey]float64)
	counts := make(map[daykey.DayKey]int)
	for _, s := range samples {
		sums[s.Day] += s.WeightLb
		counts[s.Day]++
	}

	days := make([]daykey.DayKey, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	points := make([]DailyPoint, 0, len(days))
	for _, day := range days {
		avgLb := sums[day] / float64(counts[day])
		points = append(points, DailyPoint{
			Day:         day,
			AvgWeightLb: avgLb,
			AvgWeightKg: LbToKg(avgLb),
		})
	}
	return points
}

// WeeklyChange compares the average of the last 7 daily points with
// the average of the 7 before those. Zero unless both windows are
// complete, a half filled window would just produce noise.
func WeeklyChange(points []DailyPoint) float64 {
	if len(points) < 14 {
		return 0
	}

	last7 := points[len(points)-7:]
	prev7 := points[len(points)-14 : len(points)-7]

	return avgWeight(last7) - avgWeight(prev7)
}

// Trend fits weight = slope*index + intercept over the daily points.
// Nil for fewer than two points, a single sample has no direction.
func Trend(points []DailyPoint) *TrendLine {
	n := len(points)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.AvgWeightLb
		sumXY += x * p.AvgWeightLb
		sumXX += x * x
	}

	nf := float64(n)
	denominator := nf*sumXX - sumX*sumX
	if denominator < 1 {
		denominator = 1
	}
	slope := (nf*sumXY - sumX*sumY) / denominator

	return &TrendLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / nf,
	}
}

func avgWeight(points []DailyPoint) float64 {
	sum := 0.0
	for _, p := range points {
		sum += p.AvgWeightLb
	}
	return sum / float64(len(points))
}
