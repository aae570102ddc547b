package analytics

import (
	"fmt"
	"math"
)

type Metric string

const (
	MetricClicks     Metric = "clicks"
	MetricViews      Metric = "views"
	MetricEngagement Metric = "engagement"
)

// trendWindow is the number of points in each compared segment.
const trendWindow = 7

func ParseMetric(s string) (Metric, bool) {
	switch Metric(s) {
	case "":
		return MetricClicks, true
	case MetricClicks, MetricViews, MetricEngagement:
		return Metric(s), true
	default:
		return "", false
	}
}

type TrendPoint struct {
	Date   string `json:"date"`
	Value  int    `json:"value"`
	Metric Metric `json:"metric"`
}

type TrendAnalysis struct {
	Direction       string `json:"direction"` // up, down, stable
	Percentage      string `json:"percentage"`
	RecentAverage   string `json:"recentAverage"`
	PreviousAverage string `json:"previousAverage"`
}

// Analyze compares the mean of the last seven points with the mean of the seven
// before them. Percentage is the absolute change; Direction carries the sign.
func Analyze(points []TrendPoint) TrendAnalysis {
	if len(points) < 2 {
		return TrendAnalysis{
			Direction:       "stable",
			Percentage:      "0.0",
			RecentAverage:   "0.0",
			PreviousAverage: "0.0",
		}
	}

	split := len(points) - trendWindow
	if split < 0 {
		split = 0
	}
	from := split - trendWindow
	if from < 0 {
		from = 0
	}

	recentAvg := mean(points[split:])
	previousAvg := mean(points[from:split])

	var change float64
	if previousAvg > 0 {
		change = (recentAvg - previousAvg) / previousAvg * 100
	}

	direction := "stable"
	switch {
	case change > 0:
		direction = "up"
	case change < 0:
		direction = "down"
	}

	return TrendAnalysis{
		Direction:       direction,
		Percentage:      fmt.Sprintf("%.1f", math.Abs(change)),
		RecentAverage:   fmt.Sprintf("%.1f", recentAvg),
		PreviousAverage: fmt.Sprintf("%.1f", previousAvg),
	}
}

func mean(points []TrendPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p.Value
	}
	return float64(sum) / float64(len(points))
}

func toTrend(counts []DayCount, metric Metric) []TrendPoint {
	points := make([]TrendPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, TrendPoint{Date: c.Date, Value: c.Count, Metric: metric})
	}
	return points
}

func engagement(daily []DailyPoint) []TrendPoint {
	points := make([]TrendPoint, 0, len(daily))
	for _, d := range daily {
		points = append(points, TrendPoint{Date: d.Date, Value: d.Clicks + d.Views, Metric: MetricEngagement})
	}
	return points
}
