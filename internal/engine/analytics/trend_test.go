package analytics

import (
	"fmt"
	"testing"
)

func series(values ...int) []TrendPoint {
	points := make([]TrendPoint, len(values))
	for i, v := range values {
		points[i] = TrendPoint{Date: fmt.Sprintf("2024-01-%02d", i+1), Value: v, Metric: MetricClicks}
	}
	return points
}

func reversed(values []int) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}

func TestAnalyze(t *testing.T) {
	rising := []int{1, 2, 1, 2, 1, 2, 1, 10, 11, 12, 10, 11, 12, 10}

	tests := []struct {
		name   string
		points []TrendPoint
		want   TrendAnalysis
	}{
		{
			name:   "no points",
			points: nil,
			want:   TrendAnalysis{"stable", "0.0", "0.0", "0.0"},
		},
		{
			name:   "single point",
			points: series(42),
			want:   TrendAnalysis{"stable", "0.0", "0.0", "0.0"},
		},
		{
			name:   "no previous segment",
			points: series(3, 5),
			want:   TrendAnalysis{"stable", "0.0", "4.0", "0.0"},
		},
		{
			name:   "doubled",
			points: series(2, 2, 2, 2, 2, 2, 2, 4, 4, 4, 4, 4, 4, 4),
			want:   TrendAnalysis{"up", "100.0", "4.0", "2.0"},
		},
		{
			name:   "halved",
			points: series(4, 4, 4, 4, 4, 4, 4, 2, 2, 2, 2, 2, 2, 2),
			want:   TrendAnalysis{"down", "50.0", "2.0", "4.0"},
		},
		{
			name:   "flat",
			points: series(5, 5, 5, 5, 5, 5, 5, 5, 5),
			want:   TrendAnalysis{"stable", "0.0", "5.0", "5.0"},
		},
		{
			name:   "only the last fourteen points count",
			points: series(1000, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2),
			want:   TrendAnalysis{"up", "100.0", "2.0", "1.0"},
		},
		{
			name:   "rising",
			points: series(rising...),
			want:   TrendAnalysis{"up", "660.0", "10.9", "1.4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Analyze(tt.points); got != tt.want {
				t.Errorf("Analyze() = %+v, want %+v", got, tt.want)
			}
		})
	}

	t.Run("reversing flips the direction", func(t *testing.T) {
		up := Analyze(series(rising...))
		down := Analyze(series(reversed(rising)...))
		if up.Direction != "up" || down.Direction != "down" {
			t.Errorf("got %s then %s, want up then down", up.Direction, down.Direction)
		}
		if up.Percentage == "0.0" || down.Percentage == "0.0" {
			t.Errorf("expected non-zero percentages, got %s and %s", up.Percentage, down.Percentage)
		}
	})
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in     string
		want   Metric
		wantOK bool
	}{
		{"", MetricClicks, true},
		{"clicks", MetricClicks, true},
		{"views", MetricViews, true},
		{"engagement", MetricEngagement, true},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMetric(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseMetric(%q) = %q, %v", tt.in, got, ok)
			}
		})
	}
}
