package analytics

import (
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		token     string
		wantToken string
		wantParam string
		wantStart time.Time
	}{
		{"7d", "7d", "7d", time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)},
		{"30d", "30d", "30d", time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)},
		{"90d", "90d", "90d", time.Date(2023, 12, 16, 12, 0, 0, 0, time.UTC)},
		{"1y", "1y", "1y", time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC)},
		{"", "7d", "7d", time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)},
		{"14d", "7d", "14d", time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := ParseRange(tt.token, now)
			if got.Token != tt.wantToken {
				t.Errorf("Token = %q, want %q", got.Token, tt.wantToken)
			}
			if got.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", got.Param, tt.wantParam)
			}
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", got.Start, tt.wantStart)
			}
		})
	}
}
