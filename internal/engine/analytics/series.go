package analytics

import "sort"

// DayCount is one row of a per-day GROUP BY; Date is YYYY-MM-DD.
type DayCount struct {
	Date  string
	Count int
}

type DailyPoint struct {
	Date   string `json:"date"`
	Clicks int    `json:"clicks"`
	Views  int    `json:"views"`
}

// MergeDaily outer-joins the click and view series on date. A day missing from
// one series reports zero for it. The result is sorted ascending.
func MergeDaily(clicks, views []DayCount) []DailyPoint {
	byDate := make(map[string]*DailyPoint, len(clicks)+len(views))

	point := func(date string) *DailyPoint {
		p, ok := byDate[date]
		if !ok {
			p = &DailyPoint{Date: date}
			byDate[date] = p
		}
		return p
	}

	for _, c := range clicks {
		point(c.Date).Clicks += c.Count
	}
	for _, v := range views {
		point(v.Date).Views += v.Count
	}

	merged := make([]DailyPoint, 0, len(byDate))
	for _, p := range byDate {
		merged = append(merged, *p)
	}
	// ISO dates sort lexically.
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })

	return merged
}
