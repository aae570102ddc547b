package analytics

import (
	"context"
	"database/sql"
	"time"
)

type CountryStat struct {
	Country string `json:"country"`
	Clicks  int    `json:"clicks"`
}

type Activity struct {
	Type      string `json:"type"` // click, view
	Timestamp string `json:"timestamp"`
	Details   string `json:"details"`
}

const (
	topCountriesLimit   = 5
	recentActivityLimit = 10
)

// Click aggregates join links so only clicks on existing links are counted.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// TotalClicks is all-time, not range filtered.
func (r *Repository) TotalClicks(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM click_events ce
		JOIN links l ON l.id = ce.link_id
		WHERE l.user_id = ?
	`, userID).Scan(&total)
	return total, err
}

func (r *Repository) ViewStats(ctx context.Context, userID string, since time.Time) (views, unique int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT ip_address) FROM profile_views
		WHERE user_id = ? AND viewed_at >= ?
	`, userID, since.Unix()).Scan(&views, &unique)
	return views, unique, err
}

func (r *Repository) DailyClicks(ctx context.Context, userID string, since time.Time) ([]DayCount, error) {
	return r.dayCounts(ctx, `
		SELECT date(ce.clicked_at, 'unixepoch') AS day, COUNT(*)
		FROM click_events ce
		JOIN links l ON l.id = ce.link_id
		WHERE l.user_id = ? AND ce.clicked_at >= ?
		GROUP BY day
		ORDER BY day
	`, userID, since.Unix())
}

func (r *Repository) DailyViews(ctx context.Context, userID string, since time.Time) ([]DayCount, error) {
	return r.dayCounts(ctx, `
		SELECT date(viewed_at, 'unixepoch') AS day, COUNT(*)
		FROM profile_views
		WHERE user_id = ? AND viewed_at >= ?
		GROUP BY day
		ORDER BY day
	`, userID, since.Unix())
}

func (r *Repository) dayCounts(ctx context.Context, query string, args ...interface{}) ([]DayCount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []DayCount{}
	for rows.Next() {
		var c DayCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// TopCountries breaks count ties by country name so the order is stable.
func (r *Repository) TopCountries(ctx context.Context, userID string, since time.Time) ([]CountryStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(ce.country, 'Unknown') AS country, COUNT(*) AS clicks
		FROM click_events ce
		JOIN links l ON l.id = ce.link_id
		WHERE l.user_id = ? AND ce.clicked_at >= ?
		GROUP BY COALESCE(ce.country, 'Unknown')
		ORDER BY clicks DESC, country ASC
		LIMIT ?
	`, userID, since.Unix(), topCountriesLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []CountryStat{}
	for rows.Next() {
		var s CountryStat
		if err := rows.Scan(&s.Country, &s.Clicks); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// RecentActivity merges clicks and profile views, newest first, over all time.
func (r *Repository) RecentActivity(ctx context.Context, userID string) ([]Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT 'click' AS type, ce.clicked_at AS ts, 'Click on ' || l.title AS details
		FROM click_events ce
		JOIN links l ON l.id = ce.link_id
		WHERE l.user_id = ?
		UNION ALL
		SELECT 'view' AS type, pv.viewed_at AS ts, 'Profile viewed' AS details
		FROM profile_views pv
		WHERE pv.user_id = ?
		ORDER BY ts DESC
		LIMIT ?
	`, userID, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activity := []Activity{}
	for rows.Next() {
		var a Activity
		var ts int64
		if err := rows.Scan(&a.Type, &ts, &a.Details); err != nil {
			return nil, err
		}
		a.Timestamp = time.Unix(ts, 0).UTC().Format(time.RFC3339)
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

// ExportRows groups the owner's links with their in-range clicks. Links without
// clicks still produce one row with zero clicks.
func (r *Repository) ExportRows(ctx context.Context, userID string, since time.Time) ([]ExportRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.title, l.url, COUNT(ce.id),
		       date(ce.clicked_at, 'unixepoch'), ce.country, ce.referrer
		FROM links l
		LEFT JOIN click_events ce ON ce.link_id = l.id AND ce.clicked_at >= ?
		WHERE l.user_id = ?
		GROUP BY l.id, date(ce.clicked_at, 'unixepoch'), ce.country, ce.referrer
		ORDER BY MAX(ce.clicked_at) DESC, l.position ASC
	`, since.Unix(), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExportRow{}
	for rows.Next() {
		var row ExportRow
		var date, country, referrer sql.NullString
		if err := rows.Scan(&row.LinkTitle, &row.LinkURL, &row.Clicks, &date, &country, &referrer); err != nil {
			return nil, err
		}
		row.Date = date.String
		row.Country = country.String
		row.Referrer = referrer.String
		out = append(out, row)
	}
	return out, rows.Err()
}
