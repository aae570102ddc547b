package analytics

import (
	"context"
	"fmt"
)

type Overview struct {
	TotalClicks    int           `json:"totalClicks"`
	TotalViews     int           `json:"totalViews"`
	UniqueVisitors int           `json:"uniqueVisitors"`
	TopCountries   []CountryStat `json:"topCountries"`
	ClicksOverTime []DailyPoint  `json:"clicksOverTime"`
	RecentActivity []Activity    `json:"recentActivity"`
}

type TrendReport struct {
	Trends        []TrendPoint  `json:"trends"`
	TrendAnalysis TrendAnalysis `json:"trendAnalysis"`
	Metric        Metric        `json:"metric"`
	Range         string        `json:"range"`
}

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Overview(ctx context.Context, userID string, rng Range) (*Overview, error) {
	var (
		o   Overview
		err error
	)

	if o.TotalClicks, err = s.repo.TotalClicks(ctx, userID); err != nil {
		return nil, fmt.Errorf("total clicks: %w", err)
	}
	if o.TotalViews, o.UniqueVisitors, err = s.repo.ViewStats(ctx, userID, rng.Start); err != nil {
		return nil, fmt.Errorf("view stats: %w", err)
	}

	clicks, err := s.repo.DailyClicks(ctx, userID, rng.Start)
	if err != nil {
		return nil, fmt.Errorf("daily clicks: %w", err)
	}
	views, err := s.repo.DailyViews(ctx, userID, rng.Start)
	if err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}
	o.ClicksOverTime = MergeDaily(clicks, views)

	if o.TopCountries, err = s.repo.TopCountries(ctx, userID, rng.Start); err != nil {
		return nil, fmt.Errorf("top countries: %w", err)
	}
	if o.RecentActivity, err = s.repo.RecentActivity(ctx, userID); err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	return &o, nil
}

func (s *Service) Trends(ctx context.Context, userID string, rng Range, metric Metric) (*TrendReport, error) {
	var points []TrendPoint

	switch metric {
	case MetricClicks:
		clicks, err := s.repo.DailyClicks(ctx, userID, rng.Start)
		if err != nil {
			return nil, fmt.Errorf("daily clicks: %w", err)
		}
		points = toTrend(clicks, metric)
	case MetricViews:
		views, err := s.repo.DailyViews(ctx, userID, rng.Start)
		if err != nil {
			return nil, fmt.Errorf("daily views: %w", err)
		}
		points = toTrend(views, metric)
	case MetricEngagement:
		clicks, err := s.repo.DailyClicks(ctx, userID, rng.Start)
		if err != nil {
			return nil, fmt.Errorf("daily clicks: %w", err)
		}
		views, err := s.repo.DailyViews(ctx, userID, rng.Start)
		if err != nil {
			return nil, fmt.Errorf("daily views: %w", err)
		}
		points = engagement(MergeDaily(clicks, views))
	default:
		return nil, fmt.Errorf("unknown metric %q", metric)
	}

	return &TrendReport{
		Trends:        points,
		TrendAnalysis: Analyze(points),
		Metric:        metric,
		Range:         rng.Param,
	}, nil
}

func (s *Service) Export(ctx context.Context, userID string, rng Range) ([]ExportRow, error) {
	return s.repo.ExportRows(ctx, userID, rng.Start)
}
