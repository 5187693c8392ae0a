package reports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewthree/brewpos-backend/internal/catalog"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
)

const (
	topProductLimit = 5
	cacheTTL        = 30 * time.Second
)

// Report is the full statistics payload for one period.
type Report struct {
	Period            enums.ReportPeriod `json:"period"`
	WindowStart       *time.Time         `json:"window_start,omitempty"`
	GeneratedAt       time.Time          `json:"generated_at"`
	TotalOrders       int64              `json:"total_orders"`
	Revenue           decimal.Decimal    `json:"revenue"`
	TopProducts       []ProductSales     `json:"top_products"`
	OrdersByStatus    map[string]int64   `json:"orders_by_status"`
	TotalProducts     int64              `json:"total_products"`
	AvailableProducts int64              `json:"available_products"`
	TotalUsers        int64              `json:"total_users"`
}

// Stats is the light aggregate behind the counter display: order volume,
// revenue and the best seller for one period.
type Stats struct {
	Period       enums.ReportPeriod `json:"period"`
	OrderCount   int64              `json:"order_count"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
	TopProduct   *ProductSales      `json:"top_product,omitempty"`
}

// cache is the optional redis surface the service uses for report caching.
type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service builds sales reports.
type Service interface {
	ComputeStats(ctx context.Context, period enums.ReportPeriod) (*Stats, error)
	BuildReport(ctx context.Context, period enums.ReportPeriod) (*Report, error)
}

type Params struct {
	Repo    Repository
	Catalog catalog.Repository
	Log     *logger.Logger

	// Cache is optional; when nil every report is computed fresh.
	Cache cache
	Now   func() time.Time
}

type service struct {
	repo    Repository
	catalog catalog.Repository
	log     *logger.Logger
	cache   cache
	now     func() time.Time
}

func NewService(p Params) (Service, error) {
	if p.Repo == nil {
		return nil, errors.New(errors.CodeInternal, "reports: repo is required")
	}
	if p.Catalog == nil {
		return nil, errors.New(errors.CodeInternal, "reports: catalog repo is required")
	}
	if p.Log == nil {
		return nil, errors.New(errors.CodeInternal, "reports: logger is required")
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &service{
		repo:    p.Repo,
		catalog: p.Catalog,
		log:     p.Log,
		cache:   p.Cache,
		now:     p.Now,
	}, nil
}

// ComputeStats returns the core aggregates for a period. The window start is
// taken from a single clock reading so every aggregate sees the same
// boundary. TopProduct is nil when nothing sold in the window.
func (s *service) ComputeStats(ctx context.Context, period enums.ReportPeriod) (*Stats, error) {
	if !period.IsValid() {
		return nil, errors.New(errors.CodeValidation, "invalid report period")
	}

	since := period.Start(s.now())

	stats := &Stats{
		Period:       period,
		TotalRevenue: decimal.Zero,
	}

	var err error
	if stats.OrderCount, err = s.repo.CountOrdersSince(ctx, since); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.repo.RevenueSince(ctx, since); err != nil {
		return nil, err
	}
	top, err := s.repo.TopProductsSince(ctx, since, 1)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		stats.TopProduct = &top[0]
	}
	return stats, nil
}

// BuildReport computes the report for a period. The window start is taken
// from a single clock reading so every aggregate sees the same boundary.
func (s *service) BuildReport(ctx context.Context, period enums.ReportPeriod) (*Report, error) {
	if !period.IsValid() {
		return nil, errors.New(errors.CodeValidation, "invalid report period")
	}

	if cached := s.fromCache(ctx, period); cached != nil {
		return cached, nil
	}

	now := s.now()
	since := period.Start(now)

	report := &Report{
		Period:      period,
		GeneratedAt: now,
		Revenue:     decimal.Zero,
	}
	if !since.IsZero() {
		report.WindowStart = &since
	}

	var err error
	if report.TotalOrders, err = s.repo.CountOrdersSince(ctx, since); err != nil {
		return nil, err
	}
	if report.Revenue, err = s.repo.RevenueSince(ctx, since); err != nil {
		return nil, err
	}
	if report.TopProducts, err = s.repo.TopProductsSince(ctx, since, topProductLimit); err != nil {
		return nil, err
	}
	if report.OrdersByStatus, err = s.repo.CountOrdersByStatusSince(ctx, since); err != nil {
		return nil, err
	}
	if report.TotalProducts, err = s.catalog.CountAll(ctx); err != nil {
		return nil, err
	}
	if report.AvailableProducts, err = s.catalog.CountAvailable(ctx); err != nil {
		return nil, err
	}
	if report.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		return nil, err
	}

	s.toCache(ctx, period, report)
	return report, nil
}

func cacheKey(period enums.ReportPeriod) string {
	return "brewpos:report:" + period.String()
}

func (s *service) fromCache(ctx context.Context, period enums.ReportPeriod) *Report {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey(period))
	if err != nil {
		s.log.Warn(ctx, "report cache read failed")
		return nil
	}
	if raw == "" {
		return nil
	}
	var report Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil
	}
	return &report
}

func (s *service) toCache(ctx context.Context, period enums.ReportPeriod, report *Report) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(period), string(raw), cacheTTL); err != nil {
		s.log.Warn(ctx, "report cache write failed")
	}
}
