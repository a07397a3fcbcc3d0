package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"fireguard/internal/models"
	"fireguard/internal/repositories"
)

// AnalyticsService derives monthly rollups from the enquiry repository. It
// holds no state: every report is recomputed from a full read.
type AnalyticsService struct {
	enquiries repositories.EnquiryRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(enquiries repositories.EnquiryRepository) *AnalyticsService {
	return &AnalyticsService{enquiries: enquiries}
}

// orderedCounter counts string keys while remembering first-seen order, so
// the arg-max tie-break is deterministic: on equal counts the key seen first
// wins.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns the first-seen key with the highest count, or fallback when
// nothing was counted.
func (c *orderedCounter) top(fallback string) string {
	best := fallback
	bestCount := 0
	for _, key := range c.order {
		if c.counts[key] > bestCount {
			best = key
			bestCount = c.counts[key]
		}
	}
	return best
}

// MonthlyReport aggregates the enquiries whose timestamp falls in the given
// month ("YYYY-MM", defaulting to the current month): totals, breakdowns by
// product interest and city, the top key of each, and a daily trend sorted
// ascending by date.
func (s *AnalyticsService) MonthlyReport(ctx context.Context, month string) (*models.MonthlyReport, error) {
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	all, err := s.enquiries.ListAll(ctx, models.EnquiryFilters{})
	if err != nil {
		return nil, err
	}

	products := newOrderedCounter()
	cities := newOrderedCounter()
	daily := map[string]int{}
	total := 0

	for _, e := range all {
		if !strings.HasPrefix(e.Timestamp, month) {
			continue
		}
		total++

		product := e.ProductInterest
		if product == "" {
			product = "Unspecified"
		}
		products.add(product)

		city := e.City
		if city == "" {
			city = "Unknown"
		}
		cities.add(city)

		if len(e.Timestamp) >= 10 {
			daily[e.Timestamp[:10]]++
		}
	}

	trend := make([]models.DailyCount, 0, len(daily))
	for date, count := range daily {
		trend = append(trend, models.DailyCount{Date: date, Count: count})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })

	return &models.MonthlyReport{
		Month:              month,
		TotalEnquiries:     total,
		TopProductInterest: products.top("None"),
		TopCity:            cities.top("None"),
		ProductBreakdown:   products.counts,
		CityBreakdown:      cities.counts,
		DailyTrend:         trend,
	}, nil
}
