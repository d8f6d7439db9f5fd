// Package reporting turns ox statistics rows into performance summaries and
// archives daily rows in ClickHouse so reports can span longer periods than
// a single remote query.
package reporting

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/patrickwarner/oxclient/internal/models"
	"github.com/patrickwarner/oxclient/internal/oxapi"
)

// DailyMetrics is one day of delivery for an entity. Revenue is in the
// manager's currency. CTR is a percentage (0-100).
type DailyMetrics struct {
	Day         time.Time `json:"day"`
	Requests    int64     `json:"requests"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Conversions int64     `json:"conversions"`
	Revenue     float64   `json:"revenue"`
	CTR         float64   `json:"ctr"`
	ECPM        float64   `json:"ecpm"` // revenue per 1000 impressions
}

// Summary aggregates the daily metrics of one entity.
type Summary struct {
	Kind  oxapi.Kind     `json:"kind"`
	ID    int            `json:"id"`
	From  time.Time      `json:"from"`
	To    time.Time      `json:"to"`
	Total DailyMetrics   `json:"total"`
	Daily []DailyMetrics `json:"daily"`
}

// DailyFromRows converts daily statistics rows as returned by the client.
// Rows must carry a YYYY-MM-DD day; counters missing from a row count as 0.
func DailyFromRows(rows []oxapi.StatisticsRow) ([]DailyMetrics, error) {
	out := make([]DailyMetrics, 0, len(rows))
	for i, row := range rows {
		day, ok := row["day"]
		if !ok {
			return nil, fmt.Errorf("row %d: missing day", i)
		}
		s, err := models.FormatDay(day)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		d, _ := time.Parse(models.DayLayout, s)

		m := DailyMetrics{
			Day:         d,
			Requests:    counter(row, "requests"),
			Impressions: counter(row, "impressions"),
			Clicks:      counter(row, "clicks"),
			Conversions: counter(row, "conversions"),
		}
		m.Revenue, _ = models.AsFloat(row["revenue"])
		m.derive()
		out = append(out, m)
	}
	return out, nil
}

func counter(row oxapi.StatisticsRow, name string) int64 {
	n, _ := models.AsInt(row[name])
	return int64(n)
}

func (m *DailyMetrics) derive() {
	m.CTR, m.ECPM = 0, 0
	if m.Impressions > 0 {
		m.CTR = float64(m.Clicks) / float64(m.Impressions) * 100
		m.ECPM = m.Revenue / float64(m.Impressions) * 1000
	}
}

// Summarize totals daily metrics for an entity. Days are sorted oldest first
// and the range is taken from the first and last day.
func Summarize(kind oxapi.Kind, id int, daily []DailyMetrics) *Summary {
	sorted := slices.Clone(daily)
	slices.SortFunc(sorted, func(a, b DailyMetrics) int { return a.Day.Compare(b.Day) })

	s := &Summary{Kind: kind, ID: id, Daily: sorted}
	for _, d := range sorted {
		s.Total.Requests += d.Requests
		s.Total.Impressions += d.Impressions
		s.Total.Clicks += d.Clicks
		s.Total.Conversions += d.Conversions
		s.Total.Revenue += d.Revenue
	}
	s.Total.derive()
	if len(sorted) > 0 {
		s.From = sorted[0].Day
		s.To = sorted[len(sorted)-1].Day
		s.Total.Day = s.To
	}
	return s
}

// TopDays returns up to n days ranked by impressions, busiest first. A
// negative n yields no days.
func (s *Summary) TopDays(n int) []DailyMetrics {
	n = max(n, 0)
	ranked := slices.Clone(s.Daily)
	slices.SortStableFunc(ranked, func(a, b DailyMetrics) int {
		return cmp.Compare(b.Impressions, a.Impressions)
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
