package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/oxclient/internal/oxapi"
)

func TestDailyFromRows(t *testing.T) {
	rows := []oxapi.StatisticsRow{
		{"day": "2024-05-02", "requests": 120, "impressions": 100, "clicks": 4, "revenue": 2.5},
		{"day": time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "impressions": "50", "clicks": 0},
	}

	daily, err := DailyFromRows(rows)
	require.NoError(t, err)
	require.Len(t, daily, 2)

	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), daily[0].Day)
	assert.Equal(t, int64(120), daily[0].Requests)
	assert.InDelta(t, 4.0, daily[0].CTR, 1e-9)
	assert.InDelta(t, 25.0, daily[0].ECPM, 1e-9)

	assert.Equal(t, int64(50), daily[1].Impressions)
	assert.Zero(t, daily[1].Revenue)
	assert.Zero(t, daily[1].CTR)
}

func TestDailyFromRowsRejectsMissingDay(t *testing.T) {
	_, err := DailyFromRows([]oxapi.StatisticsRow{{"impressions": 1}})
	assert.Error(t, err)
	_, err = DailyFromRows([]oxapi.StatisticsRow{{"day": "someday"}})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	d1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	d3 := d1.AddDate(0, 0, 2)
	daily := []DailyMetrics{
		{Day: d3, Impressions: 300, Clicks: 3, Revenue: 3},
		{Day: d1, Impressions: 100, Clicks: 1, Revenue: 1},
		{Day: d2, Impressions: 600, Clicks: 6, Revenue: 6},
	}

	s := Summarize(oxapi.KindCampaign, 501, daily)
	assert.Equal(t, oxapi.KindCampaign, s.Kind)
	assert.Equal(t, 501, s.ID)
	assert.Equal(t, d1, s.From)
	assert.Equal(t, d3, s.To)
	assert.Equal(t, []time.Time{d1, d2, d3}, []time.Time{s.Daily[0].Day, s.Daily[1].Day, s.Daily[2].Day})

	assert.Equal(t, int64(1000), s.Total.Impressions)
	assert.Equal(t, int64(10), s.Total.Clicks)
	assert.InDelta(t, 10.0, s.Total.Revenue, 1e-9)
	assert.InDelta(t, 1.0, s.Total.CTR, 1e-9)
	assert.InDelta(t, 10.0, s.Total.ECPM, 1e-9)

	top := s.TopDays(2)
	require.Len(t, top, 2)
	assert.Equal(t, d2, top[0].Day)
	assert.Equal(t, d3, top[1].Day)
	assert.Equal(t, d3, daily[0].Day, "input must not be reordered")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(oxapi.KindZone, 7, nil)
	assert.Zero(t, s.Total.Impressions)
	assert.True(t, s.From.IsZero())
	assert.Empty(t, s.TopDays(5))
}

func TestTopDaysBounds(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := Summarize(oxapi.KindZone, 7, []DailyMetrics{
		{Day: day, Impressions: 10},
		{Day: day.AddDate(0, 0, 1), Impressions: 20},
	})

	assert.NotPanics(t, func() { assert.Empty(t, s.TopDays(-1)) })
	assert.Empty(t, s.TopDays(0))
	assert.Len(t, s.TopDays(10), 2)
}

func TestWarehouseUnavailable(t *testing.T) {
	var w *Warehouse
	_, err := w.ExportDaily(context.Background(), oxapi.KindZone, 7, []DailyMetrics{{}})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = w.QueryDaily(context.Background(), oxapi.KindZone, 7, time.Time{}, time.Now())
	assert.ErrorIs(t, err, ErrUnavailable)
}
