package oxapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyStatisticsDefaultsAndDayFormat(t *testing.T) {
	c, ft, metrics := newLoggedOnClient(t)
	ft.respond("ox.agencyDailyStatistics", []any{
		map[string]any{"day": time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "impressions": 100, "clicks": 3},
		map[string]any{"day": "20240502T00:00:00", "impressions": 80, "clicks": 1},
	})

	rows, err := c.AgencyDailyStatistics(context.Background(), 2, StatisticsRange{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-05-01", rows[0]["day"])
	assert.Equal(t, "2024-05-02", rows[1]["day"])
	assert.Equal(t, 100, rows[0]["impressions"])

	call := ft.last(t)
	assert.Equal(t, "ox.agencyDailyStatistics", call.Method)
	assert.Equal(t, []any{testToken, 2, statisticsEpoch, fixedNow, false}, call.Args)
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), call.Args[2])
	assert.Equal(t, 2, metrics.StatsRows["ox.agencyDailyStatistics"])
}

func TestStatisticsPassesExplicitRange(t *testing.T) {
	c, ft, _ := newLoggedOnClient(t)
	ft.respond("ox.campaignBannerStatistics", []any{
		map[string]any{"bannerId": 88, "impressions": 10, "day": "untouched"},
	})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	rows, err := c.CampaignBannerStatistics(context.Background(), 501, StatisticsRange{
		Start:              start,
		End:                end,
		UseManagerTimezone: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "untouched", rows[0]["day"], "only daily rows are post-processed")
	assert.Equal(t, []any{testToken, 501, start, end, true}, ft.last(t).Args)
}

func TestDailyStatisticsRejectsBadDay(t *testing.T) {
	c, ft, _ := newLoggedOnClient(t)
	ctx := context.Background()

	ft.respond("ox.zoneDailyStatistics", []any{map[string]any{"impressions": 1}})
	_, err := c.ZoneDailyStatistics(ctx, 7, StatisticsRange{})
	assert.ErrorIs(t, err, ErrUnexpectedResult)

	ft.respond("ox.zoneDailyStatistics", []any{map[string]any{"day": "yesterday"}})
	_, err = c.ZoneDailyStatistics(ctx, 7, StatisticsRange{})
	assert.ErrorIs(t, err, ErrUnexpectedResult)
}

func TestStatisticsProcedure(t *testing.T) {
	tests := []struct {
		kind      Kind
		breakdown Breakdown
		want      string
	}{
		{KindAgency, ByDay, "ox.agencyDailyStatistics"},
		{KindAgency, ByZone, "ox.agencyZoneStatistics"},
		{KindAdvertiser, ByPublisher, "ox.advertiserPublisherStatistics"},
		{KindBanner, ByZone, "ox.bannerZoneStatistics"},
		{KindPublisher, ByAdvertiser, "ox.publisherAdvertiserStatistics"},
		{KindZone, ByAdvertiser, "ox.zoneAdvertiserStatistics"},
	}
	for _, tt := range tests {
		got, err := StatisticsProcedure(tt.kind, tt.breakdown)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := StatisticsProcedure(KindBanner, ByCampaign)
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = StatisticsProcedure(KindUser, ByDay)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGenericStatistics(t *testing.T) {
	c, ft, _ := newLoggedOnClient(t)
	ft.respond("ox.publisherDailyStatistics", []any{map[string]any{"day": "2024-05-03"}})
	ft.respond("ox.publisherZoneStatistics", []any{map[string]any{"zoneId": 7}})
	ctx := context.Background()

	rows, err := c.Statistics(ctx, KindPublisher, ByDay, 5, StatisticsRange{})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-03", rows[0]["day"])

	rows, err = c.Statistics(ctx, KindPublisher, ByZone, 5, StatisticsRange{})
	require.NoError(t, err)
	assert.Equal(t, 7, rows[0]["zoneId"])

	_, err = c.Statistics(ctx, KindChannel, ByDay, 1, StatisticsRange{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestStatisticsBreakdowns(t *testing.T) {
	assert.Equal(t, []Breakdown{ByDay, ByPublisher, ByZone}, StatisticsBreakdowns(KindBanner))
	assert.Empty(t, StatisticsBreakdowns(KindUser))
}
