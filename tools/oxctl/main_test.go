package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/oxclient/internal/catalog"
	"github.com/patrickwarner/oxclient/internal/models"
	"github.com/patrickwarner/oxclient/internal/oxapi"
	"github.com/patrickwarner/oxclient/internal/reporting"
)

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatNumber(in))
	}
}

func TestParseEntityRef(t *testing.T) {
	kind, id, err := parseEntityRef([]string{"campaign", "501"})
	require.NoError(t, err)
	assert.Equal(t, oxapi.KindCampaign, kind)
	assert.Equal(t, 501, id)

	_, _, err = parseEntityRef([]string{"campaign"})
	assert.Error(t, err)
	_, _, err = parseEntityRef([]string{"campaign", "-1"})
	assert.Error(t, err)
	_, _, err = parseEntityRef([]string{"lineitem", "1"})
	assert.ErrorIs(t, err, oxapi.ErrUnknownKind)
}

func TestParseListArgs(t *testing.T) {
	kind, parent, parentID, err := parseListArgs([]string{"zone", "publisher", "3"})
	require.NoError(t, err)
	assert.Equal(t, oxapi.KindZone, kind)
	assert.Equal(t, oxapi.KindPublisher, parent)
	assert.Equal(t, 3, parentID)

	kind, parent, _, err = parseListArgs([]string{"agency"})
	require.NoError(t, err)
	assert.Equal(t, oxapi.KindAgency, kind)
	assert.Empty(t, parent)

	_, _, _, err = parseListArgs([]string{"zone", "publisher"})
	assert.Error(t, err)
}

func TestParseStatsFlags(t *testing.T) {
	q, err := parseStatsFlags("stats", []string{"-kind", "zone", "-id", "7", "-by", "campaign", "-from", "2024-05-01", "-manager-tz"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, oxapi.KindZone, q.kind)
	assert.Equal(t, oxapi.ByCampaign, q.breakdown)
	assert.Equal(t, 7, q.id)
	assert.Equal(t, models.NewDate(2024, 5, 1), q.rng.Start)
	assert.True(t, q.rng.End.IsZero())
	assert.True(t, q.rng.UseManagerTimezone)

	_, err = parseStatsFlags("stats", []string{"-kind", "banner", "-id", "1", "-by", "advertiser"}, io.Discard)
	assert.Error(t, err, "banners have no advertiser breakdown")
	_, err = parseStatsFlags("stats", []string{"-kind", "zone"}, io.Discard)
	assert.Error(t, err)
	_, err = parseStatsFlags("stats", []string{"-kind", "zone", "-id", "7", "-to", "tomorrow"}, io.Discard)
	assert.Error(t, err)
}

func TestPrintSummary(t *testing.T) {
	daily := []reporting.DailyMetrics{
		{Day: models.NewDate(2024, 5, 2), Impressions: 2000, Clicks: 10, Revenue: 4},
		{Day: models.NewDate(2024, 5, 1), Impressions: 1000, Clicks: 30, Revenue: 2},
	}
	var buf bytes.Buffer
	printSummary(&buf, reporting.Summarize(oxapi.KindCampaign, 501, daily), 1)

	out := buf.String()
	assert.Contains(t, out, "CAMPAIGN 501 performance")
	assert.Contains(t, out, "Period: 2024-05-01 to 2024-05-02")
	assert.Contains(t, out, "Impressions:  3,000")
	assert.Contains(t, out, "Busiest days")
}

func TestPrintSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, reporting.Summarize(oxapi.KindZone, 7, nil), 5)
	assert.Contains(t, buf.String(), "No statistics recorded")
}

func TestPrintSyncResult(t *testing.T) {
	var buf bytes.Buffer
	printSyncResult(&buf, &catalog.Result{
		Stored:  map[oxapi.Kind]int{oxapi.KindAgency: 2},
		Pruned:  map[oxapi.Kind]int64{oxapi.KindZone: 1},
		Skipped: 1,
	})
	out := buf.String()
	assert.Contains(t, out, "agency      |      2 |      0")
	assert.Contains(t, out, "zone        |      0 |      1")
	assert.Contains(t, out, "1 entities without an id were skipped")
}

func TestCommandNamesSorted(t *testing.T) {
	names := commandNames()
	assert.Len(t, names, len(commands))
	assert.IsIncreasing(t, names)
}
