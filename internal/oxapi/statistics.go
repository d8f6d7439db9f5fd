package oxapi

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/patrickwarner/oxclient/internal/models"
)

// Breakdown selects how a statistics query groups its rows.
type Breakdown string

const (
	ByDay        Breakdown = "daily"
	ByAdvertiser Breakdown = "advertiser"
	ByCampaign   Breakdown = "campaign"
	ByBanner     Breakdown = "banner"
	ByPublisher  Breakdown = "publisher"
	ByZone       Breakdown = "zone"
)

// statisticsEpoch is the start of an open-ended statistics range.
var statisticsEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// statisticsMatrix lists the breakdowns the service offers per entity kind.
var statisticsMatrix = map[Kind][]Breakdown{
	KindAgency:     {ByDay, ByAdvertiser, ByCampaign, ByBanner, ByPublisher, ByZone},
	KindAdvertiser: {ByDay, ByCampaign, ByBanner, ByPublisher, ByZone},
	KindCampaign:   {ByDay, ByBanner, ByPublisher, ByZone},
	KindBanner:     {ByDay, ByPublisher, ByZone},
	KindPublisher:  {ByDay, ByZone, ByAdvertiser, ByCampaign, ByBanner},
	KindZone:       {ByDay, ByAdvertiser, ByCampaign, ByBanner},
}

// StatisticsRange bounds a statistics query. A zero Start means the epoch and
// a zero End means the moment of the call.
type StatisticsRange struct {
	Start              time.Time
	End                time.Time
	UseManagerTimezone bool
}

// StatisticsRow is one row as returned by the service. Daily rows carry a
// "day" key formatted YYYY-MM-DD.
type StatisticsRow = map[string]any

// StatisticsProcedure resolves the remote procedure for kind broken down by
// breakdown, e.g. (KindAgency, ByDay) is "ox.agencyDailyStatistics".
func StatisticsProcedure(kind Kind, breakdown Breakdown) (string, error) {
	if !slices.Contains(statisticsMatrix[kind], breakdown) {
		return "", fmt.Errorf("%w: no %s statistics for %s", ErrUnknownKind, breakdown, kind)
	}
	return "ox." + string(kind) + exported(Kind(breakdown)) + "Statistics", nil
}

// StatisticsBreakdowns returns the breakdowns available for kind.
func StatisticsBreakdowns(kind Kind) []Breakdown {
	return slices.Clone(statisticsMatrix[kind])
}

// Statistics runs any statistics query of the matrix. Daily queries get their
// day column normalized like the typed daily methods.
func (c *Client) Statistics(ctx context.Context, kind Kind, breakdown Breakdown, id int, rng StatisticsRange) ([]StatisticsRow, error) {
	method, err := StatisticsProcedure(kind, breakdown)
	if err != nil {
		return nil, err
	}
	if breakdown == ByDay {
		return c.dailyStatistics(ctx, method, id, rng)
	}
	return c.statistics(ctx, method, id, rng)
}

func (c *Client) statistics(ctx context.Context, method string, id int, rng StatisticsRange) ([]StatisticsRow, error) {
	start := rng.Start
	if start.IsZero() {
		start = statisticsEpoch
	}
	end := rng.End
	if end.IsZero() {
		end = c.now()
	}

	result, err := c.SendWithSession(ctx, method, id, start, end, rng.UseManagerTimezone)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(method, result)
	if err != nil {
		return nil, err
	}
	c.metrics.AddStatisticsRows(method, len(rows))
	return rows, nil
}

func (c *Client) dailyStatistics(ctx context.Context, method string, id int, rng StatisticsRange) ([]StatisticsRow, error) {
	rows, err := c.statistics(ctx, method, id, rng)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		day, ok := row["day"]
		if !ok {
			return nil, fmt.Errorf("%s: row %d: %w: missing day", method, i, ErrUnexpectedResult)
		}
		formatted, err := models.FormatDay(day)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w: %v", method, i, ErrUnexpectedResult, err)
		}
		row["day"] = formatted
	}
	return rows, nil
}

func (c *Client) AgencyDailyStatistics(ctx context.Context, agencyID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.dailyStatistics(ctx, "ox.agencyDailyStatistics", agencyID, rng)
}

func (c *Client) AgencyAdvertiserStatistics(ctx context.Context, agencyID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.agencyAdvertiserStatistics", agencyID, rng)
}

func (c *Client) AgencyCampaignStatistics(ctx context.Context, agencyID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.agencyCampaignStatistics", agencyID, rng)
}

func (c *Client) AgencyBannerStatistics(ctx context.Context, agencyID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.agencyBannerStatistics", agencyID, rng)
}

func (c *Client) AgencyPublisherStatistics(ctx context.Context, agencyID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.agencyPublisherStatistics", agencyID, rng)
}

func (c *Client) AgencyZoneStatistics(ctx context.Context, agencyID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.agencyZoneStatistics", agencyID, rng)
}

func (c *Client) AdvertiserDailyStatistics(ctx context.Context, advertiserID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.dailyStatistics(ctx, "ox.advertiserDailyStatistics", advertiserID, rng)
}

func (c *Client) AdvertiserCampaignStatistics(ctx context.Context, advertiserID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.advertiserCampaignStatistics", advertiserID, rng)
}

func (c *Client) AdvertiserBannerStatistics(ctx context.Context, advertiserID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.advertiserBannerStatistics", advertiserID, rng)
}

func (c *Client) AdvertiserPublisherStatistics(ctx context.Context, advertiserID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.advertiserPublisherStatistics", advertiserID, rng)
}

func (c *Client) AdvertiserZoneStatistics(ctx context.Context, advertiserID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.advertiserZoneStatistics", advertiserID, rng)
}

func (c *Client) CampaignDailyStatistics(ctx context.Context, campaignID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.dailyStatistics(ctx, "ox.campaignDailyStatistics", campaignID, rng)
}

func (c *Client) CampaignBannerStatistics(ctx context.Context, campaignID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.campaignBannerStatistics", campaignID, rng)
}

func (c *Client) CampaignPublisherStatistics(ctx context.Context, campaignID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.campaignPublisherStatistics", campaignID, rng)
}

func (c *Client) CampaignZoneStatistics(ctx context.Context, campaignID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.campaignZoneStatistics", campaignID, rng)
}

func (c *Client) BannerDailyStatistics(ctx context.Context, bannerID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.dailyStatistics(ctx, "ox.bannerDailyStatistics", bannerID, rng)
}

func (c *Client) BannerPublisherStatistics(ctx context.Context, bannerID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.bannerPublisherStatistics", bannerID, rng)
}

func (c *Client) BannerZoneStatistics(ctx context.Context, bannerID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.bannerZoneStatistics", bannerID, rng)
}

func (c *Client) PublisherDailyStatistics(ctx context.Context, publisherID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.dailyStatistics(ctx, "ox.publisherDailyStatistics", publisherID, rng)
}

func (c *Client) PublisherZoneStatistics(ctx context.Context, publisherID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.publisherZoneStatistics", publisherID, rng)
}

func (c *Client) PublisherAdvertiserStatistics(ctx context.Context, publisherID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.publisherAdvertiserStatistics", publisherID, rng)
}

func (c *Client) PublisherCampaignStatistics(ctx context.Context, publisherID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.publisherCampaignStatistics", publisherID, rng)
}

func (c *Client) PublisherBannerStatistics(ctx context.Context, publisherID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.publisherBannerStatistics", publisherID, rng)
}

func (c *Client) ZoneDailyStatistics(ctx context.Context, zoneID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.dailyStatistics(ctx, "ox.zoneDailyStatistics", zoneID, rng)
}

func (c *Client) ZoneAdvertiserStatistics(ctx context.Context, zoneID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.zoneAdvertiserStatistics", zoneID, rng)
}

func (c *Client) ZoneCampaignStatistics(ctx context.Context, zoneID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.zoneCampaignStatistics", zoneID, rng)
}

func (c *Client) ZoneBannerStatistics(ctx context.Context, zoneID int, rng StatisticsRange) ([]StatisticsRow, error) {
	return c.statistics(ctx, "ox.zoneBannerStatistics", zoneID, rng)
}
