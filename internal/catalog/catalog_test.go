package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/oxclient/internal/db"
	"github.com/patrickwarner/oxclient/internal/models"
	"github.com/patrickwarner/oxclient/internal/observability"
	"github.com/patrickwarner/oxclient/internal/oxapi"
)

type fakeSource struct {
	failCampaigns bool
}

func (f *fakeSource) GetAgencyList(context.Context) ([]*models.Agency, error) {
	a := models.NewAgency()
	_ = a.Set("agencyId", 1)
	_ = a.Set("agencyName", "Acme")
	return []*models.Agency{a, models.NewAgency()}, nil
}

func (f *fakeSource) GetAdvertiserListByAgencyID(_ context.Context, agencyID int) ([]*models.Advertiser, error) {
	a := models.NewAdvertiser()
	_ = a.Set("advertiserId", 10)
	_ = a.Set("agencyId", agencyID)
	return []*models.Advertiser{a}, nil
}

func (f *fakeSource) GetCampaignListByAdvertiserID(_ context.Context, advertiserID int) ([]*models.Campaign, error) {
	if f.failCampaigns {
		return nil, &oxapi.RemoteFault{Method: "ox.getCampaignListByAdvertiserId", Code: 500}
	}
	c1, c2 := models.NewCampaign(), models.NewCampaign()
	_ = c1.Set("campaignId", 100)
	_ = c2.Set("campaignId", 101)
	return []*models.Campaign{c1, c2}, nil
}

func (f *fakeSource) GetBannerListByCampaignID(_ context.Context, campaignID int) ([]*models.Banner, error) {
	b := models.NewBanner()
	_ = b.Set("bannerId", campaignID*10)
	return []*models.Banner{b}, nil
}

func (f *fakeSource) GetPublisherListByAgencyID(context.Context, int) ([]*models.Publisher, error) {
	p := models.NewPublisher()
	_ = p.Set("publisherId", 5)
	return []*models.Publisher{p}, nil
}

func (f *fakeSource) GetZoneListByPublisherID(context.Context, int) ([]*models.Zone, error) {
	z := models.NewZone()
	_ = z.Set("zoneId", 7)
	_ = z.Set("zoneName", "Sidebar")
	return []*models.Zone{z}, nil
}

type fakeSink struct {
	upserts []db.EntitySnapshot
	pruned  map[string][]int
	fail    error
}

func (f *fakeSink) UpsertEntity(_ context.Context, e db.EntitySnapshot) error {
	if f.fail != nil {
		return f.fail
	}
	f.upserts = append(f.upserts, e)
	return nil
}

func (f *fakeSink) PruneEntities(_ context.Context, _ string, kind string, keep []int) (int64, error) {
	if f.pruned == nil {
		f.pruned = make(map[string][]int)
	}
	f.pruned[kind] = keep
	return 0, nil
}

func TestSyncWalksTree(t *testing.T) {
	sink := &fakeSink{}
	metrics := observability.NewMockMetricsRegistry()
	s := NewSyncer(&fakeSource{}, sink, "http://ads.example.com/xmlrpc/", nil, metrics)

	res, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[oxapi.Kind]int{
		oxapi.KindAgency:     1,
		oxapi.KindAdvertiser: 1,
		oxapi.KindCampaign:   2,
		oxapi.KindBanner:     2,
		oxapi.KindPublisher:  1,
		oxapi.KindZone:       1,
	}, res.Stored)
	assert.Equal(t, 1, res.Skipped, "the agency without id is skipped")
	assert.Equal(t, 8, metrics.Exported["postgres"])

	zone := sink.upserts[len(sink.upserts)-1]
	assert.Equal(t, "zone", zone.Kind)
	assert.Equal(t, 7, zone.ID)
	assert.Equal(t, "publisher", zone.ParentKind)
	assert.Equal(t, 5, zone.ParentID)
	assert.Equal(t, map[string]any{"zoneId": 7, "zoneName": "Sidebar"}, zone.Data)

	assert.Equal(t, []int{1000, 1010}, sink.pruned["banner"])
	assert.Equal(t, []int{1}, sink.pruned["agency"])
}

func TestSyncAbortsBeforePruning(t *testing.T) {
	sink := &fakeSink{}
	s := NewSyncer(&fakeSource{failCampaigns: true}, sink, "e", nil, nil)

	_, err := s.Sync(context.Background())
	assert.ErrorIs(t, err, oxapi.ErrRemoteFault)
	assert.Nil(t, sink.pruned)
}

func TestSyncSinkFailure(t *testing.T) {
	boom := errors.New("connection reset")
	s := NewSyncer(&fakeSource{}, &fakeSink{fail: boom}, "e", nil, nil)

	_, err := s.Sync(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSyncFromClient(t *testing.T) {
	transport := oxapi.TransportFunc(func(_ context.Context, method string, args []any) (any, error) {
		switch method {
		case oxapi.MethodLogon:
			return "T", nil
		case "ox.getAgencyList":
			return []any{map[string]any{"agencyId": 2}}, nil
		case "ox.getPublisherListByAgencyId":
			return []any{map[string]any{"publisherId": 3, "agencyId": args[1]}}, nil
		case "ox.getZoneListByPublisherId":
			return []any{map[string]any{"zoneId": 7, "publisherId": args[1]}}, nil
		}
		return []any{}, nil
	})
	client := oxapi.NewClient(transport, nil, nil)
	_, err := client.Logon(context.Background(), "alice", "secret")
	require.NoError(t, err)

	sink := &fakeSink{}
	res, err := NewSyncer(client, sink, "e", nil, nil).Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stored[oxapi.KindZone])
	assert.Equal(t, 0, res.Stored[oxapi.KindCampaign])
}
