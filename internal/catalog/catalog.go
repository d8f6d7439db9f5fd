// Package catalog mirrors the remote entity tree into a local store. It walks
// agencies down to advertisers, campaigns and banners, and down to
// publishers and zones, one remote call at a time.
package catalog

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/db"
	"github.com/patrickwarner/oxclient/internal/models"
	"github.com/patrickwarner/oxclient/internal/observability"
	"github.com/patrickwarner/oxclient/internal/oxapi"
)

// Source lists entities by parent. *oxapi.Client implements it.
type Source interface {
	GetAgencyList(ctx context.Context) ([]*models.Agency, error)
	GetAdvertiserListByAgencyID(ctx context.Context, agencyID int) ([]*models.Advertiser, error)
	GetCampaignListByAdvertiserID(ctx context.Context, advertiserID int) ([]*models.Campaign, error)
	GetBannerListByCampaignID(ctx context.Context, campaignID int) ([]*models.Banner, error)
	GetPublisherListByAgencyID(ctx context.Context, agencyID int) ([]*models.Publisher, error)
	GetZoneListByPublisherID(ctx context.Context, publisherID int) ([]*models.Zone, error)
}

// Sink stores snapshots. *db.Postgres implements it.
type Sink interface {
	UpsertEntity(ctx context.Context, e db.EntitySnapshot) error
	PruneEntities(ctx context.Context, endpoint, kind string, keep []int) (int64, error)
}

var (
	_ Source = (*oxapi.Client)(nil)
	_ Sink   = (*db.Postgres)(nil)
)

// Result counts what a sync stored and removed, by kind.
type Result struct {
	Stored  map[oxapi.Kind]int
	Pruned  map[oxapi.Kind]int64
	Skipped int
}

// Syncer copies the remote tree into a Sink.
type Syncer struct {
	source   Source
	sink     Sink
	endpoint string
	logger   *zap.Logger
	metrics  observability.MetricsRegistry

	seen map[oxapi.Kind][]int
	res  *Result
}

func NewSyncer(source Source, sink Sink, endpoint string, logger *zap.Logger, metrics observability.MetricsRegistry) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Syncer{source: source, sink: sink, endpoint: endpoint, logger: logger, metrics: metrics}
}

// Sync walks the whole tree, stores every entity and then prunes snapshots
// of entities that no longer exist. A failure aborts before pruning so a
// partial walk never deletes anything.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	s.seen = make(map[oxapi.Kind][]int)
	s.res = &Result{Stored: make(map[oxapi.Kind]int), Pruned: make(map[oxapi.Kind]int64)}

	agencies, err := s.source.GetAgencyList(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agencies: %w", err)
	}
	for _, agency := range agencies {
		agencyID, ok, err := s.store(ctx, oxapi.KindAgency, agency, "", 0)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := s.syncAdvertisers(ctx, agencyID); err != nil {
			return nil, err
		}
		if err := s.syncPublishers(ctx, agencyID); err != nil {
			return nil, err
		}
	}

	for _, kind := range syncedKinds {
		n, err := s.sink.PruneEntities(ctx, s.endpoint, string(kind), s.seen[kind])
		if err != nil {
			return nil, err
		}
		s.res.Pruned[kind] = n
	}

	total := 0
	for _, n := range s.res.Stored {
		total += n
	}
	s.metrics.AddExportedRows("postgres", total)
	s.logger.Info("catalog synced", zap.Int("entities", total), zap.Int("skipped", s.res.Skipped))
	return s.res, nil
}

var syncedKinds = []oxapi.Kind{
	oxapi.KindAgency,
	oxapi.KindAdvertiser,
	oxapi.KindCampaign,
	oxapi.KindBanner,
	oxapi.KindPublisher,
	oxapi.KindZone,
}

// SyncedKinds returns the kinds Sync stores, parents first.
func SyncedKinds() []oxapi.Kind { return slices.Clone(syncedKinds) }

func (s *Syncer) syncAdvertisers(ctx context.Context, agencyID int) error {
	advertisers, err := s.source.GetAdvertiserListByAgencyID(ctx, agencyID)
	if err != nil {
		return fmt.Errorf("list advertisers of agency %d: %w", agencyID, err)
	}
	for _, advertiser := range advertisers {
		advertiserID, ok, err := s.store(ctx, oxapi.KindAdvertiser, advertiser, oxapi.KindAgency, agencyID)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		campaigns, err := s.source.GetCampaignListByAdvertiserID(ctx, advertiserID)
		if err != nil {
			return fmt.Errorf("list campaigns of advertiser %d: %w", advertiserID, err)
		}
		for _, campaign := range campaigns {
			campaignID, ok, err := s.store(ctx, oxapi.KindCampaign, campaign, oxapi.KindAdvertiser, advertiserID)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			banners, err := s.source.GetBannerListByCampaignID(ctx, campaignID)
			if err != nil {
				return fmt.Errorf("list banners of campaign %d: %w", campaignID, err)
			}
			for _, banner := range banners {
				if _, _, err := s.store(ctx, oxapi.KindBanner, banner, oxapi.KindCampaign, campaignID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Syncer) syncPublishers(ctx context.Context, agencyID int) error {
	publishers, err := s.source.GetPublisherListByAgencyID(ctx, agencyID)
	if err != nil {
		return fmt.Errorf("list publishers of agency %d: %w", agencyID, err)
	}
	for _, publisher := range publishers {
		publisherID, ok, err := s.store(ctx, oxapi.KindPublisher, publisher, oxapi.KindAgency, agencyID)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		zones, err := s.source.GetZoneListByPublisherID(ctx, publisherID)
		if err != nil {
			return fmt.Errorf("list zones of publisher %d: %w", publisherID, err)
		}
		for _, zone := range zones {
			if _, _, err := s.store(ctx, oxapi.KindZone, zone, oxapi.KindPublisher, publisherID); err != nil {
				return err
			}
		}
	}
	return nil
}

// store saves one entity and returns its id. Entities without an id are
// skipped, along with their subtree.
func (s *Syncer) store(ctx context.Context, kind oxapi.Kind, e models.Entity, parentKind oxapi.Kind, parentID int) (int, bool, error) {
	rec := e.AsRecord()
	id, ok := rec.ID()
	if !ok || id <= 0 {
		s.res.Skipped++
		s.logger.Warn("skipping entity without id", zap.String("kind", string(kind)), zap.Int("parent_id", parentID))
		return 0, false, nil
	}
	err := s.sink.UpsertEntity(ctx, db.EntitySnapshot{
		Endpoint:   s.endpoint,
		Kind:       string(kind),
		ID:         id,
		ParentKind: string(parentKind),
		ParentID:   parentID,
		Data:       rec.ToArray(),
	})
	if err != nil {
		return 0, false, err
	}
	s.seen[kind] = append(s.seen[kind], id)
	s.res.Stored[kind]++
	return id, true, nil
}
