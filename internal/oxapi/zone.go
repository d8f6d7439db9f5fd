package oxapi

import (
	"context"

	"github.com/patrickwarner/oxclient/internal/models"
)

func (c *Client) AddZone(ctx context.Context, zone *models.Zone) (int, error) {
	return addEntity(ctx, c, "ox.addZone", zone)
}

func (c *Client) ModifyZone(ctx context.Context, zone *models.Zone) (bool, error) {
	return modifyEntity(ctx, c, "ox.modifyZone", zone)
}

func (c *Client) GetZone(ctx context.Context, id int) (*models.Zone, error) {
	return getEntity(ctx, c, "ox.getZone", models.NewZone, id)
}

func (c *Client) DeleteZone(ctx context.Context, id int) (bool, error) {
	return callBool(ctx, c, "ox.deleteZone", id)
}

func (c *Client) GetZoneListByPublisherID(ctx context.Context, publisherID int) ([]*models.Zone, error) {
	return listEntities(ctx, c, "ox.getZoneListByPublisherId", models.NewZone, publisherID)
}

func (c *Client) LinkBanner(ctx context.Context, zoneID, bannerID int) (bool, error) {
	return callBool(ctx, c, "ox.linkBanner", zoneID, bannerID)
}

func (c *Client) UnlinkBanner(ctx context.Context, zoneID, bannerID int) (bool, error) {
	return callBool(ctx, c, "ox.unlinkBanner", zoneID, bannerID)
}

func (c *Client) LinkCampaign(ctx context.Context, zoneID, campaignID int) (bool, error) {
	return callBool(ctx, c, "ox.linkCampaign", zoneID, campaignID)
}

func (c *Client) UnlinkCampaign(ctx context.Context, zoneID, campaignID int) (bool, error) {
	return callBool(ctx, c, "ox.unlinkCampaign", zoneID, campaignID)
}

// Invocation code types accepted by GenerateTags.
const (
	TagAdJS       = "adjs"
	TagAdFrame    = "adframe"
	TagAdLayer    = "adlayer"
	TagAdView     = "adview"
	TagAdViewNoCk = "adviewnocookies"
	TagLocal      = "local"
	TagPopup      = "popup"
	TagXMLRPC     = "xmlrpc"
)

// GenerateTags asks the service for the invocation code of a zone. params
// may be nil. The result is returned exactly as the service sent it.
func (c *Client) GenerateTags(ctx context.Context, zoneID int, codeType string, params map[string]any) (any, error) {
	if params == nil {
		params = map[string]any{}
	}
	return c.SendWithSession(ctx, "ox.generateTags", zoneID, codeType, params)
}
