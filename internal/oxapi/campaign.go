package oxapi

import (
	"context"

	"github.com/patrickwarner/oxclient/internal/models"
)

// AddCampaign creates a campaign and returns its new id. Unset fields with
// add-time defaults are filled on a copy before sending; capping fields stay
// unset.
func (c *Client) AddCampaign(ctx context.Context, campaign *models.Campaign) (int, error) {
	if campaign == nil {
		return addEntity(ctx, c, "ox.addCampaign", campaign)
	}
	defaulted := campaign.Clone()
	defaulted.SetDefaultForAdd()
	return addEntity(ctx, c, "ox.addCampaign", defaulted)
}

func (c *Client) ModifyCampaign(ctx context.Context, campaign *models.Campaign) (bool, error) {
	return modifyEntity(ctx, c, "ox.modifyCampaign", campaign)
}

func (c *Client) GetCampaign(ctx context.Context, id int) (*models.Campaign, error) {
	return getEntity(ctx, c, "ox.getCampaign", models.NewCampaign, id)
}

func (c *Client) GetCampaignListByAdvertiserID(ctx context.Context, advertiserID int) ([]*models.Campaign, error) {
	return listEntities(ctx, c, "ox.getCampaignListByAdvertiserId", models.NewCampaign, advertiserID)
}

func (c *Client) DeleteCampaign(ctx context.Context, id int) (bool, error) {
	return callBool(ctx, c, "ox.deleteCampaign", id)
}
