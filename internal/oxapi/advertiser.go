package oxapi

import (
	"context"

	"github.com/patrickwarner/oxclient/internal/models"
)

func (c *Client) AddAdvertiser(ctx context.Context, advertiser *models.Advertiser) (int, error) {
	return addEntity(ctx, c, "ox.addAdvertiser", advertiser)
}

func (c *Client) ModifyAdvertiser(ctx context.Context, advertiser *models.Advertiser) (bool, error) {
	return modifyEntity(ctx, c, "ox.modifyAdvertiser", advertiser)
}

func (c *Client) GetAdvertiser(ctx context.Context, id int) (*models.Advertiser, error) {
	return getEntity(ctx, c, "ox.getAdvertiser", models.NewAdvertiser, id)
}

func (c *Client) DeleteAdvertiser(ctx context.Context, id int) (bool, error) {
	return callBool(ctx, c, "ox.deleteAdvertiser", id)
}

func (c *Client) GetAdvertiserListByAgencyID(ctx context.Context, agencyID int) ([]*models.Advertiser, error) {
	return listEntities(ctx, c, "ox.getAdvertiserListByAgencyId", models.NewAdvertiser, agencyID)
}
