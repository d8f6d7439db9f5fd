package oxapi

import (
	"context"

	"github.com/patrickwarner/oxclient/internal/models"
)

// AddBanner creates a banner and returns its new id. Storage, size, weight,
// status and transparency default on a copy when unset.
func (c *Client) AddBanner(ctx context.Context, banner *models.Banner) (int, error) {
	if banner == nil {
		return addEntity(ctx, c, "ox.addBanner", banner)
	}
	defaulted := banner.Clone()
	defaulted.SetDefaultForAdd()
	return addEntity(ctx, c, "ox.addBanner", defaulted)
}

func (c *Client) ModifyBanner(ctx context.Context, banner *models.Banner) (bool, error) {
	return modifyEntity(ctx, c, "ox.modifyBanner", banner)
}

func (c *Client) GetBanner(ctx context.Context, id int) (*models.Banner, error) {
	return getEntity(ctx, c, "ox.getBanner", models.NewBanner, id)
}

func (c *Client) GetBannerListByCampaignID(ctx context.Context, campaignID int) ([]*models.Banner, error) {
	return listEntities(ctx, c, "ox.getBannerListByCampaignId", models.NewBanner, campaignID)
}

func (c *Client) DeleteBanner(ctx context.Context, id int) (bool, error) {
	return callBool(ctx, c, "ox.deleteBanner", id)
}

// GetBannerTargeting returns the banner's delivery rules in evaluation order.
func (c *Client) GetBannerTargeting(ctx context.Context, bannerID int) ([]*models.Targeting, error) {
	return getTargeting(ctx, c, "ox.getBannerTargeting", bannerID)
}

// SetBannerTargeting replaces the whole rule list of a banner. An empty list
// removes all rules.
func (c *Client) SetBannerTargeting(ctx context.Context, bannerID int, rules []*models.Targeting) (bool, error) {
	if rules == nil {
		rules = []*models.Targeting{}
	}
	return callBool(ctx, c, "ox.setBannerTargeting", bannerID, rules)
}
