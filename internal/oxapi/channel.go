package oxapi

import (
	"context"

	"github.com/patrickwarner/oxclient/internal/models"
)

func (c *Client) AddChannel(ctx context.Context, channel *models.Channel) (int, error) {
	return addEntity(ctx, c, "ox.addChannel", channel)
}

func (c *Client) ModifyChannel(ctx context.Context, channel *models.Channel) (bool, error) {
	return modifyEntity(ctx, c, "ox.modifyChannel", channel)
}

func (c *Client) GetChannel(ctx context.Context, id int) (*models.Channel, error) {
	return getEntity(ctx, c, "ox.getChannel", models.NewChannel, id)
}

func (c *Client) DeleteChannel(ctx context.Context, id int) (bool, error) {
	return callBool(ctx, c, "ox.deleteChannel", id)
}

func (c *Client) GetChannelListByAgencyID(ctx context.Context, agencyID int) ([]*models.Channel, error) {
	return listEntities(ctx, c, "ox.getChannelListByAgencyId", models.NewChannel, agencyID)
}

func (c *Client) GetChannelListByWebsiteID(ctx context.Context, websiteID int) ([]*models.Channel, error) {
	return listEntities(ctx, c, "ox.getChannelListByWebsiteId", models.NewChannel, websiteID)
}

func (c *Client) GetChannelTargeting(ctx context.Context, channelID int) ([]*models.Targeting, error) {
	return getTargeting(ctx, c, "ox.getChannelTargeting", channelID)
}

// SetChannelTargeting replaces the whole rule list of a channel.
func (c *Client) SetChannelTargeting(ctx context.Context, channelID int, rules []*models.Targeting) (bool, error) {
	return callBool(ctx, c, "ox.setChannelTargeting", channelID, rules)
}
