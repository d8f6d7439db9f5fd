package oxapi

import (
	"context"

	"github.com/patrickwarner/oxclient/internal/models"
)

func (c *Client) AddPublisher(ctx context.Context, publisher *models.Publisher) (int, error) {
	return addEntity(ctx, c, "ox.addPublisher", publisher)
}

func (c *Client) ModifyPublisher(ctx context.Context, publisher *models.Publisher) (bool, error) {
	return modifyEntity(ctx, c, "ox.modifyPublisher", publisher)
}

func (c *Client) GetPublisher(ctx context.Context, id int) (*models.Publisher, error) {
	return getEntity(ctx, c, "ox.getPublisher", models.NewPublisher, id)
}

func (c *Client) DeletePublisher(ctx context.Context, id int) (bool, error) {
	return callBool(ctx, c, "ox.deletePublisher", id)
}

func (c *Client) GetPublisherListByAgencyID(ctx context.Context, agencyID int) ([]*models.Publisher, error) {
	return listEntities(ctx, c, "ox.getPublisherListByAgencyId", models.NewPublisher, agencyID)
}
