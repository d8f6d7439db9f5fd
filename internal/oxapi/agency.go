package oxapi

import (
	"context"

	"github.com/patrickwarner/oxclient/internal/models"
)

func (c *Client) AddAgency(ctx context.Context, agency *models.Agency) (int, error) {
	return addEntity(ctx, c, "ox.addAgency", agency)
}

func (c *Client) ModifyAgency(ctx context.Context, agency *models.Agency) (bool, error) {
	return modifyEntity(ctx, c, "ox.modifyAgency", agency)
}

func (c *Client) GetAgency(ctx context.Context, id int) (*models.Agency, error) {
	return getEntity(ctx, c, "ox.getAgency", models.NewAgency, id)
}

func (c *Client) DeleteAgency(ctx context.Context, id int) (bool, error) {
	return callBool(ctx, c, "ox.deleteAgency", id)
}

// GetAgencyList returns every agency visible to the session's user.
func (c *Client) GetAgencyList(ctx context.Context) ([]*models.Agency, error) {
	return listEntities(ctx, c, "ox.getAgencyList", models.NewAgency)
}
