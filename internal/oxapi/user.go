package oxapi

import (
	"context"

	"github.com/patrickwarner/oxclient/internal/models"
)

func (c *Client) AddUser(ctx context.Context, user *models.User) (int, error) {
	return addEntity(ctx, c, "ox.addUser", user)
}

func (c *Client) ModifyUser(ctx context.Context, user *models.User) (bool, error) {
	return modifyEntity(ctx, c, "ox.modifyUser", user)
}

func (c *Client) GetUser(ctx context.Context, id int) (*models.User, error) {
	return getEntity(ctx, c, "ox.getUser", models.NewUser, id)
}

func (c *Client) DeleteUser(ctx context.Context, id int) (bool, error) {
	return callBool(ctx, c, "ox.deleteUser", id)
}

func (c *Client) GetUserListByAccountID(ctx context.Context, accountID int) ([]*models.User, error) {
	return listEntities(ctx, c, "ox.getUserListByAccountId", models.NewUser, accountID)
}

// UpdateSsoUserID rebinds the user linked to single-sign-on id oldID to newID.
func (c *Client) UpdateSsoUserID(ctx context.Context, oldID, newID int) (bool, error) {
	return callBool(ctx, c, "ox.updateSsoUserId", oldID, newID)
}

// UpdateUserEmailBySsoID sets the e-mail address of the user linked to ssoID.
func (c *Client) UpdateUserEmailBySsoID(ctx context.Context, ssoID int, email string) (bool, error) {
	return callBool(ctx, c, "ox.updateUserEmailBySsoId", ssoID, email)
}
