package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// ClientMe returns the client account bound to the authenticated identity.
// A 404 surfaces as NOT_FOUND; callers decide whether a missing profile is
// fatal for their flow.
func (c *Client) ClientMe(ctx context.Context, credential string) (*ClientAccount, error) {
	var account ClientAccount
	_, err := c.call(ctx, callParams{
		op:         "client_me",
		method:     http.MethodGet,
		path:       "/clients/me",
		credential: credential,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ClientOrders lists the order history of one client.
func (c *Client) ClientOrders(ctx context.Context, credential string, clientID int64) ([]Order, error) {
	var raw rawMessage
	_, err := c.call(ctx, callParams{
		op:         "client_orders",
		method:     http.MethodGet,
		path:       fmt.Sprintf("/clients/%d/orders", clientID),
		credential: credential,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return normalizeList[Order](raw)
}

// Clients lists every client account. Admin only upstream.
func (c *Client) Clients(ctx context.Context, credential string) ([]ClientAccount, error) {
	var raw rawMessage
	_, err := c.call(ctx, callParams{
		op:         "clients_all",
		method:     http.MethodGet,
		path:       "/clients/all",
		credential: credential,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return normalizeList[ClientAccount](raw)
}

// SaveClient creates a client account.
func (c *Client) SaveClient(ctx context.Context, credential string, account ClientAccount) (*ClientAccount, error) {
	var saved ClientAccount
	_, err := c.call(ctx, callParams{
		op:         "client_save",
		method:     http.MethodPost,
		path:       "/clients/save",
		body:       account,
		credential: credential,
	}, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateClient updates an existing client account.
func (c *Client) UpdateClient(ctx context.Context, credential string, id int64, account ClientAccount) (*ClientAccount, error) {
	var saved ClientAccount
	_, err := c.call(ctx, callParams{
		op:         "client_update",
		method:     http.MethodPut,
		path:       fmt.Sprintf("/clients/update/%d", id),
		body:       account,
		credential: credential,
	}, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteClient removes a client account. The commerce API answers 404 for an
// id that is already gone; deletion is idempotent from the caller's side, so
// that case is treated as success.
func (c *Client) DeleteClient(ctx context.Context, credential string, id int64) error {
	_, err := c.call(ctx, callParams{
		op:         "client_delete",
		method:     http.MethodDelete,
		path:       fmt.Sprintf("/clients/delete/%d", id),
		credential: credential,
	}, nil)
	if isNotFound(err) {
		return nil
	}
	return err
}
