package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// CreateOrder submits an order draft on behalf of the authenticated client.
// Never retried; the caller owns idempotency.
func (c *Client) CreateOrder(ctx context.Context, credential string, draft OrderDraft) (*Order, error) {
	var created Order
	_, err := c.call(ctx, callParams{
		op:         "order_create",
		method:     http.MethodPost,
		path:       "/orders",
		body:       draft,
		credential: credential,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Orders lists every order. Admin only upstream.
func (c *Client) Orders(ctx context.Context, credential string) ([]Order, error) {
	var raw rawMessage
	_, err := c.call(ctx, callParams{
		op:         "orders_all",
		method:     http.MethodGet,
		path:       "/orders/all",
		credential: credential,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return normalizeList[Order](raw)
}

// ConfirmOrder moves a pending order to CONFIRMED.
func (c *Client) ConfirmOrder(ctx context.Context, credential string, id int64) (*Order, error) {
	var order Order
	_, err := c.call(ctx, callParams{
		op:         "order_confirm",
		method:     http.MethodPut,
		path:       fmt.Sprintf("/orders/%d/confirm", id),
		credential: credential,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder moves a pending order to CANCELED.
func (c *Client) CancelOrder(ctx context.Context, credential string, id int64) (*Order, error) {
	var order Order
	_, err := c.call(ctx, callParams{
		op:         "order_cancel",
		method:     http.MethodPut,
		path:       fmt.Sprintf("/orders/%d/cancel", id),
		credential: credential,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order. An already-deleted id is success.
func (c *Client) DeleteOrder(ctx context.Context, credential string, id int64) error {
	_, err := c.call(ctx, callParams{
		op:         "order_delete",
		method:     http.MethodDelete,
		path:       fmt.Sprintf("/orders/%d", id),
		credential: credential,
	}, nil)
	if isNotFound(err) {
		return nil
	}
	return err
}
