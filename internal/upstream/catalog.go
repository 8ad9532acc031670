package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Products lists the catalog page requested. Page numbering is zero-based,
// matching the commerce API.
func (c *Client) Products(ctx context.Context, credential string, page, size int) ([]Product, error) {
	query := url.Values{}
	if page >= 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}

	var raw rawMessage
	_, err := c.call(ctx, callParams{
		op:         "products_list",
		method:     http.MethodGet,
		path:       "/products",
		query:      query,
		credential: credential,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return normalizeList[Product](raw)
}

// Product fetches one catalog entry by id.
func (c *Client) Product(ctx context.Context, credential string, id int64) (*Product, error) {
	var product Product
	_, err := c.call(ctx, callParams{
		op:         "product_get",
		method:     http.MethodGet,
		path:       fmt.Sprintf("/products/%d", id),
		credential: credential,
	}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SaveProduct creates a catalog entry. Admin only upstream.
func (c *Client) SaveProduct(ctx context.Context, credential string, product Product) (*Product, error) {
	var saved Product
	_, err := c.call(ctx, callParams{
		op:         "product_save",
		method:     http.MethodPost,
		path:       "/products/save",
		body:       product,
		credential: credential,
	}, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateProduct replaces a catalog entry.
func (c *Client) UpdateProduct(ctx context.Context, credential string, id int64, product Product) (*Product, error) {
	var saved Product
	_, err := c.call(ctx, callParams{
		op:         "product_update",
		method:     http.MethodPut,
		path:       fmt.Sprintf("/products/%d", id),
		body:       product,
		credential: credential,
	}, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteProduct removes a catalog entry. An already-deleted id is success.
func (c *Client) DeleteProduct(ctx context.Context, credential string, id int64) error {
	_, err := c.call(ctx, callParams{
		op:         "product_delete",
		method:     http.MethodDelete,
		path:       fmt.Sprintf("/products/%d", id),
		credential: credential,
	}, nil)
	if isNotFound(err) {
		return nil
	}
	return err
}
