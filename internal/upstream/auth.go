package upstream

import (
	"context"
	"net/http"
)

// Login authenticates against the commerce API and returns the identity
// together with the upstream credential captured from the response cookies.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Identity, string, error) {
	var identity Identity
	res, err := c.call(ctx, callParams{
		op:     "auth_login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   creds,
	}, &identity)
	if err != nil {
		return nil, "", err
	}
	return &identity, serializeCookies(res.cookies), nil
}

// Me returns the identity the upstream credential currently resolves to.
func (c *Client) Me(ctx context.Context, credential string) (*Identity, error) {
	var identity Identity
	_, err := c.call(ctx, callParams{
		op:         "auth_me",
		method:     http.MethodGet,
		path:       "/auth/me",
		credential: credential,
	}, &identity)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// Logout invalidates the upstream session.
func (c *Client) Logout(ctx context.Context, credential string) error {
	_, err := c.call(ctx, callParams{
		op:         "auth_logout",
		method:     http.MethodPost,
		path:       "/auth/logout",
		credential: credential,
	}, nil)
	return err
}
