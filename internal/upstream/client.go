package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/smartshop/storefront-gateway/pkg/config"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
	"github.com/smartshop/storefront-gateway/pkg/metrics"
)

// Doer performs an HTTP round trip. Satisfied by *http.Client; swapped for
// fakes in tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a thin typed wrapper over the SmartShop commerce API. All calls
// forward the caller's upstream credential (the commerce session cookie) and
// map response statuses onto the gateway error taxonomy.
type Client struct {
	baseURL string
	http    Doer
	logg    *logger.Logger
	metrics *metrics.UpstreamMetrics

	retryAttempts uint64
	retryBaseWait time.Duration
}

// New builds a commerce API client from configuration.
func New(cfg config.UpstreamConfig, logg *logger.Logger, m *metrics.UpstreamMetrics) (*Client, error) {
	if logg == nil {
		return nil, fmt.Errorf("upstream: logger is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("upstream: base URL is required")
	}
	attempts := cfg.RetryAttempts
	if attempts < 0 {
		attempts = 0
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		logg:          logg,
		metrics:       m,
		retryAttempts: uint64(attempts),
		retryBaseWait: cfg.RetryBaseWait,
	}, nil
}

type callParams struct {
	op         string
	method     string
	path       string
	query      url.Values
	body       any
	credential string
}

type callResult struct {
	status  int
	cookies []*http.Cookie
}

// call performs one logical API call. GET requests are retried with bounded
// exponential backoff on transport failures and 5xx responses; writes are
// never retried.
func (c *Client) call(ctx context.Context, p callParams, out any) (*callResult, error) {
	start := time.Now()

	var res *callResult
	attempt := func(ctx context.Context) error {
		var err error
		res, err = c.roundTrip(ctx, p, out)
		if err != nil && p.method == http.MethodGet && isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	}

	var err error
	if p.method == http.MethodGet && c.retryAttempts > 0 {
		backoff := retry.WithMaxRetries(c.retryAttempts, retry.NewExponential(c.retryBaseWait))
		err = retry.Do(ctx, backoff, attempt)
	} else {
		err = attempt(ctx)
	}

	if c.metrics != nil {
		c.metrics.ObserveCall(p.op, time.Since(start), err)
	}
	if err != nil {
		c.logg.Warn(ctx, fmt.Sprintf("upstream %s failed: %v", p.op, err))
		return nil, err
	}
	return res, nil
}

func (c *Client) roundTrip(ctx context.Context, p callParams, out any) (*callResult, error) {
	endpoint := c.baseURL + p.path
	if len(p.query) > 0 {
		endpoint += "?" + p.query.Encode()
	}

	var body io.Reader
	if p.body != nil {
		raw, err := json.Marshal(p.body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, endpoint, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if p.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.credential != "" {
		req.Header.Set("Cookie", p.credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		callErr := &pkgerrors.UpstreamCallError{
			Method:   p.method,
			Endpoint: p.path,
			Message:  "transport failure",
			Err:      err,
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, callErr, "commerce API unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.mapFailure(p, resp.StatusCode, raw)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			callErr := &pkgerrors.UpstreamCallError{
				Method:   p.method,
				Endpoint: p.path,
				Status:   resp.StatusCode,
				Message:  "malformed response body",
				Err:      err,
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, callErr, "decode commerce API response")
		}
	}
	return &callResult{status: resp.StatusCode, cookies: resp.Cookies()}, nil
}

// mapFailure translates a non-2xx commerce API response into a gateway error.
func (c *Client) mapFailure(p callParams, status int, raw []byte) error {
	msg := upstreamMessage(raw)
	callErr := &pkgerrors.UpstreamCallError{
		Method:   p.method,
		Endpoint: p.path,
		Status:   status,
		Message:  msg,
	}

	switch {
	case status == http.StatusUnauthorized:
		if msg == "" {
			msg = "authentication required"
		}
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, callErr, msg)
	case status == http.StatusForbidden:
		if msg == "" {
			msg = "access denied"
		}
		return pkgerrors.Wrap(pkgerrors.CodeForbidden, callErr, msg)
	case status == http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, callErr, msg)
	case status >= 400 && status < 500:
		if msg == "" {
			msg = "request rejected"
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, callErr, msg)
	default:
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, callErr, "commerce API error")
	}
}

// upstreamMessage extracts the {"message": ...} the commerce API attaches to
// error responses.
func upstreamMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

func isNotFound(err error) bool {
	appErr := pkgerrors.As(err)
	return appErr != nil && appErr.Code() == pkgerrors.CodeNotFound
}

func isRetryable(err error) bool {
	appErr := pkgerrors.As(err)
	if appErr == nil {
		return false
	}
	return pkgerrors.MetadataFor(appErr.Code()).Retryable
}

// serializeCookies flattens response cookies into a Cookie header value that
// later calls replay as the upstream credential.
func serializeCookies(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		if ck.Name == "" {
			continue
		}
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}
