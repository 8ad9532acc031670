package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartshop/storefront-gateway/internal/cart"
	"github.com/smartshop/storefront-gateway/internal/identity"
	"github.com/smartshop/storefront-gateway/internal/upstream"
	"github.com/smartshop/storefront-gateway/pkg/enums"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
)

// carts is the slice of the cart service checkout needs.
type carts interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
	Rate() decimal.Decimal
}

// commerceAPI is the slice of the upstream client checkout needs.
type commerceAPI interface {
	ClientMe(ctx context.Context, credential string) (*upstream.ClientAccount, error)
	CreateOrder(ctx context.Context, credential string, draft upstream.OrderDraft) (*upstream.Order, error)
}

// locker guards against concurrent submits of the same cart.
type locker interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	SubmitLockKey(sessionID string) string
}

// Service turns a session's cart into a commerce order.
type Service interface {
	// Submit prices the cart, creates a PENDING order upstream, and
	// clears the cart on success. An empty cart returns (nil, nil)
	// without touching the commerce API. On failure the cart is left
	// exactly as it was.
	Submit(ctx context.Context, sess *identity.Session) (*upstream.Order, error)
}

type service struct {
	carts   carts
	api     commerceAPI
	locks   locker
	lockTTL time.Duration
	logg    *logger.Logger
}

// NewService wires the checkout service.
func NewService(c carts, api commerceAPI, locks locker, lockTTL time.Duration, logg *logger.Logger) (Service, error) {
	if c == nil {
		return nil, fmt.Errorf("checkout: cart service is required")
	}
	if api == nil {
		return nil, fmt.Errorf("checkout: upstream client is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("checkout: locker is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("checkout: logger is required")
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &service{carts: c, api: api, locks: locks, lockTTL: lockTTL, logg: logg}, nil
}

func (s *service) Submit(ctx context.Context, sess *identity.Session) (*upstream.Order, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	current, err := s.carts.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if current.Empty() {
		return nil, nil
	}

	lockKey := s.locks.SubmitLockKey(sess.ID)
	acquired, err := s.locks.SetNX(ctx, lockKey, "1", s.lockTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "acquire submit lock")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	defer func() {
		if err := s.locks.Del(ctx, lockKey); err != nil {
			s.logg.Warn(ctx, fmt.Sprintf("submit lock release failed: %v", err))
		}
	}()

	profile, err := s.api.ClientMe(ctx, sess.Credential)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "client profile missing")
		}
		return nil, err
	}

	draft := s.buildDraft(profile.ID, current)
	order, err := s.api.CreateOrder(ctx, sess.Credential, draft)
	if err != nil {
		// Cart stays intact so the client can retry as-is.
		return nil, err
	}

	if err := s.carts.Clear(ctx, sess.ID); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("cart clear after checkout failed: %v", err))
	}
	return order, nil
}

func (s *service) buildDraft(clientID int64, current *cart.Cart) upstream.OrderDraft {
	totals := cart.ComputeTotals(current.Items, s.carts.Rate())

	items := make([]upstream.OrderItem, 0, len(current.Items))
	for _, line := range current.Items {
		items = append(items, upstream.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			TotalLine: cart.LineTotal(line).InexactFloat64(),
		})
	}

	return upstream.OrderDraft{
		ClientID:  clientID,
		OrderDate: time.Now().UTC().Format(time.RFC3339),
		Subtotal:  totals.Subtotal.InexactFloat64(),
		TVA:       totals.Tax.InexactFloat64(),
		Total:     totals.Total.InexactFloat64(),
		Status:    enums.OrderStatusPending,
		Items:     items,
	}
}
