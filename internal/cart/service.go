package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
	"github.com/smartshop/storefront-gateway/pkg/redis"
)

// store is the slice of the redis client the cart service needs.
type store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Service owns a session's cart: reading it, applying mutations, and
// clearing it after a successful checkout.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Add(ctx context.Context, sessionID string, item Item) (*Cart, error)
	Remove(ctx context.Context, sessionID string, productID int64) (*Cart, error)
	Adjust(ctx context.Context, sessionID string, productID int64, delta int) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
	// Rate is the tax rate applied at checkout, exposed so callers can
	// render totals consistent with submission.
	Rate() decimal.Decimal
}

type service struct {
	store store
	rate  decimal.Decimal
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService wires the cart service. Carts live as long as the session that
// owns them.
func NewService(st store, rate decimal.Decimal, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("cart: store is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("cart: logger is required")
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("cart: tax rate must not be negative")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart: ttl must be positive")
	}
	return &service{store: st, rate: rate, ttl: ttl, logg: logg}, nil
}

func (s *service) Rate() decimal.Decimal {
	return s.rate
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no session")
	}
	raw, err := s.store.Get(ctx, s.store.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return &Cart{Items: []Item{}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read cart")
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.logg.Warn(ctx, "dropping unreadable cart snapshot")
		_ = s.store.Del(ctx, s.store.CartKey(sessionID))
		return &Cart{Items: []Item{}}, nil
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return &c, nil
}

func (s *service) Add(ctx context.Context, sessionID string, item Item) (*Cart, error) {
	if item.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	return s.mutate(ctx, sessionID, func(items []Item) []Item {
		return addItem(items, item)
	})
}

func (s *service) Remove(ctx context.Context, sessionID string, productID int64) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(items []Item) []Item {
		return removeItem(items, productID)
	})
}

func (s *service) Adjust(ctx context.Context, sessionID string, productID int64, delta int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(items []Item) []Item {
		return adjustQuantity(items, productID, delta)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Del(ctx, s.store.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (s *service) mutate(ctx context.Context, sessionID string, apply func([]Item) []Item) (*Cart, error) {
	current, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current.Items = apply(current.Items)
	current.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(current)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(sessionID), string(raw), s.ttl); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write cart")
	}
	return current, nil
}
