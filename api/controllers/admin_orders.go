package controllers

import (
	"context"
	"net/http"

	"github.com/smartshop/storefront-gateway/api/responses"
	"github.com/smartshop/storefront-gateway/api/validators"
	"github.com/smartshop/storefront-gateway/internal/upstream"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
)

// OrderAdmin is the slice of the commerce client the admin order endpoints
// need.
type OrderAdmin interface {
	Orders(ctx context.Context, credential string) ([]upstream.Order, error)
	ConfirmOrder(ctx context.Context, credential string, id int64) (*upstream.Order, error)
	CancelOrder(ctx context.Context, credential string, id int64) (*upstream.Order, error)
	DeleteOrder(ctx context.Context, credential string, id int64) error
}

// AdminOrderList serves every order across clients.
func AdminOrderList(api OrderAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order admin unavailable"))
			return
		}

		orders, err := api.Orders(r.Context(), sessionCredential(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// AdminOrderConfirm moves a pending order to CONFIRMED.
func AdminOrderConfirm(api OrderAdmin, logg *logger.Logger) http.HandlerFunc {
	return orderTransition(api, logg, func(ctx context.Context, api OrderAdmin, credential string, id int64) (*upstream.Order, error) {
		return api.ConfirmOrder(ctx, credential, id)
	})
}

// AdminOrderCancel moves a pending order to CANCELED.
func AdminOrderCancel(api OrderAdmin, logg *logger.Logger) http.HandlerFunc {
	return orderTransition(api, logg, func(ctx context.Context, api OrderAdmin, credential string, id int64) (*upstream.Order, error) {
		return api.CancelOrder(ctx, credential, id)
	})
}

func orderTransition(api OrderAdmin, logg *logger.Logger, apply func(context.Context, OrderAdmin, string, int64) (*upstream.Order, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order admin unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := apply(r.Context(), api, sessionCredential(r), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// AdminOrderDelete removes an order.
func AdminOrderDelete(api OrderAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order admin unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := api.DeleteOrder(r.Context(), sessionCredential(r), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
