package controllers

import (
	"context"
	"net/http"

	"github.com/smartshop/storefront-gateway/api/responses"
	"github.com/smartshop/storefront-gateway/internal/upstream"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
)

// ProfileReader is the slice of the commerce client the account endpoints
// need.
type ProfileReader interface {
	ClientMe(ctx context.Context, credential string) (*upstream.ClientAccount, error)
	ClientOrders(ctx context.Context, credential string, clientID int64) ([]upstream.Order, error)
}

// ClientProfile serves the client account bound to the session's identity.
func ClientProfile(api ProfileReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile unavailable"))
			return
		}

		account, err := api.ClientMe(r.Context(), sessionCredential(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		account.Password = ""

		responses.WriteSuccess(w, account)
	}
}

// ClientOrderHistory serves the session owner's past orders.
func ClientOrderHistory(api ProfileReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile unavailable"))
			return
		}

		// History reads degrade to an empty list so the account page still
		// renders when the commerce API misbehaves.
		credential := sessionCredential(r)
		account, err := api.ClientMe(r.Context(), credential)
		if err != nil {
			if logg != nil {
				logg.Warn(r.Context(), "profile read failed, serving empty history")
			}
			responses.WriteSuccess(w, []upstream.Order{})
			return
		}

		orders, err := api.ClientOrders(r.Context(), credential, account.ID)
		if err != nil {
			if logg != nil {
				logg.Warn(r.Context(), "order history read failed, serving empty history")
			}
			orders = []upstream.Order{}
		}

		responses.WriteSuccess(w, orders)
	}
}
