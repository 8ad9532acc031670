package controllers

import (
	"net/http"

	"github.com/smartshop/storefront-gateway/api/responses"
	"github.com/smartshop/storefront-gateway/api/validators"
	cartsvc "github.com/smartshop/storefront-gateway/internal/cart"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
)

type addCartItemRequest struct {
	ProductID int64   `json:"productId" validate:"required,min=1"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"min=0"`
	Quantity  int     `json:"quantity" validate:"min=0"`
}

type adjustCartItemRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartFetch serves the session's cart with totals.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		current, err := svc.Get(r.Context(), sessionID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartsvc.Summarize(current, svc.Rate()))
	}
}

// CartAdd appends a product to the cart or bumps its quantity.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.Add(r.Context(), sessionID(r), cartsvc.Item{
			ProductID: body.ProductID,
			Name:      body.Name,
			Price:     body.Price,
			Quantity:  body.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartsvc.Summarize(current, svc.Rate()))
	}
}

// CartRemove drops a line from the cart.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.Remove(r.Context(), sessionID(r), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartsvc.Summarize(current, svc.Rate()))
	}
}

// CartAdjust shifts a line's quantity by a signed delta.
func CartAdjust(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adjustCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.Adjust(r.Context(), sessionID(r), productID, body.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartsvc.Summarize(current, svc.Rate()))
	}
}
