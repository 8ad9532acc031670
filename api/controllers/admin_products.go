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

// ProductAdmin is the slice of the commerce client the admin catalog
// endpoints need.
type ProductAdmin interface {
	SaveProduct(ctx context.Context, credential string, product upstream.Product) (*upstream.Product, error)
	UpdateProduct(ctx context.Context, credential string, id int64, product upstream.Product) (*upstream.Product, error)
	DeleteProduct(ctx context.Context, credential string, id int64) error
}

type productPayload struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	Stock       int     `json:"stock" validate:"min=0"`
}

func (p productPayload) toProduct() upstream.Product {
	return upstream.Product{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

// AdminProductCreate creates a catalog entry.
func AdminProductCreate(api ProductAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin unavailable"))
			return
		}

		var body productPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := api.SaveProduct(r.Context(), sessionCredential(r), body.toProduct())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, saved)
	}
}

// AdminProductUpdate replaces a catalog entry.
func AdminProductUpdate(api ProductAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body productPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := api.UpdateProduct(r.Context(), sessionCredential(r), id, body.toProduct())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, saved)
	}
}

// AdminProductDelete removes a catalog entry.
func AdminProductDelete(api ProductAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := api.DeleteProduct(r.Context(), sessionCredential(r), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
