package controllers

import (
	"context"
	"net/http"

	"github.com/smartshop/storefront-gateway/api/middleware"
	"github.com/smartshop/storefront-gateway/api/responses"
	"github.com/smartshop/storefront-gateway/api/validators"
	"github.com/smartshop/storefront-gateway/internal/upstream"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
)

// CatalogBrowser is the slice of the commerce client the storefront catalog
// endpoints need.
type CatalogBrowser interface {
	Products(ctx context.Context, credential string, page, size int) ([]upstream.Product, error)
	Product(ctx context.Context, credential string, id int64) (*upstream.Product, error)
}

// ProductsList serves the paginated catalog the storefront renders.
func ProductsList(api CatalogBrowser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := validators.ParseQueryInt(r, "size", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := api.Products(r.Context(), sessionCredential(r), page, size)
		if err != nil {
			// The storefront renders an empty shelf instead of an error
			// page when the catalog read fails.
			if logg != nil {
				logg.Warn(r.Context(), "catalog read failed, serving empty list")
			}
			products = []upstream.Product{}
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductDetail serves one catalog entry.
func ProductDetail(api CatalogBrowser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := api.Product(r.Context(), sessionCredential(r), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// sessionCredential returns the upstream credential of the current session,
// or "" for anonymous requests.
func sessionCredential(r *http.Request) string {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		return sess.Credential
	}
	return ""
}

// sessionID returns the current session's id, or "" for anonymous requests.
func sessionID(r *http.Request) string {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		return sess.ID
	}
	return ""
}
