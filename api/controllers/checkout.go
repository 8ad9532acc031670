package controllers

import (
	"net/http"

	"github.com/smartshop/storefront-gateway/api/middleware"
	"github.com/smartshop/storefront-gateway/api/responses"
	checkoutsvc "github.com/smartshop/storefront-gateway/internal/checkout"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
)

// Checkout submits the session's cart as a commerce order. An empty cart
// answers 200 with no order rather than erroring, matching the storefront's
// silent no-op.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		order, err := svc.Submit(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order == nil {
			responses.WriteSuccess(w, map[string]any{"order": nil})
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
