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

// ClientAdmin is the slice of the commerce client the admin client
// management endpoints need.
type ClientAdmin interface {
	Clients(ctx context.Context, credential string) ([]upstream.ClientAccount, error)
	SaveClient(ctx context.Context, credential string, account upstream.ClientAccount) (*upstream.ClientAccount, error)
	UpdateClient(ctx context.Context, credential string, id int64, account upstream.ClientAccount) (*upstream.ClientAccount, error)
	DeleteClient(ctx context.Context, credential string, id int64) error
}

type clientPayload struct {
	Username      string  `json:"username" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password"`
	FidelityLevel string  `json:"fidelityLevel"`
	TotalOrders   int     `json:"totalOrders"`
	TotalSpent    float64 `json:"totalSpent"`
}

func (p clientPayload) toAccount() upstream.ClientAccount {
	return upstream.ClientAccount{
		Username:      p.Username,
		Email:         p.Email,
		Password:      p.Password,
		FidelityLevel: p.FidelityLevel,
		TotalOrders:   p.TotalOrders,
		TotalSpent:    p.TotalSpent,
	}
}

func scrubClients(accounts []upstream.ClientAccount) []upstream.ClientAccount {
	for i := range accounts {
		accounts[i].Password = ""
	}
	return accounts
}

// AdminClientList serves every client account.
func AdminClientList(api ClientAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client admin unavailable"))
			return
		}

		accounts, err := api.Clients(r.Context(), sessionCredential(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, scrubClients(accounts))
	}
}

// AdminClientCreate creates a client account.
func AdminClientCreate(api ClientAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client admin unavailable"))
			return
		}

		var body clientPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := api.SaveClient(r.Context(), sessionCredential(r), body.toAccount())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved.Password = ""

		responses.WriteSuccessStatus(w, http.StatusCreated, saved)
	}
}

// AdminClientUpdate updates a client account.
func AdminClientUpdate(api ClientAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client admin unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "clientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body clientPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := api.UpdateClient(r.Context(), sessionCredential(r), id, body.toAccount())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved.Password = ""

		responses.WriteSuccess(w, saved)
	}
}

// AdminClientDelete removes a client account.
func AdminClientDelete(api ClientAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "client admin unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "clientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := api.DeleteClient(r.Context(), sessionCredential(r), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
