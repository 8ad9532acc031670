package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/storefront-gateway/api/middleware"
	"github.com/smartshop/storefront-gateway/internal/identity"
	"github.com/smartshop/storefront-gateway/internal/upstream"
	"github.com/smartshop/storefront-gateway/pkg/enums"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
)

type fakeCatalog struct {
	products []upstream.Product
	err      error
	page     int
	size     int
	cred     string
}

func (f *fakeCatalog) Products(_ context.Context, credential string, page, size int) ([]upstream.Product, error) {
	f.cred, f.page, f.size = credential, page, size
	return f.products, f.err
}

func (f *fakeCatalog) Product(_ context.Context, credential string, id int64) (*upstream.Product, error) {
	f.cred = credential
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
}

func catalogRouter(api CatalogBrowser) http.Handler {
	r := chi.NewRouter()
	r.Get("/products", ProductsList(api, nil))
	r.Get("/products/{productId}", ProductDetail(api, nil))
	return r
}

func doCatalog(handler http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	sess := &identity.Session{ID: "s1", Role: enums.RoleClient, State: identity.StateAuthenticated, Credential: "JSESSIONID=abc"}
	req = req.WithContext(middleware.WithSession(req.Context(), sess))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestProductsListForwardsPaging(t *testing.T) {
	api := &fakeCatalog{products: []upstream.Product{{ID: 1, Name: "Espresso", Price: 3.5}}}
	w := doCatalog(catalogRouter(api), "/products?page=2&size=50")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, api.page)
	assert.Equal(t, 50, api.size)
	assert.Equal(t, "JSESSIONID=abc", api.cred)
	assert.Contains(t, w.Body.String(), "Espresso")
}

func TestProductsListDefaultsAndBounds(t *testing.T) {
	api := &fakeCatalog{}
	handler := catalogRouter(api)

	w := doCatalog(handler, "/products")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, api.page)
	assert.Equal(t, 20, api.size)

	w = doCatalog(handler, "/products?size=1000")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doCatalog(handler, "/products?page=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductsListDegradesToEmptyOnUpstreamFailure(t *testing.T) {
	api := &fakeCatalog{err: pkgerrors.New(pkgerrors.CodeUpstream, "commerce API error")}
	w := doCatalog(catalogRouter(api), "/products")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestProductDetail(t *testing.T) {
	api := &fakeCatalog{products: []upstream.Product{{ID: 7, Name: "Filter", Price: 2}}}
	handler := catalogRouter(api)

	w := doCatalog(handler, "/products/7")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Filter")

	w = doCatalog(handler, "/products/8")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
