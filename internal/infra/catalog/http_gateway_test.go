package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.Handler) service.CatalogGateway {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = server.URL
	cfg.Upstream.Timeout = 5 * time.Second

	return NewHTTPGateway(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchProducts_MapsUpstreamDocument(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/product/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"products":[
			{"_id":"p1","name":"Walnut Tray","price":1500,"stock":0,
			 "variants":[{"_id":"v1","color":"Natural","stock":3,"images":["a.jpg"]}]}
		]}`)
	}))

	products, err := gateway.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.InDelta(t, 1500, products[0].BasePrice, 0.0001)
	require.Len(t, products[0].Variants, 1)
	assert.Equal(t, "Natural", products[0].Variants[0].Color)
	assert.True(t, products[0].InStock())
}

func TestFetchActiveOffers_NilApplicableSetMeansAll(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/offer/active", r.URL.Path)
		io.WriteString(w, `{"offers":[
			{"_id":"o1","discountPercentage":15,"active":true},
			{"_id":"o2","discountPercentage":20,"active":true,"applicableProducts":["p2"]}
		]}`)
	}))

	offers, err := gateway.FetchActiveOffers(context.Background())

	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.True(t, offers[0].AppliesTo("anything"))
	assert.False(t, offers[1].AppliesTo("p1"))
	assert.True(t, offers[1].AppliesTo("p2"))
}

func TestFetchCategories(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"categories":[{"name":"Trays"},{"name":"Decor"}]}`)
	}))

	categories, err := gateway.FetchCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Trays", "Decor"}, categories)
}

func TestFetchProducts_NonSuccessStatus(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := gateway.FetchProducts(context.Background())

	require.Error(t, err)
}
