package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"dikra-store/internal/cart"
	"dikra-store/internal/catalog"
	"dikra-store/internal/metrics"
	"dikra-store/internal/order"
	"dikra-store/internal/storefront"
	"dikra-store/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu        sync.Mutex
	inserted  []order.Record
	insertErr error
	selected  []order.Record
	selectErr error
}

func (g *fakeGateway) Insert(ctx context.Context, table string, r order.Record) ([]order.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.insertErr != nil {
		return nil, g.insertErr
	}
	g.inserted = append(g.inserted, r)
	return []order.Record{r}, nil
}

func (g *fakeGateway) Select(ctx context.Context, table string, q order.Query) ([]order.Record, error) {
	if g.selectErr != nil {
		return nil, g.selectErr
	}
	return g.selected, nil
}

type testServer struct {
	handler http.Handler
	gateway *fakeGateway
	metrics *metrics.Orders
}

func newTestServer(t *testing.T, gw order.Gateway) *testServer {
	t.Helper()

	m := &metrics.Orders{}
	c := catalog.Default()
	deps := storefront.Deps{
		Catalog: c,
		Gateway: gw,
		Table:   "orders",
		Metrics: m,
		SubmitterOptions: []order.SubmitterOption{
			order.WithNumberGenerator(func() string { return "DKHTTP1" }),
			order.WithClock(func() time.Time { return time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC) }),
		},
	}

	h := NewHandler(
		c,
		storefront.NewRegistry(storefront.NewFactory(deps), time.Hour),
		storefront.DefaultDispatcher(),
		order.NewService(gw, "orders"),
		m,
	)

	ts := &testServer{handler: h.Routes(), metrics: m}
	if fg, ok := gw.(*fakeGateway); ok {
		ts.gateway = fg
	}
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if session != "" {
		req = req.WithContext(transport.WithSessionID(req.Context(), session))
	}

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func validForm() order.Form {
	return order.Form{
		Name:        "سارة أحمد",
		Email:       "sara@example.com",
		Phone:       "0551234567",
		Address:     "حي النرجس، شارع 12",
		City:        "الرياض",
		AcceptTerms: true,
	}
}

func TestHandler_Health(t *testing.T) {
	ts := newTestServer(t, &fakeGateway{})

	w := ts.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OK")
}

func TestHandler_Catalog(t *testing.T) {
	ts := newTestServer(t, &fakeGateway{})

	w := ts.do(t, http.MethodGet, "/catalog", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[catalogResponse](t, w)
	assert.Equal(t, catalog.ColorBlack, resp.DefaultColor)
	assert.Len(t, resp.Colors, 6)
	assert.Len(t, resp.Gallery, 4)
	assert.Equal(t, storefront.ProductID, resp.Product.ID)
}

func TestHandler_Session(t *testing.T) {
	ts := newTestServer(t, &fakeGateway{})

	t.Run("Missing session", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/session", "", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Variant and quantity", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/variant/color", "s1", colorRequest{Color: catalog.ColorWhite})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[sessionResponse](t, w)
		assert.Equal(t, catalog.ColorWhite, resp.Session.Variant.Color)
		assert.Equal(t, 3, resp.Session.Variant.View)

		w = ts.do(t, http.MethodPost, "/variant/view", "s1", viewRequest{View: 2})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, decode[sessionResponse](t, w).Session.Variant.View)

		w = ts.do(t, http.MethodPost, "/quantity", "s1", quantityRequest{Delta: -3})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, decode[sessionResponse](t, w).Session.Quantity)

		w = ts.do(t, http.MethodGet, "/session", "s1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp = decode[sessionResponse](t, w)
		assert.Equal(t, "s1", resp.Session.SessionID)
		assert.Equal(t, catalog.ColorWhite, resp.Session.Variant.Color)
	})

	t.Run("Bad requests", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/variant/color", "s2", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = ts.do(t, http.MethodPost, "/variant/color", "s2", map[string]string{"colour": "red"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = ts.do(t, http.MethodPost, "/variant/view", "s2", viewRequest{View: 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = ts.do(t, http.MethodPost, "/quantity", "s2", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = ts.do(t, http.MethodPost, "/quantity", "s2", quantityRequest{Delta: math.MaxInt64 / 2})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrInvalidQuantity.Error())

		w = ts.do(t, http.MethodPost, "/quantity", "s2", quantityRequest{Delta: -cart.MaxQuantity - 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = ts.do(t, http.MethodDelete, "/cart/items", "s2", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Sessions are isolated", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/cart/items", "s3", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodGet, "/session", "s4", nil)
		assert.Zero(t, decode[sessionResponse](t, w).Session.Cart.TotalQuantity)
	})
}

func TestHandler_Cart(t *testing.T) {
	ts := newTestServer(t, &fakeGateway{})

	w := ts.do(t, http.MethodPost, "/checkout/open", "c1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decode[errorResponse](t, w)
	require.NotNil(t, errResp.Session)
	assert.False(t, errResp.Session.Checkout.Open)

	w = ts.do(t, http.MethodPost, "/cart/items", "c1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[sessionResponse](t, w)
	assert.True(t, resp.Session.CartOpen)
	assert.Equal(t, 1, resp.Session.Cart.TotalQuantity)

	w = ts.do(t, http.MethodPost, "/cart/close", "c1", nil)
	assert.False(t, decode[sessionResponse](t, w).Session.CartOpen)

	w = ts.do(t, http.MethodPost, "/cart/open", "c1", nil)
	assert.True(t, decode[sessionResponse](t, w).Session.CartOpen)

	w = ts.do(t, http.MethodPost, "/checkout/open", "c1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[sessionResponse](t, w).Session.Checkout.Open)

	w = ts.do(t, http.MethodPost, "/checkout/back", "c1", nil)
	resp = decode[sessionResponse](t, w)
	assert.False(t, resp.Session.Checkout.Open)
	assert.True(t, resp.Session.CartOpen)

	w = ts.do(t, http.MethodPost, "/dismiss", "c1", nil)
	assert.False(t, decode[sessionResponse](t, w).Session.CartOpen)

	w = ts.do(t, http.MethodDelete, "/cart/items?color=black", "c1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[sessionResponse](t, w).Session.Cart.Lines)
}

func TestHandler_Checkout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t, &fakeGateway{})

		w := ts.do(t, http.MethodPost, "/buy-now", "k1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodPost, "/checkout", "k1", validForm())

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[sessionResponse](t, w)
		require.NotNil(t, resp.Confirmation)
		assert.Equal(t, "DKHTTP1", resp.Confirmation.OrderNumber)
		assert.Equal(t, "349", resp.Confirmation.Total.String())
		assert.Empty(t, resp.Session.Cart.Lines)
		assert.Len(t, ts.gateway.inserted, 1)

		w = ts.do(t, http.MethodGet, "/metrics", "", nil)
		m := decode[metricsResponse](t, w)
		assert.Equal(t, uint64(1), m.Orders.Succeeded)
		assert.Equal(t, 1, m.Sessions)
	})

	t.Run("Validation failure", func(t *testing.T) {
		ts := newTestServer(t, &fakeGateway{})
		ts.do(t, http.MethodPost, "/buy-now", "k2", nil)

		f := validForm()
		f.Email = "not-an-email"
		f.AcceptTerms = false
		w := ts.do(t, http.MethodPost, "/checkout", "k2", f)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decode[errorResponse](t, w)
		require.Len(t, resp.Fields, 2)
		assert.Equal(t, "email", resp.Fields[0].Field)
		assert.Equal(t, "accept_terms", resp.Fields[1].Field)
		require.NotNil(t, resp.Session)
		assert.Equal(t, 1, resp.Session.Cart.TotalQuantity)
		assert.Empty(t, ts.gateway.inserted)
	})

	t.Run("Gateway failure", func(t *testing.T) {
		ts := newTestServer(t, &fakeGateway{insertErr: errors.New("network unreachable")})
		ts.do(t, http.MethodPost, "/buy-now", "k3", nil)

		w := ts.do(t, http.MethodPost, "/checkout", "k3", validForm())

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decode[errorResponse](t, w)
		assert.Contains(t, resp.Error, "network unreachable")
		require.NotNil(t, resp.Session)
		assert.Equal(t, 1, resp.Session.Cart.TotalQuantity)
		assert.False(t, resp.Session.Checkout.Busy)
	})

	t.Run("Gateway not configured", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.do(t, http.MethodPost, "/buy-now", "k4", nil)

		w := ts.do(t, http.MethodPost, "/checkout", "k4", validForm())

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Checkout not open", func(t *testing.T) {
		ts := newTestServer(t, &fakeGateway{})
		ts.do(t, http.MethodPost, "/cart/items", "k5", nil)

		w := ts.do(t, http.MethodPost, "/checkout", "k5", validForm())

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		ts := newTestServer(t, &fakeGateway{})

		w := ts.do(t, http.MethodPost, "/checkout", "k6", "not an object")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Orders(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gw := &fakeGateway{selected: []order.Record{{OrderNumber: "DK2"}, {OrderNumber: "DK1"}}}
		ts := newTestServer(t, gw)

		w := ts.do(t, http.MethodGet, "/orders?email=sara@example.com", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[map[string][]order.Record](t, w)
		require.Len(t, resp["orders"], 2)
		assert.Equal(t, "DK2", resp["orders"][0].OrderNumber)
	})

	t.Run("Invalid email", func(t *testing.T) {
		ts := newTestServer(t, &fakeGateway{})

		w := ts.do(t, http.MethodGet, "/orders?email=nope", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Gateway error", func(t *testing.T) {
		ts := newTestServer(t, &fakeGateway{selectErr: errors.New("permission denied")})

		w := ts.do(t, http.MethodGet, "/orders?email=sara@example.com", "", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
