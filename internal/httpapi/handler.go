package httpapi

import (
	"net/http"

	"dikra-store/internal/catalog"
	"dikra-store/internal/metrics"
	"dikra-store/internal/order"
	"dikra-store/internal/storefront"
	"dikra-store/internal/transport"
	"dikra-store/internal/utils"
)

// Handler exposes the storefront sessions over JSON.
type Handler struct {
	catalog    *catalog.Catalog
	registry   *storefront.Registry
	dispatcher *storefront.Dispatcher
	orders     order.Service
	metrics    *metrics.Orders
}

func NewHandler(
	c *catalog.Catalog,
	registry *storefront.Registry,
	dispatcher *storefront.Dispatcher,
	orders order.Service,
	m *metrics.Orders,
) *Handler {
	return &Handler{
		catalog:    c,
		registry:   registry,
		dispatcher: dispatcher,
		orders:     orders,
		metrics:    m,
	}
}

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /catalog", h.getCatalog)
	mux.HandleFunc("GET /metrics", h.getMetrics)
	mux.HandleFunc("GET /orders", h.listOrders)

	mux.HandleFunc("GET /session", h.getSession)
	mux.HandleFunc("POST /variant/color", h.selectColor)
	mux.HandleFunc("POST /variant/view", h.selectView)
	mux.HandleFunc("POST /quantity", h.changeQuantity)
	mux.HandleFunc("POST /cart/items", h.event(storefront.EventAddToCart))
	mux.HandleFunc("DELETE /cart/items", h.removeFromCart)
	mux.HandleFunc("POST /cart/open", h.event(storefront.EventOpenCart))
	mux.HandleFunc("POST /cart/close", h.event(storefront.EventCloseCart))
	mux.HandleFunc("POST /buy-now", h.event(storefront.EventBuyNow))
	mux.HandleFunc("POST /checkout/open", h.event(storefront.EventOpenCheckout))
	mux.HandleFunc("POST /checkout/close", h.event(storefront.EventCloseCheckout))
	mux.HandleFunc("POST /checkout/back", h.event(storefront.EventBackToCart))
	mux.HandleFunc("POST /dismiss", h.event(storefront.EventDismiss))
	mux.HandleFunc("POST /checkout", h.submit)

	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

type catalogResponse struct {
	Product      storefront.ProductInfo `json:"product"`
	DefaultColor catalog.Color          `json:"default_color"`
	Colors       []catalog.ColorOption  `json:"colors"`
	Gallery      []catalog.GalleryItem  `json:"gallery"`
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, catalogResponse{
		Product:      storefront.Product(),
		DefaultColor: h.catalog.DefaultColor(),
		Colors:       h.catalog.Colors(),
		Gallery:      h.catalog.Gallery(),
	})
}

type metricsResponse struct {
	Orders   metrics.OrdersSnapshot `json:"orders"`
	Sessions int                    `json:"sessions"`
}

func (h *Handler) getMetrics(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, metricsResponse{
		Orders:   h.metrics.Snapshot(),
		Sessions: h.registry.Len(),
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	records, err := h.orders.OrdersByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"orders": records})
}

// session returns the caller's session. The session middleware guarantees
// the id; a missing one is a wiring error.
func (h *Handler) session(r *http.Request) (*storefront.Session, bool) {
	id, ok := transport.SessionIDFrom(r.Context())
	if !ok {
		return nil, false
	}
	return h.registry.Get(id), true
}
