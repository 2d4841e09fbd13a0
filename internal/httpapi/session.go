package httpapi

import (
	"errors"
	"net/http"

	"dikra-store/internal/cart"
	"dikra-store/internal/catalog"
	"dikra-store/internal/order"
	"dikra-store/internal/storefront"
	"dikra-store/internal/utils"
)

var (
	ErrMissingSession  = errors.New("no session on request")
	ErrMissingColor    = errors.New("color is required")
	ErrInvalidView     = errors.New("view must be 1 or greater")
	ErrInvalidQuantity = errors.New("quantity change is out of range")
)

type sessionResponse struct {
	Session      storefront.View     `json:"session"`
	Confirmation *order.Confirmation `json:"confirmation,omitempty"`
}

type colorRequest struct {
	Color catalog.Color `json:"color"`
}

type viewRequest struct {
	View int `json:"view"`
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(r)
	if !ok {
		writeError(w, r, ErrMissingSession, nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sessionResponse{Session: s.View()})
}

func (h *Handler) selectColor(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Color == "" {
		utils.WriteJSONError(w, ErrMissingColor.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, storefront.Event{Type: storefront.EventSelectColor, Color: req.Color})
}

func (h *Handler) selectView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.View < 1 {
		utils.WriteJSONError(w, ErrInvalidView.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, storefront.Event{Type: storefront.EventSelectView, View: req.View})
}

func (h *Handler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Delta > cart.MaxQuantity || req.Delta < -cart.MaxQuantity {
		utils.WriteJSONError(w, ErrInvalidQuantity.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, storefront.Event{Type: storefront.EventChangeQuantity, Delta: req.Delta})
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	color := catalog.Color(q.Get("color"))
	if color == "" {
		utils.WriteJSONError(w, ErrMissingColor.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, storefront.Event{
		Type:      storefront.EventRemoveFromCart,
		ProductID: q.Get("product_id"),
		Color:     color,
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var form order.Form
	if err := utils.DecodeJSON(r, &form); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, storefront.Event{Type: storefront.EventSubmit, Form: form})
}

// event handles routes whose event carries no payload.
func (h *Handler) event(t storefront.EventType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.dispatch(w, r, storefront.Event{Type: t})
	}
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, ev storefront.Event) {
	s, ok := h.session(r)
	if !ok {
		writeError(w, r, ErrMissingSession, nil)
		return
	}

	res, err := h.dispatcher.Dispatch(r.Context(), s, ev)
	if err != nil {
		view := res.View
		writeError(w, r, err, &view)
		return
	}

	utils.WriteJSON(w, http.StatusOK, sessionResponse{Session: res.View, Confirmation: res.Confirmation})
}
