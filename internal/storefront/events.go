package storefront

import (
	"context"
	"fmt"

	"dikra-store/internal/catalog"
	"dikra-store/internal/order"
)

type EventType string

const (
	EventSelectColor    EventType = "select_color"
	EventSelectView     EventType = "select_view"
	EventChangeQuantity EventType = "change_quantity"
	EventAddToCart      EventType = "add_to_cart"
	EventBuyNow         EventType = "buy_now"
	EventRemoveFromCart EventType = "remove_from_cart"
	EventOpenCart       EventType = "open_cart"
	EventCloseCart      EventType = "close_cart"
	EventOpenCheckout   EventType = "open_checkout"
	EventCloseCheckout  EventType = "close_checkout"
	EventBackToCart     EventType = "back_to_cart"
	EventDismiss        EventType = "dismiss"
	EventSubmit         EventType = "submit"
)

// Event is a shopper interaction. Only the fields its type needs are read.
type Event struct {
	Type      EventType
	Color     catalog.Color
	View      int
	Delta     int
	ProductID string
	Form      order.Form
}

// Result is what a dispatched event produced.
type Result struct {
	View         View
	Confirmation *order.Confirmation
}

type Handler func(ctx context.Context, s *Session, ev Event) (*order.Confirmation, error)

// Dispatcher routes each event type to exactly one handler. Handlers are
// registered once at startup; dispatch is synchronous.
type Dispatcher struct {
	handlers map[EventType]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventType]Handler)}
}

func (d *Dispatcher) Register(t EventType, h Handler) error {
	if _, exists := d.handlers[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, t)
	}
	d.handlers[t] = h
	return nil
}

// Dispatch runs the handler for ev and returns the session's view afterwards,
// also when the handler failed.
func (d *Dispatcher) Dispatch(ctx context.Context, s *Session, ev Event) (Result, error) {
	h, ok := d.handlers[ev.Type]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}

	conf, err := h(ctx, s, ev)
	return Result{View: s.View(), Confirmation: conf}, err
}

// DefaultDispatcher wires every session operation to its event.
func DefaultDispatcher() *Dispatcher {
	d := NewDispatcher()

	handlers := map[EventType]Handler{
		EventSelectColor: func(ctx context.Context, s *Session, ev Event) (*order.Confirmation, error) {
			s.SelectColor(ctx, ev.Color)
			return nil, nil
		},
		EventSelectView: func(ctx context.Context, s *Session, ev Event) (*order.Confirmation, error) {
			s.SelectView(ctx, ev.View)
			return nil, nil
		},
		EventChangeQuantity: func(_ context.Context, s *Session, ev Event) (*order.Confirmation, error) {
			s.ChangeQuantity(ev.Delta)
			return nil, nil
		},
		EventAddToCart: func(ctx context.Context, s *Session, _ Event) (*order.Confirmation, error) {
			return nil, s.AddToCart(ctx)
		},
		EventBuyNow: func(ctx context.Context, s *Session, _ Event) (*order.Confirmation, error) {
			return nil, s.BuyNow(ctx)
		},
		EventRemoveFromCart: func(ctx context.Context, s *Session, ev Event) (*order.Confirmation, error) {
			productID := ev.ProductID
			if productID == "" {
				productID = ProductID
			}
			return nil, s.RemoveFromCart(ctx, productID, ev.Color)
		},
		EventOpenCart: func(_ context.Context, s *Session, _ Event) (*order.Confirmation, error) {
			s.OpenCart()
			return nil, nil
		},
		EventCloseCart: func(_ context.Context, s *Session, _ Event) (*order.Confirmation, error) {
			s.CloseCart()
			return nil, nil
		},
		EventOpenCheckout: func(_ context.Context, s *Session, _ Event) (*order.Confirmation, error) {
			return nil, s.OpenCheckout()
		},
		EventCloseCheckout: func(_ context.Context, s *Session, _ Event) (*order.Confirmation, error) {
			s.CloseCheckout()
			return nil, nil
		},
		EventBackToCart: func(_ context.Context, s *Session, _ Event) (*order.Confirmation, error) {
			s.BackToCart()
			return nil, nil
		},
		EventDismiss: func(_ context.Context, s *Session, _ Event) (*order.Confirmation, error) {
			s.Dismiss()
			return nil, nil
		},
		EventSubmit: func(ctx context.Context, s *Session, ev Event) (*order.Confirmation, error) {
			return s.Submit(ctx, ev.Form)
		},
	}

	for t, h := range handlers {
		if err := d.Register(t, h); err != nil {
			panic(err)
		}
	}
	return d
}
