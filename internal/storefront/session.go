package storefront

import (
	"context"
	"sync"

	"dikra-store/internal/cart"
	"dikra-store/internal/catalog"
	"dikra-store/internal/display"
	"dikra-store/internal/logger"
	"dikra-store/internal/metrics"
	"dikra-store/internal/order"
	"dikra-store/internal/selector"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxNotices = 5

// Deps are the collaborators shared by every session.
type Deps struct {
	Catalog *catalog.Catalog
	Loader  display.Loader
	Gateway order.Gateway
	Table   string
	Metrics *metrics.Orders

	SubmitterOptions []order.SubmitterOption
}

// Session is one shopper's page: variant selection, pending quantity, cart and
// checkout. Operations are serialised by the session lock; the order insert
// runs outside it, and while it is in flight the cart cannot change.
type Session struct {
	id      string
	catalog *catalog.Catalog

	mu           sync.Mutex
	surface      *display.Surface
	selector     *selector.Selector
	cart         *cart.Store
	quantity     *cart.QuantityControl
	submitter    *order.Submitter
	activeThumb  int
	cartOpen     bool
	checkoutOpen bool
	draft        order.Form
	confirmation *order.Confirmation
	notices      []Notice
}

func NewSession(id string, d Deps) *Session {
	c := d.Catalog
	if c == nil {
		c = catalog.Default()
	}
	loader := d.Loader
	if loader == nil {
		loader = display.NopLoader
	}

	opts := d.SubmitterOptions
	if d.Metrics != nil {
		opts = append([]order.SubmitterOption{order.WithMetrics(d.Metrics)}, opts...)
	}

	surface := display.NewSurface(loader, c.ImageFor(c.DefaultColor(), catalog.MainView))

	s := &Session{
		id:          id,
		catalog:     c,
		surface:     surface,
		selector:    selector.New(c, surface, ProductName),
		cart:        cart.NewStore(),
		quantity:    cart.NewQuantityControl(),
		submitter:   order.NewSubmitter(d.Gateway, d.Table, opts...),
		activeThumb: catalog.MainView,
	}
	s.selector.OnViewSync(func(view int) { s.activeThumb = view })

	return s
}

func (s *Session) ID() string {
	return s.id
}

// Busy reports whether an order submission is in flight.
func (s *Session) Busy() bool {
	return s.submitter.Busy()
}

func (s *Session) SelectColor(ctx context.Context, color catalog.Color) selector.Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector.SelectColor(ctx, color)
}

func (s *Session) SelectView(ctx context.Context, view int) selector.Variant {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.selector.SelectView(ctx, view)
	s.activeThumb = v.View
	return v
}

func (s *Session) ChangeQuantity(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity.Change(delta)
}

// AddToCart adds the pending quantity of the current variant and opens the
// cart. The pending quantity is kept for the next add.
func (s *Session) AddToCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(ctx)
}

// BuyNow adds the current variant and goes straight to checkout.
func (s *Session) BuyNow(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addLocked(ctx); err != nil {
		return err
	}
	return s.openCheckoutLocked()
}

func (s *Session) addLocked(ctx context.Context) error {
	if s.submitter.Busy() {
		return order.ErrSubmissionInProgress
	}

	v := s.selector.Current()
	qty := s.quantity.Value()
	s.cart.Add(ProductID, ProductName, ProductPrice, v.Color, v.View, qty)

	s.pushNotice(Notice{Kind: NoticeInfo, Message: msgAdded})
	s.cartOpen = true

	logger.FromCtx(ctx).Info("added to cart",
		zap.String("color", string(v.Color)),
		zap.Int("view", v.View),
		zap.Int("quantity", qty),
	)
	return nil
}

func (s *Session) RemoveFromCart(ctx context.Context, productID string, color catalog.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitter.Busy() {
		return order.ErrSubmissionInProgress
	}
	s.cart.Remove(productID, color)

	logger.FromCtx(ctx).Info("removed from cart", zap.String("color", string(color)))
	return nil
}

func (s *Session) OpenCart() {
	s.mu.Lock()
	s.cartOpen = true
	s.mu.Unlock()
}

func (s *Session) CloseCart() {
	s.mu.Lock()
	s.cartOpen = false
	s.mu.Unlock()
}

// OpenCheckout moves from the cart to the checkout form. An empty cart is
// refused.
func (s *Session) OpenCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openCheckoutLocked()
}

func (s *Session) openCheckoutLocked() error {
	if s.cart.IsEmpty() {
		s.pushNotice(Notice{Kind: NoticeInfo, Message: msgCartEmpty})
		return cart.ErrCartEmpty
	}
	s.cartOpen = false
	s.checkoutOpen = true
	s.confirmation = nil
	return nil
}

// CloseCheckout dismisses the form. An in-flight submission is not cancelled.
func (s *Session) CloseCheckout() {
	s.mu.Lock()
	s.checkoutOpen = false
	s.mu.Unlock()
}

func (s *Session) BackToCart() {
	s.mu.Lock()
	s.checkoutOpen = false
	s.cartOpen = true
	s.mu.Unlock()
}

// Dismiss closes both the cart and the checkout.
func (s *Session) Dismiss() {
	s.mu.Lock()
	s.cartOpen = false
	s.checkoutOpen = false
	s.mu.Unlock()
}

// Submit places the order for the current cart. The form is kept as the
// draft so a failed attempt can be retried.
func (s *Session) Submit(ctx context.Context, f order.Form) (*order.Confirmation, error) {
	s.mu.Lock()
	if !s.checkoutOpen {
		s.mu.Unlock()
		return nil, ErrCheckoutClosed
	}
	s.draft = f
	s.mu.Unlock()

	return s.submitter.Submit(ctx, f, lockedCart{s}, sessionView{s})
}

func (s *Session) pushNotice(n Notice) {
	s.notices = append(s.notices, n)
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

// lockedCart gives the submitter access to the cart under the session lock.
type lockedCart struct {
	s *Session
}

func (c lockedCart) Snapshot() []cart.LineItem {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.cart.Snapshot()
}

func (c lockedCart) TotalAmount() decimal.Decimal {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.cart.TotalAmount()
}

func (c lockedCart) Clear() {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.cart.Clear()
}
