package order

import (
	"context"
	"sync"
	"time"

	"dikra-store/internal/cart"
	"dikra-store/internal/logger"
	"dikra-store/internal/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Cart is the part of the cart store the submitter reads and, on success, clears.
type Cart interface {
	Snapshot() []cart.LineItem
	TotalAmount() decimal.Decimal
	Clear()
}

// View receives the user-visible outcome of a submission. Implementations
// must tolerate calls after the checkout has been dismissed.
type View interface {
	ShowValidationError(fe FieldError)
	ShowConfirmation(c Confirmation)
	ShowFailure(err error)
	ResetForm()
	CloseCheckout()
}

type nopView struct{}

func (nopView) ShowValidationError(FieldError) {}
func (nopView) ShowConfirmation(Confirmation)  {}
func (nopView) ShowFailure(error)              {}
func (nopView) ResetForm()                     {}
func (nopView) CloseCheckout()                 {}

// Submitter runs the checkout state machine:
// Idle -> Validating -> Submitting -> Success | Failed.
// A terminal state is kept until the next submission starts.
type Submitter struct {
	gateway Gateway
	table   string
	metrics *metrics.Orders

	numbers func() string
	now     func() time.Time

	mu      sync.Mutex
	state   State
	lastErr error
	busy    bool
}

type SubmitterOption func(*Submitter)

func WithNumberGenerator(fn func() string) SubmitterOption {
	return func(s *Submitter) { s.numbers = fn }
}

func WithClock(fn func() time.Time) SubmitterOption {
	return func(s *Submitter) { s.now = fn }
}

func WithMetrics(m *metrics.Orders) SubmitterOption {
	return func(s *Submitter) { s.metrics = m }
}

// NewSubmitter builds a submitter writing to table through gw. A nil gw is
// allowed: every submission then fails with ErrGatewayNotConfigured.
func NewSubmitter(gw Gateway, table string, opts ...SubmitterOption) *Submitter {
	if table == "" {
		table = DefaultTable
	}
	s := &Submitter{
		gateway: gw,
		table:   table,
		metrics: &metrics.Orders{},
		numbers: GenerateNumber,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError is the reason of the last Failed state, nil otherwise.
func (s *Submitter) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Busy reports whether the submit control is disabled.
func (s *Submitter) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Submitter) Metrics() *metrics.Orders {
	return s.metrics
}

// Submit validates f, writes an order for the cart's current lines and, on
// success, clears the cart. Validation failures leave everything untouched;
// gateway failures leave the cart and form for a retry. The gateway call is
// not cancelled when ctx is, so a dismissed checkout still completes.
func (s *Submitter) Submit(ctx context.Context, f Form, c Cart, v View) (*Confirmation, error) {
	if v == nil {
		v = nopView{}
	}
	if !s.begin() {
		return nil, ErrSubmissionInProgress
	}
	defer s.release()

	log := logger.FromCtx(ctx)
	s.metrics.Attempts.Inc()

	if errs := Validate(f); len(errs) > 0 {
		s.metrics.ValidationFailures.Inc()
		s.transition(StateIdle, nil)
		v.ShowValidationError(errs[0])
		return nil, errs
	}

	items := c.Snapshot()
	if len(items) == 0 {
		s.metrics.ValidationFailures.Inc()
		s.transition(StateIdle, nil)
		return nil, cart.ErrCartEmpty
	}
	total := c.TotalAmount()

	s.transition(StateSubmitting, nil)

	number := s.numbers()
	record, err := BuildRecord(number, f, items, total, s.now())
	if err != nil {
		return nil, s.fail(ctx, v, err)
	}

	if s.gateway == nil {
		return nil, s.fail(ctx, v, ErrGatewayNotConfigured)
	}

	timer := metrics.StartTimer()
	_, err = s.gateway.Insert(context.WithoutCancel(ctx), s.table, record)
	s.metrics.GatewayLatency.Set(timer.Duration())
	if err != nil {
		return nil, s.fail(ctx, v, &GatewayError{Op: "insert", Err: err})
	}

	conf := Confirmation{OrderNumber: number, Total: total, Currency: Currency}

	v.ShowConfirmation(conf)
	v.ResetForm()
	c.Clear()
	v.CloseCheckout()

	s.metrics.Succeeded.Inc()
	s.transition(StateSuccess, nil)

	log.Info("order saved",
		zap.String("order_number", number),
		zap.String("total", total.String()),
		zap.Int("lines", len(items)),
	)

	return &conf, nil
}

func (s *Submitter) fail(ctx context.Context, v View, err error) error {
	s.metrics.Failed.Inc()
	s.transition(StateFailed, err)
	logger.FromCtx(ctx).Error("failed to save order", zap.Error(err))
	v.ShowFailure(err)
	return err
}

func (s *Submitter) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	s.state = StateValidating
	s.lastErr = nil
	return true
}

func (s *Submitter) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Submitter) transition(to State, err error) {
	s.mu.Lock()
	s.state = to
	s.lastErr = err
	s.mu.Unlock()
}
