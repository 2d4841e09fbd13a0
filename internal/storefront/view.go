package storefront

import (
	"fmt"

	"dikra-store/internal/cart"
	"dikra-store/internal/display"
	"dikra-store/internal/order"
	"dikra-store/internal/selector"
	"dikra-store/internal/utils"
)

type NoticeKind string

const (
	NoticeInfo         NoticeKind = "info"
	NoticeValidation   NoticeKind = "validation"
	NoticeConfirmation NoticeKind = "confirmation"
	NoticeFailure      NoticeKind = "failure"
)

const (
	msgAdded     = "تم الإضافة!"
	msgCartEmpty = "سلتك فارغة!"
	msgFailure   = "حدث خطأ أثناء حفظ الطلب. يرجى المحاولة مرة أخرى."
	msgConfirmed = "تم تأكيد طلبك بنجاح! رقم الطلب: #%s المجموع: %s. سيتم التواصل معك قريباً لتأكيد التفاصيل."
)

// Notice is a message shown to the shopper.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Field   string     `json:"field,omitempty"`
	Message string     `json:"message"`
	Detail  string     `json:"detail,omitempty"`
}

type CheckoutView struct {
	Open         bool                `json:"open"`
	State        string              `json:"state"`
	Busy         bool                `json:"busy"`
	Form         order.Form          `json:"form"`
	LastError    string              `json:"last_error,omitempty"`
	Confirmation *order.Confirmation `json:"confirmation,omitempty"`
}

// View is everything the page renders for a session.
type View struct {
	SessionID       string           `json:"session_id"`
	Product         ProductInfo      `json:"product"`
	Variant         selector.Variant `json:"variant"`
	Display         display.State    `json:"display"`
	ActiveThumbnail int              `json:"active_thumbnail"`
	Quantity        int              `json:"quantity"`
	Cart            cart.Summary     `json:"cart"`
	CartTotalLabel  string           `json:"cart_total_label"`
	CartOpen        bool             `json:"cart_open"`
	Checkout        CheckoutView     `json:"checkout"`
	Notices         []Notice         `json:"notices"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := cart.Summarize(s.catalog, s.cart)

	checkout := CheckoutView{
		Open:         s.checkoutOpen,
		State:        s.submitter.State().String(),
		Busy:         s.submitter.Busy(),
		Form:         s.draft,
		Confirmation: s.confirmation,
	}
	if err := s.submitter.LastError(); err != nil {
		checkout.LastError = err.Error()
	}

	notices := make([]Notice, len(s.notices))
	copy(notices, s.notices)

	return View{
		SessionID:       s.id,
		Product:         Product(),
		Variant:         s.selector.Current(),
		Display:         s.surface.State(),
		ActiveThumbnail: s.activeThumb,
		Quantity:        s.quantity.Value(),
		Cart:            summary,
		CartTotalLabel:  utils.FormatSAR(summary.TotalAmount),
		CartOpen:        s.cartOpen,
		Checkout:        checkout,
		Notices:         notices,
	}
}

// sessionView receives the submitter's outcome. It tolerates calls after the
// shopper has dismissed the checkout.
type sessionView struct {
	s *Session
}

func (v sessionView) ShowValidationError(fe order.FieldError) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.pushNotice(Notice{Kind: NoticeValidation, Field: fe.Field, Message: fe.Message})
}

func (v sessionView) ShowConfirmation(c order.Confirmation) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	v.s.confirmation = &c
	v.s.pushNotice(Notice{
		Kind:    NoticeConfirmation,
		Message: fmt.Sprintf(msgConfirmed, c.OrderNumber, utils.FormatSAR(c.Total)),
	})
}

func (v sessionView) ShowFailure(err error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.pushNotice(Notice{Kind: NoticeFailure, Message: msgFailure, Detail: err.Error()})
}

func (v sessionView) ResetForm() {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.draft = order.Form{}
}

func (v sessionView) CloseCheckout() {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.checkoutOpen = false
}
