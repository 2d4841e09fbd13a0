package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	Currency = "SAR"

	DefaultTable = "orders"
)

type Status string

const (
	StatusPending Status = "pending"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
)

// Form is the checkout form. Notes is the only optional field.
type Form struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Notes       string `json:"notes,omitempty"`
	AcceptTerms bool   `json:"accept_terms"`
}

// Amount is a decimal that encodes as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// Record is a row of the orders store. Field names are the wire contract.
type Record struct {
	ID              *int64        `json:"id,omitempty"`
	OrderNumber     string        `json:"order_number"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerAddress string        `json:"customer_address"`
	CustomerCity    string        `json:"customer_city"`
	DeliveryNotes   *string       `json:"delivery_notes"`
	Items           string        `json:"items"`
	ProductColor    string        `json:"product_color"`
	ProductQuantity int           `json:"product_quantity"`
	TotalAmount     Amount        `json:"total_amount"`
	Currency        string        `json:"currency"`
	Status          Status        `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	Notes           string        `json:"notes"`
	CreatedAt       *time.Time    `json:"created_at,omitempty"`
}

// Item is the shape of one entry of Record.Items.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    Amount `json:"price"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

// Confirmation is what the shopper sees after a successful submission.
type Confirmation struct {
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
}
