package order

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dikra-store/internal/cart"

	"github.com/shopspring/decimal"
)

// BuildRecord turns a validated form and a cart snapshot into the record
// written to the orders store.
//
// product_color and product_quantity are taken from the first line only; an
// order with several lines keeps the full detail in items.
func BuildRecord(number string, f Form, items []cart.LineItem, total decimal.Decimal, now time.Time) (Record, error) {
	if len(items) == 0 {
		return Record{}, cart.ErrCartEmpty
	}

	encoded, err := EncodeItems(items)
	if err != nil {
		return Record{}, err
	}

	var notes *string
	if n := strings.TrimSpace(f.Notes); n != "" {
		notes = &n
	}

	first := items[0]

	return Record{
		OrderNumber:     number,
		CustomerName:    strings.TrimSpace(f.Name),
		CustomerEmail:   strings.TrimSpace(f.Email),
		CustomerPhone:   strings.TrimSpace(f.Phone),
		CustomerAddress: strings.TrimSpace(f.Address),
		CustomerCity:    strings.TrimSpace(f.City),
		DeliveryNotes:   notes,
		Items:           encoded,
		ProductColor:    string(first.Color),
		ProductQuantity: first.Quantity,
		TotalAmount:     NewAmount(total),
		Currency:        Currency,
		Status:          StatusPending,
		PaymentStatus:   PaymentStatusPending,
		Notes:           fmt.Sprintf("Order placed via website on %s", now.Format("2006-01-02")),
	}, nil
}

// EncodeItems serialises the lines into the JSON string stored in items.
func EncodeItems(items []cart.LineItem) (string, error) {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, Item{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    NewAmount(it.UnitPrice),
			Color:    string(it.Color),
			Quantity: it.Quantity,
			Image:    strconv.Itoa(it.View),
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode order items: %w", err)
	}
	return string(b), nil
}

// DecodeItems is the inverse of EncodeItems.
func DecodeItems(raw string) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return items, nil
}
