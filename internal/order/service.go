package order

import (
	"context"
	"strings"

	"dikra-store/internal/logger"

	"go.uber.org/zap"
)

// Service reads back orders from the store.
type Service interface {
	OrdersByEmail(ctx context.Context, email string) ([]Record, error)
	CheckConnection(ctx context.Context) bool
}

type service struct {
	gateway Gateway
	table   string
}

func NewService(gw Gateway, table string) Service {
	if table == "" {
		table = DefaultTable
	}
	return &service{gateway: gw, table: table}
}

// OrdersByEmail returns a customer's orders, newest first.
func (s *service) OrdersByEmail(ctx context.Context, email string) ([]Record, error) {
	log := logger.FromCtx(ctx)

	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	email = strings.TrimSpace(email)
	if !IsValidEmail(email) {
		return nil, ErrInvalidLookupEmail
	}

	records, err := s.gateway.Select(ctx, s.table, Query{
		Column:     "customer_email",
		Value:      email,
		OrderBy:    "created_at",
		Descending: true,
	})
	if err != nil {
		log.Error("failed to fetch orders", zap.Error(err))
		return nil, &GatewayError{Op: "select", Err: err}
	}

	return records, nil
}

// CheckConnection runs a one-row select against the orders table. Failures
// are only logged.
func (s *service) CheckConnection(ctx context.Context) bool {
	log := logger.FromCtx(ctx)

	if s.gateway == nil {
		log.Error("order gateway not configured")
		return false
	}

	if _, err := s.gateway.Select(ctx, s.table, Query{Limit: 1}); err != nil {
		log.Warn("order gateway connection failed", zap.Error(err))
		return false
	}

	log.Info("order gateway connection verified", zap.String("table", s.table))
	return true
}
