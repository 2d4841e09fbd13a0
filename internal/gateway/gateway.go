package gateway

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"dikra-store/internal/config"
	"dikra-store/internal/order"
)

var (
	// -- Construction --
	ErrNilConfig = errors.New("gateway: nil config")
	ErrNilDB     = errors.New("gateway: postgres driver needs a database handle")

	// -- Query --
	ErrInvalidTable  = errors.New("gateway: invalid table name")
	ErrUnknownColumn = errors.New("gateway: unknown column")
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New returns the gateway selected by cfg.GatewayDriver. It fails when the
// selected driver is missing any of its settings, so a misconfigured process
// never reaches the first submission.
func New(cfg *config.Config, db *sql.DB) (order.Gateway, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	switch cfg.GatewayDriver {
	case config.DriverPostgres:
		if db == nil {
			return nil, ErrNilDB
		}
		return NewPostgres(db), nil
	case config.DriverREST:
		return NewREST(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.GatewayDriver)
	}
}

func validateTable(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return nil
}

// columns lists the orders columns in record order. Filter and ordering
// columns are checked against it.
var columns = []string{
	"id",
	"order_number",
	"customer_name",
	"customer_email",
	"customer_phone",
	"customer_address",
	"customer_city",
	"delivery_notes",
	"items",
	"product_color",
	"product_quantity",
	"total_amount",
	"currency",
	"status",
	"payment_status",
	"notes",
	"created_at",
}

func validateColumn(col string) error {
	for _, c := range columns {
		if c == col {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
}

func validateQuery(q order.Query) error {
	if q.Column != "" {
		if err := validateColumn(q.Column); err != nil {
			return err
		}
	}
	if q.OrderBy != "" {
		if err := validateColumn(q.OrderBy); err != nil {
			return err
		}
	}
	return nil
}
