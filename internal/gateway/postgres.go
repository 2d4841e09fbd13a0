package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dikra-store/internal/logger"
	"dikra-store/internal/order"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type postgresGateway struct {
	db *sql.DB
}

// NewPostgres writes orders straight into a postgres table.
func NewPostgres(db *sql.DB) order.Gateway {
	return &postgresGateway{db: db}
}

var insertColumns = columns[1 : len(columns)-1]

func (g *postgresGateway) Insert(ctx context.Context, table string, r order.Record) ([]order.Record, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_number", r.OrderNumber))

	if err := validateTable(table); err != nil {
		return nil, err
	}

	placeholders := make([]string, len(insertColumns))
	for i := range insertColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		pq.QuoteIdentifier(table),
		strings.Join(insertColumns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(columns, ", "),
	)

	var notes sql.NullString
	if r.DeliveryNotes != nil {
		notes = sql.NullString{String: *r.DeliveryNotes, Valid: true}
	}

	rows, err := g.db.QueryContext(ctx, query,
		r.OrderNumber,
		r.CustomerName,
		r.CustomerEmail,
		r.CustomerPhone,
		r.CustomerAddress,
		r.CustomerCity,
		notes,
		r.Items,
		r.ProductColor,
		r.ProductQuantity,
		r.TotalAmount.String(),
		r.Currency,
		string(r.Status),
		string(r.PaymentStatus),
		r.Notes,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (g *postgresGateway) Select(ctx context.Context, table string, q order.Query) ([]order.Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	var (
		sb   strings.Builder
		args []any
	)
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(columns, ", "), pq.QuoteIdentifier(table))

	if q.Column != "" {
		args = append(args, q.Value)
		fmt.Fprintf(&sb, " WHERE %s = $%d", q.Column, len(args))
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", q.OrderBy, dir)
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := g.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to select orders", zap.String("table", table), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]order.Record, error) {
	records := []order.Record{}
	for rows.Next() {
		var (
			r         order.Record
			id        int64
			notes     sql.NullString
			status    string
			payStatus string
			createdAt time.Time
		)
		if err := rows.Scan(
			&id,
			&r.OrderNumber,
			&r.CustomerName,
			&r.CustomerEmail,
			&r.CustomerPhone,
			&r.CustomerAddress,
			&r.CustomerCity,
			&notes,
			&r.Items,
			&r.ProductColor,
			&r.ProductQuantity,
			&r.TotalAmount,
			&r.Currency,
			&status,
			&payStatus,
			&r.Notes,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		r.ID = &id
		r.CreatedAt = &createdAt
		r.Status = order.Status(status)
		r.PaymentStatus = order.PaymentStatus(payStatus)
		if notes.Valid {
			n := notes.String
			r.DeliveryNotes = &n
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
