package order

import "context"

// Gateway is the remote store orders are written to.
type Gateway interface {
	Insert(ctx context.Context, table string, record Record) ([]Record, error)
	Select(ctx context.Context, table string, q Query) ([]Record, error)
}

// Query selects records. An empty Column means no filter; Limit 0 means no limit.
type Query struct {
	Column     string
	Value      string
	OrderBy    string
	Descending bool
	Limit      int
}
