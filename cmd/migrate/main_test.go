package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE orders (id bigserial);
CREATE INDEX idx_orders_email ON orders (customer_email);

-- +migrate Down
DROP TABLE orders;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE orders")
		assert.Contains(t, up, "CREATE INDEX idx_orders_email")
		assert.NotContains(t, up, "DROP TABLE orders")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE orders")
		assert.NotContains(t, down, "CREATE TABLE orders")
	})

	t.Run("Missing section", func(t *testing.T) {
		assert.Empty(t, extractMigrationPart("SELECT 1;", "Up"))
	})
}

func TestOrdersMigrationFile(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_create_orders.sql"))
	require.NoError(t, err)

	up := extractMigrationPart(string(content), "Up")
	for _, col := range []string{
		"order_number", "customer_name", "customer_email", "customer_phone",
		"customer_address", "customer_city", "delivery_notes", "items",
		"product_color", "product_quantity", "total_amount", "currency",
		"status", "payment_status", "notes", "created_at",
	} {
		assert.Contains(t, up, col)
	}
	assert.Contains(t, extractMigrationPart(string(content), "Down"), "DROP TABLE IF EXISTS orders")
}

func TestRunMigrationsUp(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies new migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		fileName := "0001_create_orders.sql"
		path := writeMigration(t, t.TempDir(), fileName, "-- +migrate Up\nCREATE TABLE orders (id bigserial);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs(fileName).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE orders").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs(fileName).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, runMigrationsUp(ctx, db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips applied migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		path := writeMigration(t, t.TempDir(), "0001_create_orders.sql", "-- +migrate Up\nCREATE TABLE orders (id bigserial);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, runMigrationsUp(ctx, db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		path := writeMigration(t, t.TempDir(), "0001_create_orders.sql", "-- +migrate Up\nCREATE TABLE orders (id bigserial);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE orders").
			WillReturnError(errors.New("syntax error"))
		mock.ExpectRollback()

		err = runMigrationsUp(ctx, db, []string{path})

		assert.ErrorContains(t, err, "migration failed (0001_create_orders.sql)")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunMigrationsDown(t *testing.T) {
	ctx := context.Background()

	t.Run("Rolls back latest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		path := writeMigration(t, t.TempDir(), "0001_create_orders.sql",
			"-- +migrate Up\nCREATE TABLE orders (id bigserial);\n-- +migrate Down\nDROP TABLE orders;")

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_create_orders.sql"))
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE orders").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("0001_create_orders.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, runMigrationsDown(ctx, db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing to roll back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnError(sql.ErrNoRows)

		assert.NoError(t, runMigrationsDown(ctx, db, nil))
	})

	t.Run("Missing file", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0009_gone.sql"))

		err = runMigrationsDown(ctx, db, nil)
		assert.ErrorContains(t, err, "migration file not found")
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("Files are applied in name order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		writeMigration(t, dir, "0002_b.sql", "-- +migrate Up\nCREATE TABLE b (id int);")
		writeMigration(t, dir, "0001_a.sql", "-- +migrate Up\nCREATE TABLE a (id int);")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		for _, v := range []struct{ file, table string }{{"0001_a.sql", "a"}, {"0002_b.sql", "b"}} {
			mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
				WithArgs(v.file).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			mock.ExpectBegin()
			mock.ExpectExec("CREATE TABLE " + v.table).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(v.file).WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()
		}

		require.NoError(t, run(ctx, db, "up", dir))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown mode", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = run(ctx, db, "sideways", t.TempDir())
		assert.ErrorContains(t, err, "unknown mode")
	})
}
