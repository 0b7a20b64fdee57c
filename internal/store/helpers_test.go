package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-roles/internal/config"
	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/migrations"
)

// newMockGateway returns a gateway whose session is already open on sqlmock,
// so no migrations run.
func newMockGateway(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	g := NewGatewayWithConnector(config.DB{Driver: config.DriverPostgres}, nil, logger.Nop())
	g.db = newDB(conn, migrations.DialectPostgres, sq.Dollar, NewPostgresErrorClassifier(), logger.Nop())
	return g, mock
}

// newSQLiteGateway returns a gateway over a private in-memory database.
func newSQLiteGateway(t *testing.T, seed bool) *Gateway {
	t.Helper()
	cfg := config.DB{
		Driver: config.DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1",
		Seed:   seed,
	}

	g, err := NewGateway(cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func strPtr(s string) *string { return &s }
