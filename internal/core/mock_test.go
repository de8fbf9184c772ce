package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/edvin/edgeid/internal/model"
)

// ---------- Mock DB ----------

// mockDB implements the DB interface for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// ---------- Mock Row ----------

// mockRow implements pgx.Row for testing.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// ---------- Mock Rows ----------

// mockRows implements pgx.Rows for testing.
// It iterates through a list of scan functions, one per row.
type mockRows struct {
	callIndex int
	scanFuncs []func(dest ...any) error
	err       error
}

func newMockRows(scanFuncs ...func(dest ...any) error) *mockRows {
	return &mockRows{scanFuncs: scanFuncs}
}

// newEmptyMockRows returns a mockRows that yields zero rows.
func newEmptyMockRows() *mockRows {
	return &mockRows{}
}

func (m *mockRows) Next() bool {
	return m.callIndex < len(m.scanFuncs)
}

func (m *mockRows) Scan(dest ...any) error {
	if m.callIndex < len(m.scanFuncs) {
		fn := m.scanFuncs[m.callIndex]
		m.callIndex++
		return fn(dest...)
	}
	return nil
}

func (m *mockRows) Err() error                                   { return m.err }
func (m *mockRows) Close()                                       {}
func (m *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *mockRows) RawValues() [][]byte                          { return nil }
func (m *mockRows) Values() ([]any, error)                       { return nil, nil }
func (m *mockRows) Conn() *pgx.Conn                              { return nil }

// ---------- Mock providers ----------

type mockDNSProvider struct {
	mock.Mock
}

func (m *mockDNSProvider) FindARecord(ctx context.Context, zoneID, host string) (*model.DNSRecord, error) {
	args := m.Called(ctx, zoneID, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DNSRecord), args.Error(1)
}

func (m *mockDNSProvider) CreateARecord(ctx context.Context, zoneID string, payload model.DNSRecordPayload) error {
	args := m.Called(ctx, zoneID, payload)
	return args.Error(0)
}

func (m *mockDNSProvider) UpdateARecord(ctx context.Context, zoneID, recordID string, payload model.DNSRecordPayload) error {
	args := m.Called(ctx, zoneID, recordID, payload)
	return args.Error(0)
}

type mockCertProvider struct {
	mock.Mock
}

func (m *mockCertProvider) ListCertificatePacks(ctx context.Context, zoneID string) ([]model.CertificatePack, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CertificatePack), args.Error(1)
}

func (m *mockCertProvider) OrderCertificatePack(ctx context.Context, zoneID string, hosts []string, validityDays int) (model.CertificatePack, error) {
	args := m.Called(ctx, zoneID, hosts, validityDays)
	return args.Get(0).(model.CertificatePack), args.Error(1)
}

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, argv []string, timeout time.Duration) (model.ExecutionResult, error) {
	args := m.Called(ctx, argv, timeout)
	return args.Get(0).(model.ExecutionResult), args.Error(1)
}

func (m *mockRunner) RunShell(ctx context.Context, raw string, timeout time.Duration) (model.ExecutionResult, error) {
	args := m.Called(ctx, raw, timeout)
	return args.Get(0).(model.ExecutionResult), args.Error(1)
}
