package logic

import (
	"context"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/uclcentral/prediction-api/internal/models"
)

// MockPgPool dispatches on the SQL text so one mock can serve a whole
// service.
type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{Error: pgx.ErrNoRows}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

// MockRow scans via a caller-supplied function.
type MockRow struct {
	ScanFunc func(dest ...any) error
	Error    error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.Error != nil {
		return m.Error
	}
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

// MockRows iterates caller-supplied scan functions, one per row.
type MockRows struct {
	Rows []func(dest ...any) error
	idx  int
}

func (m *MockRows) Next() bool {
	return m.idx < len(m.Rows)
}

func (m *MockRows) Scan(dest ...any) error {
	err := m.Rows[m.idx](dest...)
	m.idx++
	return err
}

func (m *MockRows) Close()                                       {}
func (m *MockRows) Err() error                                   { return nil }
func (m *MockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *MockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *MockRows) Values() ([]any, error)                       { return nil, nil }
func (m *MockRows) RawValues() [][]byte                          { return nil }
func (m *MockRows) Conn() *pgx.Conn                              { return nil }

// scanInto assigns vals into the Scan destination pointers.
func scanInto(dest []any, vals ...any) error {
	for i, v := range vals {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

// MockCache is an in-memory RedisCache.
type MockCache struct {
	store map[string]string
	Sets  int
}

func NewMockCache() *MockCache {
	return &MockCache{store: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := m.store[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.store[key] = string(v)
	case string:
		m.store[key] = v
	}
	m.Sets++
	return redis.NewStatusResult("OK", nil)
}

// MockAudit records enqueued prediction records.
type MockAudit struct {
	Records []*models.PredictionRecord
}

func (m *MockAudit) Enqueue(rec *models.PredictionRecord) bool {
	m.Records = append(m.Records, rec)
	return true
}
