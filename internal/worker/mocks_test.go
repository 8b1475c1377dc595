package worker

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing. It counts appended
// rows and sent batches across all batches it hands out.
type MockClickHouseConn struct {
	driver.Conn

	mu       sync.Mutex
	appended int
	sends    int
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	return &MockBatch{conn: m}, nil
}

func (m *MockClickHouseConn) Ping(ctx context.Context) error {
	return nil
}

func (m *MockClickHouseConn) Appended() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appended
}

func (m *MockClickHouseConn) Sends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sends
}

// MockBatch implements driver.Batch.
type MockBatch struct {
	conn *MockClickHouseConn
	rows int
	sent bool
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	m.conn.appended++
	m.rows++
	return nil
}

func (m *MockBatch) Send() error {
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	m.conn.sends++
	m.sent = true
	return nil
}

func (m *MockBatch) AppendStruct(v interface{}) error { return nil }

func (m *MockBatch) Column(int) driver.BatchColumn { return nil }

func (m *MockBatch) Flush() error { return nil }

func (m *MockBatch) Abort() error { return nil }

func (m *MockBatch) IsSent() bool { return m.sent }

func (m *MockBatch) Rows() int { return m.rows }
