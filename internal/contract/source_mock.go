package contract

import (
	"context"

	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotSource is a mock implementation of SnapshotSource for testing.
type MockSnapshotSource struct {
	mock.Mock
}

var _ SnapshotSource = &MockSnapshotSource{} // Compile-time check

// Load implements the SnapshotSource interface.
func (m *MockSnapshotSource) Load(ctx context.Context) ([]schema.ScoreRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.ScoreRecord)
	return records, args.Error(1)
}

// Fingerprint implements the SnapshotSource interface.
func (m *MockSnapshotSource) Fingerprint(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Describe implements the SnapshotSource interface.
func (m *MockSnapshotSource) Describe() string {
	args := m.Called()
	return args.String(0)
}
