package runstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, customerCount, productCount int) error {
	args := m.Called(runID, endTime, customerCount, productCount)
	return args.Error(0)
}

// RecordSegments implements the RunStore interface.
func (m *MockRunStore) RecordSegments(runID int64, segments []schema.SegmentSummary) error {
	args := m.Called(runID, segments)
	return args.Error(0)
}

// RecordForecast implements the RunStore interface.
func (m *MockRunStore) RecordForecast(runID int64, forecast *schema.ForecastResult) error {
	args := m.Called(runID, forecast)
	return args.Error(0)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllSegmentCounts implements the RunStore interface.
func (m *MockRunStore) GetAllSegmentCounts() ([]schema.SegmentCountRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SegmentCountRecord)
	return records, args.Error(1)
}

// GetAllForecastPoints implements the RunStore interface.
func (m *MockRunStore) GetAllForecastPoints() ([]schema.ForecastPointRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ForecastPointRecord)
	return records, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStoreStatus), args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
