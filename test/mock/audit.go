// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vapvarun/wc-subscription-protection/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogAccess(ctx context.Context, log audit.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, from, to time.Time, userID, contentID string) ([]audit.AuditLog, error) {
	args := m.Called(ctx, from, to, userID, contentID)
	out, _ := args.Get(0).([]audit.AuditLog)
	return out, args.Error(1)
}
