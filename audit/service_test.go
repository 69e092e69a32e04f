package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) LogAccess(ctx context.Context, log AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *mockRepository) QueryLogs(ctx context.Context, from, to time.Time, userID, contentID string) ([]AuditLog, error) {
	args := m.Called(ctx, from, to, userID, contentID)
	return args.Get(0).([]AuditLog), args.Error(1)
}

func TestService_LogAccessStampsTimestamp(t *testing.T) {
	repo := new(mockRepository)
	fixed := time.Date(2024, time.July, 7, 19, 55, 23, 0, time.UTC)
	svc := &service{repo: repo, now: func() time.Time { return fixed }}

	repo.On("LogAccess", mock.Anything, mock.MatchedBy(func(l AuditLog) bool {
		return l.Timestamp.Equal(fixed) && l.ContentID == "12"
	})).Return(nil)

	require.NoError(t, svc.LogAccess(context.Background(), AuditLog{ContentID: "12", Action: ActionSaveProtection}))
	repo.AssertExpectations(t)
}

func TestService_QueryLogsDelegates(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	from, to := time.Unix(0, 0), time.Unix(100, 0)

	repo.On("QueryLogs", mock.Anything, from, to, "7", "12").Return([]AuditLog{{ContentID: "12"}}, nil)

	logs, err := svc.QueryLogs(context.Background(), from, to, "7", "12")
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestChangeDetails(t *testing.T) {
	raw := ChangeDetails(map[string]bool{"protected": false}, map[string]bool{"protected": true})

	var decoded map[string]map[string]bool
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.False(t, decoded["before"]["protected"])
	assert.True(t, decoded["after"]["protected"])
}
