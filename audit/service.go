// audit/service.go
package audit

import (
	"context"
	"encoding/json"
	"time"
)

type Service interface {
	LogAccess(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, from, to time.Time, userID, contentID string) ([]AuditLog, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) LogAccess(ctx context.Context, log AuditLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = s.now().UTC()
	}
	return s.repo.LogAccess(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, userID, contentID string) ([]AuditLog, error) {
	return s.repo.QueryLogs(ctx, from, to, userID, contentID)
}

// ChangeDetails captures a before/after pair for the audit trail.
func ChangeDetails(before, after interface{}) json.RawMessage {
	details, err := json.Marshal(map[string]interface{}{
		"before": before,
		"after":  after,
	})
	if err != nil {
		return nil
	}
	return details
}
