// service/admin_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vapvarun/wc-subscription-protection/audit"
	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/util"
)

type IAdminService interface {
	Notices() []model.AdminNotice
	CommerceAvailable() bool
	AuditLogs(ctx context.Context, query model.AuditQuery, requester model.Requester) ([]audit.AuditLog, error)
}

// AdminService reports what the startup dependency check found and reads
// back the audit trail.
type AdminService struct {
	status       util.DependencyStatus
	auditService audit.Service
}

var _ IAdminService = &AdminService{}

func NewAdminService(status util.DependencyStatus, auditService audit.Service) *AdminService {
	return &AdminService{status: status, auditService: auditService}
}

func (s *AdminService) Notices() []model.AdminNotice {
	return s.status.Notices()
}

func (s *AdminService) CommerceAvailable() bool {
	return s.status.CommerceAvailable
}

// AuditLogs returns entries in [query.From, query.To], newest first. Only
// editors of others' content may read the trail.
func (s *AdminService) AuditLogs(ctx context.Context, query model.AuditQuery, requester model.Requester) ([]audit.AuditLog, error) {
	if requester.IsAnonymous() {
		return nil, gate_errors.ErrUnauthorized
	}
	if !requester.Can(model.CapEditOthersPosts) {
		return nil, gate_errors.ErrForbidden
	}
	if query.From.IsZero() || query.To.IsZero() || query.From.After(query.To) {
		return nil, gate_errors.ErrInvalidAuditQuery
	}

	logs, err := s.auditService.QueryLogs(ctx, query.From, query.To, query.UserID, query.ContentID)
	if err != nil {
		logger.Error("Failed to query audit logs", zap.Error(err))
		return nil, err
	}
	if logs == nil {
		logs = []audit.AuditLog{}
	}
	return logs, nil
}
