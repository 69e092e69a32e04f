// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
)

// NotificationService reports settings changes to operators. For now the
// log stream is the only sink.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyProtectionChange(ctx context.Context, changeType string, contentID string, cfg model.ProtectionConfig) error {
	switch changeType {
	case "updated", "enabled", "disabled":
		logger.Info("NOTIFICATION: Content protection "+changeType,
			zap.String("contentID", contentID),
			zap.Bool("protected", cfg.Protected),
			zap.String("requiredProducts", model.JoinProductIDs(cfg.RequiredProducts)))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	logger.Warn("Notifying admins", zap.String("message", message))
	return nil
}
