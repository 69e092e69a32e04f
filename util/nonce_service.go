// util/nonce_service.go

package util

import (
	"context"
	"time"

	"github.com/vapvarun/wc-subscription-protection/db"
)

// Nonce actions guarding the settings write paths.
const (
	NonceActionSaveProtection   = "subscription_protection_save"
	NonceActionToggleProtection = "subscription_protection_toggle"
)

// NonceService issues and checks request-forgery tokens held in Redis.
type NonceService struct {
	ttl time.Duration
}

func NewNonceService(ttl time.Duration) *NonceService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &NonceService{ttl: ttl}
}

func (n *NonceService) Issue(ctx context.Context, action, userID string) (string, error) {
	return db.IssueNonce(ctx, action, userID, n.ttl)
}

func (n *NonceService) Verify(ctx context.Context, action, userID, token string) (bool, error) {
	return db.VerifyNonce(ctx, action, userID, token)
}

// KnownNonceAction reports whether action is one the services check.
func KnownNonceAction(action string) bool {
	return action == NonceActionSaveProtection || action == NonceActionToggleProtection
}
