// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Audit actions.
const (
	ActionSaveProtection   = "SAVE_PROTECTION"
	ActionToggleProtection = "TOGGLE_PROTECTION"
	ActionAccessDenied     = "ACCESS_DENIED"
)

type AuditLog struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	Action        string          `json:"action"`
	ContentID     string          `json:"content_id"`
	AccessGranted bool            `json:"access_granted"`
	ProductIDs    []string        `json:"product_ids,omitempty"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
