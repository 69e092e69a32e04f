// model/audit.go
package model

import "time"

// AuditQuery filters the access and settings-change trail. Empty UserID
// and ContentID match every entry.
type AuditQuery struct {
	From      time.Time
	To        time.Time
	UserID    string
	ContentID string
}
