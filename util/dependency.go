// util/dependency.go

package util

import "github.com/vapvarun/wc-subscription-protection/model"

const MissingDependencyMessage = "Subscription Content Protection: this service requires the commerce " +
	"and subscriptions extensions to be installed and activated."

// DependencyStatus records what was detected at startup. It is written once
// before the server starts and only read afterwards.
type DependencyStatus struct {
	CommerceAvailable bool
}

// Notices returns the admin notices implied by the status.
func (d DependencyStatus) Notices() []model.AdminNotice {
	if d.CommerceAvailable {
		return []model.AdminNotice{}
	}
	return []model.AdminNotice{{Level: "error", Message: MissingDependencyMessage}}
}
