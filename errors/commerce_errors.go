// errors/commerce_errors.go
package errors

import "errors"

var (
	ErrCommerceUnavailable = errors.New("commerce subscription extension unavailable")
	ErrProductNotFound     = errors.New("product not found")
	ErrSubscriptionLookup  = errors.New("subscription lookup failed")
)
