// errors/request_errors.go
package errors

import "errors"

var (
	ErrNoProductsSelected = errors.New("no subscription product selected")
	ErrNoContentToProtect = errors.New("no content to protect")
	ErrInvalidWidgetData  = errors.New("invalid widget data")
	ErrWidgetNotFound     = errors.New("widget not found")
	ErrInvalidPagination  = errors.New("invalid pagination parameters")
	ErrUnknownNonceAction = errors.New("unknown nonce action")
	ErrInvalidAuditQuery  = errors.New("invalid audit query")
)
