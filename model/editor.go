// model/editor.go
package model

// ShortcodeRequest is the classic editor popup submission.
type ShortcodeRequest struct {
	RequiredProducts []ProductID `json:"required_products"`
	CustomMessage    string      `json:"custom_message"`
	Content          string      `json:"content"`
}

// ShortcodeRenderRequest asks for inline protection tags in a body to be
// expanded for the current requester.
type ShortcodeRenderRequest struct {
	Content   string `json:"content"`
	Permalink string `json:"permalink"`
}

// AdminNotice is a message shown on every admin screen.
type AdminNotice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
