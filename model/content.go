// model/content.go
package model

import "time"

// ContentItem is an addressable unit of editorial content (post or page).
type ContentItem struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Title      string           `json:"title"`
	Permalink  string           `json:"permalink"`
	AuthorID   string           `json:"author_id"`
	Protection ProtectionConfig `json:"protection"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	UpdatedBy  string           `json:"updated_by,omitempty"`
}

// RenderRequest is the content filter input: the already-rendered body plus
// the view it is being rendered for.
type RenderRequest struct {
	Content  string `json:"content"`
	Singular bool   `json:"singular"`
	Admin    bool   `json:"admin"`
}

// RenderResult is what the host should output in place of the content.
type RenderResult struct {
	Content   string `json:"content"`
	Protected bool   `json:"protected"`
	Decision  string `json:"decision"`
}

const (
	DecisionPassThrough = "pass_through"
	DecisionAllow       = "allow"
	DecisionDeny        = "deny"
)
