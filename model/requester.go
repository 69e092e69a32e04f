// model/requester.go
package model

// Capabilities the host grants to editors.
const (
	CapEditPosts        = "edit_posts"
	CapEditOthersPosts  = "edit_others_posts"
	CapEditThemeOptions = "edit_theme_options"
	CapEditProducts     = "edit_products"
)

// Requester is the visitor a render or write is performed for. An empty
// UserID means anonymous.
type Requester struct {
	UserID       string   `json:"user_id,omitempty"`
	Username     string   `json:"username,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Anonymous returns the identity of a visitor that is not logged in.
func Anonymous() Requester {
	return Requester{}
}

func (r Requester) IsAnonymous() bool {
	return r.UserID == ""
}

// Can reports whether the requester holds capability.
func (r Requester) Can(capability string) bool {
	for _, c := range r.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// CanEditContent mirrors the host's edit_post check: editors of others'
// posts may edit anything, authors only their own items.
func (r Requester) CanEditContent(item *ContentItem) bool {
	if r.IsAnonymous() || item == nil {
		return false
	}
	if r.Can(CapEditOthersPosts) {
		return true
	}
	return r.Can(CapEditPosts) && item.AuthorID == r.UserID
}
