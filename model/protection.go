// model/protection.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ProductID identifies a purchasable subscription offering. No structure is
// assumed beyond being a non-empty string.
type ProductID string

// UnmarshalJSON accepts both "42" and 42; the block editor stores numeric
// product IDs.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("product id %s is not an integer", data)
	}
	*id = ProductID(n.String())
	return nil
}

// ProtectionConfig is the protection setting attached to a content item (or
// to an inline span or block). The zero value means "not protected".
type ProtectionConfig struct {
	Protected        bool        `json:"protected"`
	RequiredProducts []ProductID `json:"required_products"`
	CustomMessage    string      `json:"custom_message,omitempty"`
}

// Enforced reports whether the config can ever deny a requester.
func (c ProtectionConfig) Enforced() bool {
	return c.Protected && len(c.RequiredProducts) > 0
}

// Requires reports whether id is one of the required products.
func (c ProtectionConfig) Requires(id ProductID) bool {
	for _, p := range c.RequiredProducts {
		if p == id {
			return true
		}
	}
	return false
}

// ProtectionForm is the submitted settings panel.
type ProtectionForm struct {
	Nonce            string   `json:"nonce" form:"nonce"`
	Protected        bool     `json:"protected" form:"protected"`
	RequiredProducts []string `json:"required_products" form:"required_products"`
	CustomMessage    string   `json:"custom_message" form:"custom_message"`
	Autosave         bool     `json:"autosave" form:"autosave"`
}

// ToggleForm is the widget's enable/disable submission.
type ToggleForm struct {
	Nonce     string `json:"nonce" form:"nonce"`
	ContentID string `json:"content_id" form:"content_id"`
	Action    string `json:"action" form:"action"`
}

const (
	ToggleEnable  = "enable"
	ToggleDisable = "disable"
)

// SaveResult tells the caller whether a settings write took effect.
type SaveResult struct {
	Saved  bool             `json:"saved"`
	Config ProtectionConfig `json:"config"`
}

// ToggleResult carries the post-redirect-get target of a toggle submission.
type ToggleResult struct {
	Applied  bool   `json:"applied"`
	Redirect string `json:"redirect"`
}

// ParseProductIDs splits a comma separated list, trimming entries and
// dropping empty ones.
func ParseProductIDs(raw string) []ProductID {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeProductIDs(strings.Split(raw, ","))
}

// NormalizeProductIDs trims each entry, drops empty ones and duplicates,
// and keeps first-seen order.
func NormalizeProductIDs[S ~string](raw []S) []ProductID {
	seen := make(map[ProductID]struct{}, len(raw))
	ids := make([]ProductID, 0, len(raw))
	for _, r := range raw {
		id := ProductID(strings.TrimSpace(string(r)))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// JoinProductIDs is the inverse of ParseProductIDs.
func JoinProductIDs(ids []ProductID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}
