// model/block.go
package model

// BlockAttributes are the saved attributes of a protection block.
type BlockAttributes struct {
	RequiredProducts []ProductID `json:"required_products"`
	CustomMessage    string      `json:"custom_message"`
	Content          string      `json:"content"`
}

// BlockRenderRequest is a block render call from the structured editor.
type BlockRenderRequest struct {
	Attributes   BlockAttributes `json:"attributes"`
	InnerContent string          `json:"inner_content"`
	Permalink    string          `json:"permalink"`
}

// BlockAttribute describes one registered attribute.
type BlockAttribute struct {
	Type    string      `json:"type"`
	Default interface{} `json:"default"`
}

// BlockType is the registration descriptor handed to the block editor.
type BlockType struct {
	Name                 string                    `json:"name"`
	Title                string                    `json:"title"`
	Attributes           map[string]BlockAttribute `json:"attributes"`
	SubscriptionProducts []EditorProduct           `json:"subscription_products"`
}
