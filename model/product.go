// model/product.go
package model

// Product types the commerce extension flags as subscription offerings.
const (
	ProductTypeSubscription         = "subscription"
	ProductTypeVariableSubscription = "variable-subscription"
)

// Product is the display view of a catalog entry.
type Product struct {
	ID        ProductID `json:"id"`
	Name      string    `json:"name"`
	Permalink string    `json:"permalink"`
	Type      string    `json:"type"`
}

// EditorProduct is the trimmed shape handed to editor scripts.
type EditorProduct struct {
	ID   ProductID `json:"id"`
	Name string    `json:"name"`
}

func (p Product) IsSubscription() bool {
	return p.Type == ProductTypeSubscription || p.Type == ProductTypeVariableSubscription
}
