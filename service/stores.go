// service/stores.go
package service

import (
	"context"

	"github.com/vapvarun/wc-subscription-protection/model"
)

// ContentStore persists content items and their protection metadata.
// Implemented by dao.ContentDAO.
type ContentStore interface {
	GetContent(ctx context.Context, contentID string) (*model.ContentItem, error)
	UpsertContent(ctx context.Context, item model.ContentItem) (*model.ContentItem, error)
	SaveProtection(ctx context.Context, contentID string, cfg model.ProtectionConfig, userID string) (*model.ContentItem, error)
	SetProtected(ctx context.Context, contentID string, protected bool, userID string) (*model.ContentItem, error)
}

// WidgetStore persists widget instance settings. Implemented by dao.WidgetDAO.
type WidgetStore interface {
	GetWidget(ctx context.Context, widgetID string) (*model.WidgetInstance, error)
	SaveWidget(ctx context.Context, widget model.WidgetInstance) (*model.WidgetInstance, error)
}

// ProductCatalog is the commerce extension's product listing.
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error)
	ListSubscriptionProducts(ctx context.Context) ([]model.Product, error)
}

// ProductCache holds product display data. A nil product with a nil error
// is a miss.
type ProductCache interface {
	GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error)
	SetProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, productID model.ProductID) error
}

// NonceService issues and verifies request-forgery tokens.
type NonceService interface {
	Issue(ctx context.Context, action, userID string) (string, error)
	Verify(ctx context.Context, action, userID, token string) (bool, error)
}
