// util/cache_service.go

package util

import (
	"context"

	"github.com/vapvarun/wc-subscription-protection/db"
	"github.com/vapvarun/wc-subscription-protection/model"
)

// CacheService caches catalog display data. Subscription facts and access
// decisions are never cached.
type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error) {
	return db.GetCachedProduct(ctx, productID)
}

func (c *CacheService) SetProduct(ctx context.Context, product model.Product) error {
	return db.CacheProduct(ctx, &product)
}

func (c *CacheService) DeleteProduct(ctx context.Context, productID model.ProductID) error {
	return db.DeleteCachedProduct(ctx, productID)
}
