// service/product_service.go
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
)

const resolveConcurrency = 4

type IProductService interface {
	ListSubscriptionProducts(ctx context.Context) ([]model.Product, error)
	EditorProducts(ctx context.Context) ([]model.EditorProduct, error)
	GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error)
	Resolve(ctx context.Context, ids []model.ProductID) ([]model.Product, error)
	InvalidateProduct(ctx context.Context, productID model.ProductID, requester model.Requester) error
}

// ProductService reads the catalog through a display-data cache.
type ProductService struct {
	catalog ProductCatalog
	cache   ProductCache
}

var _ IProductService = &ProductService{}

func NewProductService(catalog ProductCatalog, cache ProductCache) *ProductService {
	return &ProductService{catalog: catalog, cache: cache}
}

func (s *ProductService) ListSubscriptionProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.catalog.ListSubscriptionProducts(ctx)
	if err != nil {
		logger.Error("Failed to list subscription products", zap.Error(err))
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// EditorProducts is the {id, name} list handed to the editor scripts.
func (s *ProductService) EditorProducts(ctx context.Context) ([]model.EditorProduct, error) {
	products, err := s.ListSubscriptionProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.EditorProduct, len(products))
	for i, p := range products {
		out[i] = model.EditorProduct{ID: p.ID, Name: p.Name}
	}
	return out, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, productID)
		switch {
		case err != nil:
			logger.Warn("Product cache read failed", zap.Error(err), zap.String("productID", string(productID)))
		case cached != nil && cached.IsSubscription():
			return cached, nil
		case cached != nil:
			// Entries from before a product type change are stale.
			s.evict(ctx, productID)
		}
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, *product); err != nil {
			logger.Warn("Product cache write failed", zap.Error(err), zap.String("productID", string(productID)))
		}
	}
	return product, nil
}

// InvalidateProduct drops the cached display data for productID so the
// next read goes back to the catalog. Call it when a product is edited,
// unpublished or deleted.
func (s *ProductService) InvalidateProduct(ctx context.Context, productID model.ProductID, requester model.Requester) error {
	if requester.IsAnonymous() {
		return gate_errors.ErrUnauthorized
	}
	if !requester.Can(model.CapEditProducts) {
		return gate_errors.ErrForbidden
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.DeleteProduct(ctx, productID); err != nil {
		logger.Error("Failed to invalidate product cache", zap.Error(err), zap.String("productID", string(productID)))
		return err
	}
	logger.Info("Product cache invalidated",
		zap.String("productID", string(productID)),
		zap.String("userID", requester.UserID))
	return nil
}

func (s *ProductService) evict(ctx context.Context, productID model.ProductID) {
	if err := s.cache.DeleteProduct(ctx, productID); err != nil {
		logger.Warn("Product cache evict failed", zap.Error(err), zap.String("productID", string(productID)))
	}
}

// Resolve looks up ids concurrently and returns the known products in the
// order given. Unknown products are skipped.
func (s *ProductService) Resolve(ctx context.Context, ids []model.ProductID) ([]model.Product, error) {
	found := make([]*model.Product, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			product, err := s.GetProduct(gctx, id)
			if errors.Is(err, gate_errors.ErrProductNotFound) {
				logger.Debug("Skipping unknown product", zap.String("productID", string(id)))
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(ids))
	for _, p := range found {
		if p != nil {
			products = append(products, *p)
		}
	}
	return products, nil
}
