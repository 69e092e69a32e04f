package commerce

import (
	"context"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/model"
)

// UnavailableStore stands in for SQLStore when the extension was not
// detected: the catalog is empty and every lookup reports the extension
// missing.
type UnavailableStore struct{}

func (UnavailableStore) HasActiveSubscription(context.Context, string, model.ProductID) (bool, error) {
	return false, gate_errors.ErrCommerceUnavailable
}

func (UnavailableStore) GetProduct(context.Context, model.ProductID) (*model.Product, error) {
	return nil, gate_errors.ErrProductNotFound
}

func (UnavailableStore) ListSubscriptionProducts(context.Context) ([]model.Product, error) {
	return []model.Product{}, nil
}
