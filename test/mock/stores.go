// test/mock/stores.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vapvarun/wc-subscription-protection/model"
)

type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) GetContent(ctx context.Context, contentID string) (*model.ContentItem, error) {
	args := m.Called(ctx, contentID)
	item, _ := args.Get(0).(*model.ContentItem)
	return item, args.Error(1)
}

func (m *MockContentStore) UpsertContent(ctx context.Context, item model.ContentItem) (*model.ContentItem, error) {
	args := m.Called(ctx, item)
	out, _ := args.Get(0).(*model.ContentItem)
	return out, args.Error(1)
}

func (m *MockContentStore) SaveProtection(ctx context.Context, contentID string, cfg model.ProtectionConfig, userID string) (*model.ContentItem, error) {
	args := m.Called(ctx, contentID, cfg, userID)
	out, _ := args.Get(0).(*model.ContentItem)
	return out, args.Error(1)
}

func (m *MockContentStore) SetProtected(ctx context.Context, contentID string, protected bool, userID string) (*model.ContentItem, error) {
	args := m.Called(ctx, contentID, protected, userID)
	out, _ := args.Get(0).(*model.ContentItem)
	return out, args.Error(1)
}

type MockWidgetStore struct {
	mock.Mock
}

func (m *MockWidgetStore) GetWidget(ctx context.Context, widgetID string) (*model.WidgetInstance, error) {
	args := m.Called(ctx, widgetID)
	out, _ := args.Get(0).(*model.WidgetInstance)
	return out, args.Error(1)
}

func (m *MockWidgetStore) SaveWidget(ctx context.Context, widget model.WidgetInstance) (*model.WidgetInstance, error) {
	args := m.Called(ctx, widget)
	out, _ := args.Get(0).(*model.WidgetInstance)
	return out, args.Error(1)
}

// MockCommerceStore mocks both the subscription lookup and the catalog.
type MockCommerceStore struct {
	mock.Mock
}

func (m *MockCommerceStore) HasActiveSubscription(ctx context.Context, userID string, productID model.ProductID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommerceStore) GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error) {
	args := m.Called(ctx, productID)
	out, _ := args.Get(0).(*model.Product)
	return out, args.Error(1)
}

func (m *MockCommerceStore) ListSubscriptionProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error) {
	args := m.Called(ctx, productID)
	out, _ := args.Get(0).(*model.Product)
	return out, args.Error(1)
}

func (m *MockProductCache) SetProduct(ctx context.Context, product model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductCache) DeleteProduct(ctx context.Context, productID model.ProductID) error {
	return m.Called(ctx, productID).Error(0)
}

type MockNonceService struct {
	mock.Mock
}

func (m *MockNonceService) Issue(ctx context.Context, action, userID string) (string, error) {
	args := m.Called(ctx, action, userID)
	return args.String(0), args.Error(1)
}

func (m *MockNonceService) Verify(ctx context.Context, action, userID, token string) (bool, error) {
	args := m.Called(ctx, action, userID, token)
	return args.Bool(0), args.Error(1)
}
