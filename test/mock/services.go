// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vapvarun/wc-subscription-protection/audit"
	"github.com/vapvarun/wc-subscription-protection/model"
)

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) RegisterContent(ctx context.Context, item model.ContentItem) (*model.ContentItem, error) {
	args := m.Called(ctx, item)
	out, _ := args.Get(0).(*model.ContentItem)
	return out, args.Error(1)
}

func (m *MockContentService) GetContent(ctx context.Context, contentID string) (*model.ContentItem, error) {
	args := m.Called(ctx, contentID)
	out, _ := args.Get(0).(*model.ContentItem)
	return out, args.Error(1)
}

func (m *MockContentService) GetProtection(ctx context.Context, contentID string) (*model.ProtectionConfig, error) {
	args := m.Called(ctx, contentID)
	out, _ := args.Get(0).(*model.ProtectionConfig)
	return out, args.Error(1)
}

func (m *MockContentService) Render(ctx context.Context, contentID string, req model.RenderRequest, requester model.Requester) (*model.RenderResult, error) {
	args := m.Called(ctx, contentID, req, requester)
	out, _ := args.Get(0).(*model.RenderResult)
	return out, args.Error(1)
}

type MockProtectionService struct {
	mock.Mock
}

func (m *MockProtectionService) IssueNonce(ctx context.Context, action string, requester model.Requester) (string, error) {
	args := m.Called(ctx, action, requester)
	return args.String(0), args.Error(1)
}

func (m *MockProtectionService) Save(ctx context.Context, contentID string, form model.ProtectionForm, requester model.Requester) (*model.SaveResult, error) {
	args := m.Called(ctx, contentID, form, requester)
	out, _ := args.Get(0).(*model.SaveResult)
	return out, args.Error(1)
}

func (m *MockProtectionService) Toggle(ctx context.Context, form model.ToggleForm, requester model.Requester) (*model.ToggleResult, error) {
	args := m.Called(ctx, form, requester)
	out, _ := args.Get(0).(*model.ToggleResult)
	return out, args.Error(1)
}

func (m *MockProtectionService) RenderPanel(ctx context.Context, contentID string, requester model.Requester) (string, error) {
	args := m.Called(ctx, contentID, requester)
	return args.String(0), args.Error(1)
}

type MockShortcodeService struct {
	mock.Mock
}

func (m *MockShortcodeService) Process(ctx context.Context, req model.ShortcodeRenderRequest, requester model.Requester) (string, error) {
	args := m.Called(ctx, req, requester)
	return args.String(0), args.Error(1)
}

func (m *MockShortcodeService) Build(req model.ShortcodeRequest) (string, error) {
	args := m.Called(req)
	return args.String(0), args.Error(1)
}

func (m *MockShortcodeService) Tags() []string {
	args := m.Called()
	out, _ := args.Get(0).([]string)
	return out
}

type MockBlockService struct {
	mock.Mock
}

func (m *MockBlockService) Describe(ctx context.Context) (*model.BlockType, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*model.BlockType)
	return out, args.Error(1)
}

func (m *MockBlockService) Render(ctx context.Context, req model.BlockRenderRequest, requester model.Requester) (string, error) {
	args := m.Called(ctx, req, requester)
	return args.String(0), args.Error(1)
}

type MockWidgetService struct {
	mock.Mock
}

func (m *MockWidgetService) GetWidget(ctx context.Context, widgetID string) (*model.WidgetInstance, error) {
	args := m.Called(ctx, widgetID)
	out, _ := args.Get(0).(*model.WidgetInstance)
	return out, args.Error(1)
}

func (m *MockWidgetService) UpdateWidget(ctx context.Context, widget model.WidgetInstance, requester model.Requester) (*model.WidgetInstance, error) {
	args := m.Called(ctx, widget, requester)
	out, _ := args.Get(0).(*model.WidgetInstance)
	return out, args.Error(1)
}

func (m *MockWidgetService) Render(ctx context.Context, widgetID, contentID string, requester model.Requester) (string, error) {
	args := m.Called(ctx, widgetID, contentID, requester)
	return args.String(0), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListSubscriptionProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *MockProductService) EditorProducts(ctx context.Context) ([]model.EditorProduct, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.EditorProduct)
	return out, args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error) {
	args := m.Called(ctx, productID)
	out, _ := args.Get(0).(*model.Product)
	return out, args.Error(1)
}

func (m *MockProductService) Resolve(ctx context.Context, ids []model.ProductID) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *MockProductService) InvalidateProduct(ctx context.Context, productID model.ProductID, requester model.Requester) error {
	return m.Called(ctx, productID, requester).Error(0)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Notices() []model.AdminNotice {
	args := m.Called()
	out, _ := args.Get(0).([]model.AdminNotice)
	return out
}

func (m *MockAdminService) CommerceAvailable() bool {
	return m.Called().Bool(0)
}

func (m *MockAdminService) AuditLogs(ctx context.Context, query model.AuditQuery, requester model.Requester) ([]audit.AuditLog, error) {
	args := m.Called(ctx, query, requester)
	out, _ := args.Get(0).([]audit.AuditLog)
	return out, args.Error(1)
}
