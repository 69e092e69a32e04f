package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
)

const blockName = "wbcom/subscription-protection"

func TestBlockService_Describe(t *testing.T) {
	f := newGateFixture(t, true)
	f.commerce.On("ListSubscriptionProducts", mock.Anything).Return([]model.Product{goldProduct}, nil)
	svc := service.NewBlockService(blockName, f.products, f.gate)

	block, err := svc.Describe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, blockName, block.Name)
	assert.Equal(t, "array", block.Attributes["required_products"].Type)
	assert.Equal(t, []string{}, block.Attributes["required_products"].Default)
	assert.Equal(t, "", block.Attributes["custom_message"].Default)
	assert.Equal(t, "string", block.Attributes["content"].Type)
	assert.Equal(t, []model.EditorProduct{{ID: "42", Name: "Gold Membership"}}, block.SubscriptionProducts)
}

func TestBlockService_Render(t *testing.T) {
	tests := []struct {
		name      string
		req       model.BlockRenderRequest
		requester model.Requester
		active    bool
		want      string
		contains  string
	}{
		{
			name:      "content attribute wins",
			req:       model.BlockRenderRequest{Attributes: model.BlockAttributes{RequiredProducts: []model.ProductID{"42"}, Content: "attr body"}, InnerContent: "inner body"},
			requester: model.Requester{UserID: "7"},
			active:    true,
			want:      "attr body",
		},
		{
			name:      "falls back to inner content",
			req:       model.BlockRenderRequest{Attributes: model.BlockAttributes{RequiredProducts: []model.ProductID{"42"}}, InnerContent: "inner body"},
			requester: model.Requester{UserID: "7"},
			active:    true,
			want:      "inner body",
		},
		{
			name:      "no products shows content to anyone",
			req:       model.BlockRenderRequest{InnerContent: "inner body"},
			requester: model.Anonymous(),
			want:      "inner body",
		},
		{
			name:      "denied shows the notice",
			req:       model.BlockRenderRequest{Attributes: model.BlockAttributes{RequiredProducts: []model.ProductID{"42"}, CustomMessage: "Block locked"}, InnerContent: "inner body"},
			requester: model.Requester{UserID: "7"},
			contains:  "Block locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(t, true)
			f.commerce.On("HasActiveSubscription", mock.Anything, "7", model.ProductID("42")).Return(tt.active, nil).Maybe()
			svc := service.NewBlockService(blockName, f.products, f.gate)

			out, err := svc.Render(context.Background(), tt.req, tt.requester)
			require.NoError(t, err)
			f.eventBus.Wait()

			if tt.want != "" {
				assert.Equal(t, tt.want, out)
			}
			if tt.contains != "" {
				assert.Contains(t, out, tt.contains)
				assert.NotContains(t, out, "inner body")
			}
		})
	}
}

func TestProductService_GetProductUsesCache(t *testing.T) {
	f := newGateFixture(t, true)
	cached := &model.Product{ID: "50", Name: "Cached", Type: model.ProductTypeSubscription}
	f.cache.ExpectedCalls = nil
	f.cache.On("GetProduct", mock.Anything, model.ProductID("50")).Return(cached, nil)

	product, err := f.products.GetProduct(context.Background(), "50")
	require.NoError(t, err)
	assert.Equal(t, "Cached", product.Name)
	f.commerce.AssertNotCalled(t, "GetProduct", mock.Anything, model.ProductID("50"))
}

func TestProductService_GetProductEvictsStaleType(t *testing.T) {
	f := newGateFixture(t, true)
	f.cache.ExpectedCalls = nil
	f.cache.On("GetProduct", mock.Anything, model.ProductID("42")).Return(&model.Product{ID: "42", Name: "Gold", Type: "simple"}, nil)
	f.cache.On("DeleteProduct", mock.Anything, model.ProductID("42")).Return(nil)
	f.cache.On("SetProduct", mock.Anything, goldProduct).Return(nil)

	product, err := f.products.GetProduct(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, goldProduct, *product)
	f.cache.AssertExpectations(t)
}

func TestProductService_InvalidateProduct(t *testing.T) {
	shopManager := model.Requester{UserID: "1", Capabilities: []string{model.CapEditProducts}}

	t.Run("drops the cached entry", func(t *testing.T) {
		f := newGateFixture(t, true)
		f.cache.On("DeleteProduct", mock.Anything, model.ProductID("42")).Return(nil)

		require.NoError(t, f.products.InvalidateProduct(context.Background(), "42", shopManager))
		f.cache.AssertCalled(t, "DeleteProduct", mock.Anything, model.ProductID("42"))
	})

	t.Run("next read goes back to the catalog", func(t *testing.T) {
		f := newGateFixture(t, true)
		f.commerce.ExpectedCalls = nil
		f.commerce.On("GetProduct", mock.Anything, model.ProductID("42")).Return(nil, gate_errors.ErrProductNotFound)
		f.cache.ExpectedCalls = nil
		f.cache.On("DeleteProduct", mock.Anything, model.ProductID("42")).Return(nil)
		f.cache.On("GetProduct", mock.Anything, model.ProductID("42")).Return(nil, nil)

		require.NoError(t, f.products.InvalidateProduct(context.Background(), "42", shopManager))
		_, err := f.products.GetProduct(context.Background(), "42")
		assert.ErrorIs(t, err, gate_errors.ErrProductNotFound)
	})

	t.Run("requires the product capability", func(t *testing.T) {
		f := newGateFixture(t, true)

		err := f.products.InvalidateProduct(context.Background(), "42", model.Anonymous())
		assert.ErrorIs(t, err, gate_errors.ErrUnauthorized)

		err = f.products.InvalidateProduct(context.Background(), "42", model.Requester{UserID: "3", Capabilities: []string{model.CapEditPosts}})
		assert.ErrorIs(t, err, gate_errors.ErrForbidden)
		f.cache.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})

	t.Run("cache errors are returned", func(t *testing.T) {
		f := newGateFixture(t, true)
		boom := errors.New("redis down")
		f.cache.On("DeleteProduct", mock.Anything, model.ProductID("42")).Return(boom)

		err := f.products.InvalidateProduct(context.Background(), "42", shopManager)
		assert.ErrorIs(t, err, boom)
	})
}

func TestProductService_GetProductFillsCache(t *testing.T) {
	f := newGateFixture(t, true)
	f.cache.ExpectedCalls = nil
	f.cache.On("GetProduct", mock.Anything, model.ProductID("42")).Return(nil, errors.New("redis down"))
	f.cache.On("SetProduct", mock.Anything, goldProduct).Return(nil)

	product, err := f.products.GetProduct(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, goldProduct, *product)
	f.cache.AssertCalled(t, "SetProduct", mock.Anything, goldProduct)
}

func TestProductService_ResolveKeepsOrderAndSkipsUnknown(t *testing.T) {
	f := newGateFixture(t, true)
	silver := model.Product{ID: "43", Name: "Silver"}
	f.commerce.ExpectedCalls = nil
	f.commerce.On("GetProduct", mock.Anything, model.ProductID("43")).Return(&silver, nil)
	f.commerce.On("GetProduct", mock.Anything, model.ProductID("42")).Return(&goldProduct, nil)
	f.commerce.On("GetProduct", mock.Anything, model.ProductID("404")).Return(nil, gate_errors.ErrProductNotFound)

	products, err := f.products.Resolve(context.Background(), []model.ProductID{"43", "404", "42"})
	require.NoError(t, err)
	assert.Equal(t, []model.Product{silver, goldProduct}, products)
}

func TestProductService_ResolvePropagatesStoreErrors(t *testing.T) {
	f := newGateFixture(t, true)
	boom := errors.New("disk I/O error")
	f.commerce.ExpectedCalls = nil
	f.commerce.On("GetProduct", mock.Anything, model.ProductID("42")).Return(nil, boom)

	_, err := f.products.Resolve(context.Background(), []model.ProductID{"42"})
	assert.ErrorIs(t, err, boom)
}

func TestProductService_EditorProducts(t *testing.T) {
	f := newGateFixture(t, true)
	f.commerce.On("ListSubscriptionProducts", mock.Anything).Return(nil, nil)

	products, err := f.products.EditorProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
