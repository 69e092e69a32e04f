// service/block_service.go
package service

import (
	"context"
	"strings"

	"github.com/vapvarun/wc-subscription-protection/model"
)

const blockTitle = "Subscription Protection"

// IBlockService backs the structured editor's protection block.
type IBlockService interface {
	Describe(ctx context.Context) (*model.BlockType, error)
	Render(ctx context.Context, req model.BlockRenderRequest, requester model.Requester) (string, error)
}

type BlockService struct {
	name       string
	products   IProductService
	gatekeeper *Gatekeeper
}

var _ IBlockService = &BlockService{}

func NewBlockService(name string, products IProductService, gatekeeper *Gatekeeper) *BlockService {
	return &BlockService{name: name, products: products, gatekeeper: gatekeeper}
}

// Describe is the block registration descriptor, including the products
// the editor offers.
func (s *BlockService) Describe(ctx context.Context) (*model.BlockType, error) {
	products, err := s.products.EditorProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &model.BlockType{
		Name:  s.name,
		Title: blockTitle,
		Attributes: map[string]model.BlockAttribute{
			AttrRequiredProducts: {Type: "array", Default: []string{}},
			AttrCustomMessage:    {Type: "string", Default: ""},
			"content":            {Type: "string", Default: ""},
		},
		SubscriptionProducts: products,
	}, nil
}

// Render returns the block's content for an entitled requester and the
// protection notice otherwise. A block without products is shown to all.
func (s *BlockService) Render(ctx context.Context, req model.BlockRenderRequest, requester model.Requester) (string, error) {
	content := req.Attributes.Content
	if strings.TrimSpace(content) == "" {
		content = req.InnerContent
	}

	cfg := model.ProtectionConfig{
		Protected:        true,
		RequiredProducts: model.NormalizeProductIDs(req.Attributes.RequiredProducts),
		CustomMessage:    req.Attributes.CustomMessage,
	}

	decision, notice, err := s.gatekeeper.Guard(ctx, cfg, requester, Target{Permalink: req.Permalink})
	if err != nil {
		return "", err
	}
	if decision.Allowed() {
		return content, nil
	}
	return notice, nil
}
