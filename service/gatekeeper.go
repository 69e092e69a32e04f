// service/gatekeeper.go
package service

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/pdp/engine"
	pdp_model "github.com/vapvarun/wc-subscription-protection/pdp/model"
	"github.com/vapvarun/wc-subscription-protection/render"
	"github.com/vapvarun/wc-subscription-protection/util"
)

// AccessDeniedEvent is published whenever a notice replaces content.
type AccessDeniedEvent struct {
	ContentID        string
	UserID           string
	RequiredProducts []model.ProductID
}

// Target identifies what is being guarded: the owning content item (may be
// empty for inline spans) and the permalink the login link returns to.
type Target struct {
	ContentID string
	Permalink string
}

// Gatekeeper is the one place every surface asks whether protected
// content may be shown. With the commerce extension missing it allows
// everything.
type Gatekeeper struct {
	evaluator *engine.AccessEvaluator
	products  IProductService
	renderer  *render.Renderer
	status    util.DependencyStatus
	eventBus  *util.EventBus
}

func NewGatekeeper(evaluator *engine.AccessEvaluator, products IProductService, renderer *render.Renderer, status util.DependencyStatus, eventBus *util.EventBus) *Gatekeeper {
	return &Gatekeeper{
		evaluator: evaluator,
		products:  products,
		renderer:  renderer,
		status:    status,
		eventBus:  eventBus,
	}
}

// Guard evaluates cfg for requester. On deny the returned notice is the
// markup to show instead of the content; on allow it is empty.
func (g *Gatekeeper) Guard(ctx context.Context, cfg model.ProtectionConfig, requester model.Requester, target Target) (*pdp_model.AccessDecision, string, error) {
	if !g.status.CommerceAvailable {
		return &pdp_model.AccessDecision{
			Effect: pdp_model.EffectAllow,
			Reason: "Commerce extension unavailable, protection inactive",
		}, "", nil
	}

	decision, err := g.evaluator.Evaluate(ctx, cfg, requester)
	if err != nil {
		logger.Error("Access evaluation failed",
			zap.Error(err),
			zap.String("contentID", target.ContentID),
			zap.String("userID", requester.UserID))
		return nil, "", err
	}
	if decision.Allowed() {
		return decision, "", nil
	}

	products, err := g.products.Resolve(ctx, decision.RequiredProducts)
	if err != nil {
		logger.Warn("Failed to resolve required products for notice",
			zap.Error(err),
			zap.String("contentID", target.ContentID))
		products = nil
	}

	notice, err := g.renderer.Notice(decision, products, target.Permalink)
	if err != nil {
		return nil, "", err
	}

	if g.eventBus != nil {
		g.eventBus.Publish(ctx, util.EventAccessDenied, AccessDeniedEvent{
			ContentID:        target.ContentID,
			UserID:           requester.UserID,
			RequiredProducts: decision.RequiredProducts,
		})
	}
	return decision, notice, nil
}
