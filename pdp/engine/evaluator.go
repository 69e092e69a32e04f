package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	pdp_model "github.com/vapvarun/wc-subscription-protection/pdp/model"
)

// DefaultMessage is shown on deny when the config carries no custom message.
const DefaultMessage = "This content is protected and requires an active subscription to view."

// SubscriptionChecker answers whether a user holds an active subscription
// to a product. Its answer is authoritative for the current request.
type SubscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userID string, productID model.ProductID) (bool, error)
}

// SubscriptionCheckerFunc adapts a plain function to SubscriptionChecker.
type SubscriptionCheckerFunc func(ctx context.Context, userID string, productID model.ProductID) (bool, error)

func (f SubscriptionCheckerFunc) HasActiveSubscription(ctx context.Context, userID string, productID model.ProductID) (bool, error) {
	return f(ctx, userID, productID)
}

// AccessEvaluator decides whether protected content is shown to a
// requester. It holds no per-request state and never caches decisions:
// subscription status can change between requests.
type AccessEvaluator struct {
	subscriptions  SubscriptionChecker
	defaultMessage string
}

func NewAccessEvaluator(subscriptions SubscriptionChecker, defaultMessage string) *AccessEvaluator {
	if defaultMessage == "" {
		defaultMessage = DefaultMessage
	}
	return &AccessEvaluator{
		subscriptions:  subscriptions,
		defaultMessage: defaultMessage,
	}
}

// Evaluate applies an any-of policy over config.RequiredProducts. Lookup
// errors are returned as-is; there is no retry and no fallback decision.
func (ae *AccessEvaluator) Evaluate(ctx context.Context, config model.ProtectionConfig, requester model.Requester) (*pdp_model.AccessDecision, error) {
	if !config.Protected {
		return &pdp_model.AccessDecision{Effect: pdp_model.EffectAllow, Reason: "Content is not protected"}, nil
	}
	if len(config.RequiredProducts) == 0 {
		return &pdp_model.AccessDecision{Effect: pdp_model.EffectAllow, Reason: "No required products configured"}, nil
	}

	if requester.IsAnonymous() {
		return ae.deny(config, pdp_model.CallToActionLogin, "Anonymous requester"), nil
	}

	for _, productID := range config.RequiredProducts {
		active, err := ae.subscriptions.HasActiveSubscription(ctx, requester.UserID, productID)
		if err != nil {
			return nil, fmt.Errorf("checking subscription to product %s: %w", productID, err)
		}
		if active {
			logger.Debug("Active subscription found",
				zap.String("userID", requester.UserID),
				zap.String("productID", string(productID)))
			return &pdp_model.AccessDecision{
				Effect:         pdp_model.EffectAllow,
				Reason:         "Active subscription to a required product",
				MatchedProduct: productID,
			}, nil
		}
	}

	return ae.deny(config, pdp_model.CallToActionBrowse, "No active subscription to any required product"), nil
}

func (ae *AccessEvaluator) deny(config model.ProtectionConfig, cta pdp_model.CallToAction, reason string) *pdp_model.AccessDecision {
	message := config.CustomMessage
	if message == "" {
		message = ae.defaultMessage
	}
	products := make([]model.ProductID, len(config.RequiredProducts))
	copy(products, config.RequiredProducts)

	return &pdp_model.AccessDecision{
		Effect:           pdp_model.EffectDeny,
		Reason:           reason,
		Message:          message,
		RequiredProducts: products,
		CallToAction:     cta,
	}
}
