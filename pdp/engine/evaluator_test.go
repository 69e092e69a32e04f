package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/pdp/engine"
	pdp_model "github.com/vapvarun/wc-subscription-protection/pdp/model"
)

// subscriptions is an in-memory lookup that records every call.
type subscriptions struct {
	active map[string]map[model.ProductID]bool
	calls  []model.ProductID
	err    error
}

func (s *subscriptions) HasActiveSubscription(_ context.Context, userID string, productID model.ProductID) (bool, error) {
	s.calls = append(s.calls, productID)
	if s.err != nil {
		return false, s.err
	}
	return s.active[userID][productID], nil
}

func subscribed(userID string, products ...model.ProductID) *subscriptions {
	set := map[model.ProductID]bool{}
	for _, p := range products {
		set[p] = true
	}
	return &subscriptions{active: map[string]map[model.ProductID]bool{userID: set}}
}

var member = model.Requester{UserID: "7", Username: "reader"}

func TestEvaluate_Unprotected(t *testing.T) {
	requesters := []model.Requester{model.Anonymous(), member}
	configs := []model.ProtectionConfig{
		{},
		{Protected: false, RequiredProducts: []model.ProductID{"42"}},
		{Protected: false, RequiredProducts: []model.ProductID{"42"}, CustomMessage: "nope"},
	}

	for _, cfg := range configs {
		for _, r := range requesters {
			subs := subscribed("someone-else")
			decision, err := engine.NewAccessEvaluator(subs, "").Evaluate(context.Background(), cfg, r)
			require.NoError(t, err)
			assert.True(t, decision.Allowed())
			assert.Empty(t, subs.calls, "unprotected content must not hit the subscription lookup")
		}
	}
}

func TestEvaluate_ProtectedWithoutProducts(t *testing.T) {
	cfg := model.ProtectionConfig{Protected: true}

	for _, r := range []model.Requester{model.Anonymous(), member} {
		decision, err := engine.NewAccessEvaluator(subscribed("7"), "").Evaluate(context.Background(), cfg, r)
		require.NoError(t, err)
		assert.Equal(t, pdp_model.EffectAllow, decision.Effect)
	}
}

func TestEvaluate_AnonymousIsDenied(t *testing.T) {
	cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42"}}
	subs := subscribed("7", "42")

	decision, err := engine.NewAccessEvaluator(subs, "").Evaluate(context.Background(), cfg, model.Anonymous())
	require.NoError(t, err)

	assert.Equal(t, pdp_model.EffectDeny, decision.Effect)
	assert.Equal(t, pdp_model.CallToActionLogin, decision.CallToAction)
	assert.Equal(t, engine.DefaultMessage, decision.Message)
	assert.Equal(t, []model.ProductID{"42"}, decision.RequiredProducts)
	assert.Empty(t, subs.calls)
}

func TestEvaluate_AnyOfShortCircuits(t *testing.T) {
	cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"10", "42", "99"}}
	subs := subscribed("7", "42", "99")

	decision, err := engine.NewAccessEvaluator(subs, "").Evaluate(context.Background(), cfg, member)
	require.NoError(t, err)

	assert.True(t, decision.Allowed())
	assert.Equal(t, model.ProductID("42"), decision.MatchedProduct)
	assert.Equal(t, []model.ProductID{"10", "42"}, subs.calls)
}

func TestEvaluate_NoSubscriptionIsDenied(t *testing.T) {
	t.Run("default message", func(t *testing.T) {
		cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"10", "42"}}
		decision, err := engine.NewAccessEvaluator(subscribed("7", "5"), "").Evaluate(context.Background(), cfg, member)
		require.NoError(t, err)

		assert.Equal(t, pdp_model.EffectDeny, decision.Effect)
		assert.Equal(t, pdp_model.CallToActionBrowse, decision.CallToAction)
		assert.Equal(t, engine.DefaultMessage, decision.Message)
		assert.Equal(t, []model.ProductID{"10", "42"}, decision.RequiredProducts)
	})

	t.Run("custom message", func(t *testing.T) {
		cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42"}, CustomMessage: "Members only"}
		decision, err := engine.NewAccessEvaluator(subscribed("7"), "").Evaluate(context.Background(), cfg, member)
		require.NoError(t, err)

		assert.Equal(t, "Members only", decision.Message)
	})

	t.Run("configured default message", func(t *testing.T) {
		cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42"}}
		decision, err := engine.NewAccessEvaluator(subscribed("7"), "Subscribe first.").Evaluate(context.Background(), cfg, member)
		require.NoError(t, err)

		assert.Equal(t, "Subscribe first.", decision.Message)
	})
}

func TestEvaluate_LookupErrorPropagates(t *testing.T) {
	boom := errors.New("store offline")
	cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42", "43"}}
	subs := &subscriptions{err: boom}

	decision, err := engine.NewAccessEvaluator(subs, "").Evaluate(context.Background(), cfg, member)

	assert.Nil(t, decision)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, subs.calls, 1, "lookup must not be retried")
}

func TestEvaluate_Idempotent(t *testing.T) {
	cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42"}}
	evaluator := engine.NewAccessEvaluator(subscribed("7"), "")

	first, err := evaluator.Evaluate(context.Background(), cfg, member)
	require.NoError(t, err)
	second, err := evaluator.Evaluate(context.Background(), cfg, member)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_RechecksEveryRequest(t *testing.T) {
	cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42"}}
	active := false
	checker := engine.SubscriptionCheckerFunc(func(context.Context, string, model.ProductID) (bool, error) {
		return active, nil
	})
	evaluator := engine.NewAccessEvaluator(checker, "")

	decision, err := evaluator.Evaluate(context.Background(), cfg, member)
	require.NoError(t, err)
	assert.False(t, decision.Allowed())

	active = true
	decision, err = evaluator.Evaluate(context.Background(), cfg, member)
	require.NoError(t, err)
	assert.True(t, decision.Allowed())
}

func TestEvaluate_DenyPayloadDoesNotAliasConfig(t *testing.T) {
	cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42"}}
	decision, err := engine.NewAccessEvaluator(subscribed("7"), "").Evaluate(context.Background(), cfg, member)
	require.NoError(t, err)

	decision.RequiredProducts[0] = "changed"
	assert.Equal(t, model.ProductID("42"), cfg.RequiredProducts[0])
}
