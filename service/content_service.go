// service/content_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vapvarun/wc-subscription-protection/audit"
	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/util"
)

// IContentService defines the content filter and content registration.
type IContentService interface {
	RegisterContent(ctx context.Context, item model.ContentItem) (*model.ContentItem, error)
	GetContent(ctx context.Context, contentID string) (*model.ContentItem, error)
	GetProtection(ctx context.Context, contentID string) (*model.ProtectionConfig, error)
	Render(ctx context.Context, contentID string, req model.RenderRequest, requester model.Requester) (*model.RenderResult, error)
}

type ContentService struct {
	contentStore   ContentStore
	gatekeeper     *Gatekeeper
	validationUtil *util.ValidationUtil
	auditService   audit.Service
}

var _ IContentService = &ContentService{}

func NewContentService(contentStore ContentStore, gatekeeper *Gatekeeper, validationUtil *util.ValidationUtil, auditService audit.Service, eventBus *util.EventBus) *ContentService {
	service := &ContentService{
		contentStore:   contentStore,
		gatekeeper:     gatekeeper,
		validationUtil: validationUtil,
		auditService:   auditService,
	}

	eventBus.Subscribe(util.EventAccessDenied, service.handleAccessDenied)

	return service
}

func (s *ContentService) handleAccessDenied(ctx context.Context, event util.Event) error {
	denied, ok := event.Payload.(AccessDeniedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}

	products := make([]string, len(denied.RequiredProducts))
	for i, p := range denied.RequiredProducts {
		products[i] = string(p)
	}
	return s.auditService.LogAccess(ctx, audit.AuditLog{
		UserID:        denied.UserID,
		Action:        audit.ActionAccessDenied,
		ContentID:     denied.ContentID,
		AccessGranted: false,
		ProductIDs:    products,
	})
}

// RegisterContent syncs a host content item. Its protection settings are
// only ever changed through ProtectionService.
func (s *ContentService) RegisterContent(ctx context.Context, item model.ContentItem) (*model.ContentItem, error) {
	if err := s.validationUtil.ValidateContent(item); err != nil {
		logger.Warn("Invalid content data", zap.Error(err), zap.String("contentID", item.ID))
		return nil, fmt.Errorf("%w: %v", gate_errors.ErrInvalidContentData, err)
	}
	return s.contentStore.UpsertContent(ctx, item)
}

func (s *ContentService) GetContent(ctx context.Context, contentID string) (*model.ContentItem, error) {
	return s.contentStore.GetContent(ctx, contentID)
}

// GetProtection returns the item's config. Unknown items read as
// unprotected.
func (s *ContentService) GetProtection(ctx context.Context, contentID string) (*model.ProtectionConfig, error) {
	item, err := s.contentStore.GetContent(ctx, contentID)
	if errors.Is(err, gate_errors.ErrContentNotFound) {
		return &model.ProtectionConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &item.Protection, nil
}

// Render is the content filter. Only singular front-end views are
// filtered; everything else comes back untouched.
func (s *ContentService) Render(ctx context.Context, contentID string, req model.RenderRequest, requester model.Requester) (*model.RenderResult, error) {
	passThrough := &model.RenderResult{Content: req.Content, Decision: model.DecisionPassThrough}
	if !req.Singular || req.Admin {
		return passThrough, nil
	}

	item, err := s.contentStore.GetContent(ctx, contentID)
	if errors.Is(err, gate_errors.ErrContentNotFound) {
		return passThrough, nil
	}
	if err != nil {
		return nil, err
	}
	// Protected with no products selected restricts nobody.
	if !item.Protection.Enforced() {
		return passThrough, nil
	}

	decision, notice, err := s.gatekeeper.Guard(ctx, item.Protection, requester, Target{
		ContentID: item.ID,
		Permalink: item.Permalink,
	})
	if err != nil {
		return nil, err
	}

	if decision.Allowed() {
		return &model.RenderResult{Content: req.Content, Protected: true, Decision: model.DecisionAllow}, nil
	}

	logger.Info("Protected content withheld",
		zap.String("contentID", item.ID),
		zap.String("userID", requester.UserID),
		zap.String("callToAction", string(decision.CallToAction)))
	return &model.RenderResult{Content: notice, Protected: true, Decision: model.DecisionDeny}, nil
}
