// service/protection_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/render"
	"github.com/vapvarun/wc-subscription-protection/util"
)

// Change types carried by ProtectionChangeEvent.
const (
	ChangeUpdated  = "updated"
	ChangeEnabled  = "enabled"
	ChangeDisabled = "disabled"
)

// ProtectionChangeEvent is published after every applied settings write.
type ProtectionChangeEvent struct {
	ChangeType string
	ContentID  string
	UserID     string
	Config     model.ProtectionConfig
}

// IProtectionService is the authorized write path for protection settings.
type IProtectionService interface {
	IssueNonce(ctx context.Context, action string, requester model.Requester) (string, error)
	Save(ctx context.Context, contentID string, form model.ProtectionForm, requester model.Requester) (*model.SaveResult, error)
	Toggle(ctx context.Context, form model.ToggleForm, requester model.Requester) (*model.ToggleResult, error)
	RenderPanel(ctx context.Context, contentID string, requester model.Requester) (string, error)
}

type ProtectionService struct {
	contentStore    ContentStore
	products        IProductService
	nonces          NonceService
	renderer        *render.Renderer
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
	contentTypes    map[string]struct{}
}

var _ IProtectionService = &ProtectionService{}

func NewProtectionService(
	contentStore ContentStore,
	products IProductService,
	nonces NonceService,
	renderer *render.Renderer,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	contentTypes []string,
) *ProtectionService {
	types := make(map[string]struct{}, len(contentTypes))
	for _, t := range contentTypes {
		types[t] = struct{}{}
	}

	service := &ProtectionService{
		contentStore:    contentStore,
		products:        products,
		nonces:          nonces,
		renderer:        renderer,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		contentTypes:    types,
	}

	eventBus.Subscribe(util.EventProtectionUpdated, service.handleProtectionChanged)
	eventBus.Subscribe(util.EventProtectionToggled, service.handleProtectionChanged)

	return service
}

func (s *ProtectionService) handleProtectionChanged(ctx context.Context, event util.Event) error {
	change, ok := event.Payload.(ProtectionChangeEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	logger.Info("Protection change event received",
		zap.String("contentID", change.ContentID),
		zap.String("changeType", change.ChangeType))

	if err := s.notificationSvc.NotifyProtectionChange(ctx, change.ChangeType, change.ContentID, change.Config); err != nil {
		logger.Warn("Failed to send protection change notification", zap.Error(err), zap.String("contentID", change.ContentID))
	}
	return nil
}

func (s *ProtectionService) supports(item *model.ContentItem) bool {
	_, ok := s.contentTypes[item.Type]
	return ok
}

// IssueNonce hands a logged-in requester a token for one of the write
// actions.
func (s *ProtectionService) IssueNonce(ctx context.Context, action string, requester model.Requester) (string, error) {
	if !util.KnownNonceAction(action) {
		return "", gate_errors.ErrUnknownNonceAction
	}
	if requester.IsAnonymous() {
		return "", gate_errors.ErrUnauthorized
	}
	return s.nonces.Issue(ctx, action, requester.UserID)
}

func (s *ProtectionService) verifyNonce(ctx context.Context, action, token string, requester model.Requester) error {
	if requester.IsAnonymous() {
		return gate_errors.ErrInvalidNonce
	}
	valid, err := s.nonces.Verify(ctx, action, requester.UserID, token)
	if err != nil {
		return err
	}
	if !valid {
		return gate_errors.ErrInvalidNonce
	}
	return nil
}

// Save applies a submitted settings panel. Autosaves, bad nonces and
// requesters without edit rights on the item are rejected with an error
// that gate_errors.IsSkippedWrite recognises; nothing is written.
func (s *ProtectionService) Save(ctx context.Context, contentID string, form model.ProtectionForm, requester model.Requester) (*model.SaveResult, error) {
	if form.Autosave {
		return nil, gate_errors.ErrAutosave
	}
	if err := s.verifyNonce(ctx, util.NonceActionSaveProtection, form.Nonce, requester); err != nil {
		logger.Warn("Protection save rejected", zap.Error(err), zap.String("contentID", contentID))
		return nil, err
	}

	item, err := s.contentStore.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if !s.supports(item) || !requester.CanEditContent(item) {
		logger.Warn("Protection save rejected",
			zap.String("contentID", contentID),
			zap.String("userID", requester.UserID),
			zap.String("contentType", item.Type))
		return nil, gate_errors.ErrForbidden
	}

	cfg := model.ProtectionConfig{
		Protected:        form.Protected,
		RequiredProducts: model.NormalizeProductIDs(form.RequiredProducts),
		CustomMessage:    util.SanitizeTextarea(form.CustomMessage),
	}
	if err := s.validationUtil.ValidateProtectionConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", gate_errors.ErrInvalidProtectionData, err)
	}

	saved, err := s.contentStore.SaveProtection(ctx, contentID, cfg, requester.UserID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, util.EventProtectionUpdated, ProtectionChangeEvent{
		ChangeType: ChangeUpdated,
		ContentID:  contentID,
		UserID:     requester.UserID,
		Config:     saved.Protection,
	})
	return &model.SaveResult{Saved: true, Config: saved.Protection}, nil
}

// Toggle handles the widget's enable/disable form. An unrecognised action
// changes nothing but still redirects back to the item.
func (s *ProtectionService) Toggle(ctx context.Context, form model.ToggleForm, requester model.Requester) (*model.ToggleResult, error) {
	if err := s.verifyNonce(ctx, util.NonceActionToggleProtection, form.Nonce, requester); err != nil {
		logger.Warn("Protection toggle rejected", zap.Error(err), zap.String("contentID", form.ContentID))
		return nil, err
	}
	if !requester.Can(model.CapEditPosts) {
		return nil, gate_errors.ErrForbidden
	}

	item, err := s.contentStore.GetContent(ctx, form.ContentID)
	if err != nil {
		return nil, err
	}

	var protected bool
	var changeType string
	switch form.Action {
	case model.ToggleEnable:
		protected, changeType = true, ChangeEnabled
	case model.ToggleDisable:
		protected, changeType = false, ChangeDisabled
	default:
		return &model.ToggleResult{Applied: false, Redirect: item.Permalink}, nil
	}

	updated, err := s.contentStore.SetProtected(ctx, item.ID, protected, requester.UserID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, util.EventProtectionToggled, ProtectionChangeEvent{
		ChangeType: changeType,
		ContentID:  item.ID,
		UserID:     requester.UserID,
		Config:     updated.Protection,
	})
	return &model.ToggleResult{Applied: true, Redirect: updated.Permalink}, nil
}

// RenderPanel renders the settings panel for an editor of the item, with a
// fresh save nonce.
func (s *ProtectionService) RenderPanel(ctx context.Context, contentID string, requester model.Requester) (string, error) {
	item, err := s.contentStore.GetContent(ctx, contentID)
	if err != nil {
		return "", err
	}
	if !s.supports(item) {
		return "", fmt.Errorf("%w: no settings panel for type %q", gate_errors.ErrInvalidContentData, item.Type)
	}
	if !requester.CanEditContent(item) {
		return "", gate_errors.ErrForbidden
	}

	catalog, err := s.products.ListSubscriptionProducts(ctx)
	if err != nil {
		return "", err
	}
	nonce, err := s.nonces.Issue(ctx, util.NonceActionSaveProtection, requester.UserID)
	if err != nil {
		return "", err
	}
	return s.renderer.Panel(item.Protection, catalog, nonce)
}
