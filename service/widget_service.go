// service/widget_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/render"
	"github.com/vapvarun/wc-subscription-protection/util"
)

// IWidgetService manages the sidebar status widget.
type IWidgetService interface {
	GetWidget(ctx context.Context, widgetID string) (*model.WidgetInstance, error)
	UpdateWidget(ctx context.Context, widget model.WidgetInstance, requester model.Requester) (*model.WidgetInstance, error)
	Render(ctx context.Context, widgetID, contentID string, requester model.Requester) (string, error)
}

type WidgetService struct {
	widgetStore    WidgetStore
	contentStore   ContentStore
	products       IProductService
	nonces         NonceService
	renderer       *render.Renderer
	validationUtil *util.ValidationUtil
}

var _ IWidgetService = &WidgetService{}

func NewWidgetService(widgetStore WidgetStore, contentStore ContentStore, products IProductService, nonces NonceService, renderer *render.Renderer, validationUtil *util.ValidationUtil) *WidgetService {
	return &WidgetService{
		widgetStore:    widgetStore,
		contentStore:   contentStore,
		products:       products,
		nonces:         nonces,
		renderer:       renderer,
		validationUtil: validationUtil,
	}
}

// GetWidget returns the stored settings, or the defaults for an instance
// that was never saved.
func (s *WidgetService) GetWidget(ctx context.Context, widgetID string) (*model.WidgetInstance, error) {
	widget, err := s.widgetStore.GetWidget(ctx, widgetID)
	if errors.Is(err, gate_errors.ErrWidgetNotFound) {
		return &model.WidgetInstance{ID: widgetID}, nil
	}
	return widget, err
}

func (s *WidgetService) UpdateWidget(ctx context.Context, widget model.WidgetInstance, requester model.Requester) (*model.WidgetInstance, error) {
	if !requester.Can(model.CapEditThemeOptions) {
		return nil, gate_errors.ErrForbidden
	}

	widget.Title = util.SanitizeText(widget.Title)
	if err := s.validationUtil.ValidateWidget(widget); err != nil {
		return nil, fmt.Errorf("%w: %v", gate_errors.ErrInvalidWidgetData, err)
	}
	return s.widgetStore.SaveWidget(ctx, widget)
}

// Render draws the widget for the content item being viewed. Without a
// content item (a non-singular view) the widget renders nothing.
func (s *WidgetService) Render(ctx context.Context, widgetID, contentID string, requester model.Requester) (string, error) {
	if contentID == "" {
		return "", nil
	}

	widget, err := s.GetWidget(ctx, widgetID)
	if err != nil {
		return "", err
	}

	var cfg model.ProtectionConfig
	item, err := s.contentStore.GetContent(ctx, contentID)
	switch {
	case errors.Is(err, gate_errors.ErrContentNotFound):
	case err != nil:
		return "", err
	default:
		cfg = item.Protection
	}

	view := render.WidgetView{
		Title:      widget.DisplayTitle(),
		ContentID:  contentID,
		ShowStatus: widget.ShowStatus,
		Protected:  cfg.Protected,
	}

	if widget.ShowStatus && cfg.Protected && len(cfg.RequiredProducts) > 0 {
		products, err := s.products.Resolve(ctx, cfg.RequiredProducts)
		if err != nil {
			logger.Warn("Failed to resolve widget products", zap.Error(err), zap.String("contentID", contentID))
		}
		for _, p := range products {
			view.RequiredNames = append(view.RequiredNames, p.Name)
		}
	}

	if widget.ShowToggle && requester.Can(model.CapEditPosts) {
		nonce, err := s.nonces.Issue(ctx, util.NonceActionToggleProtection, requester.UserID)
		if err != nil {
			return "", err
		}
		view.ShowToggle = true
		view.Nonce = nonce
	}

	return s.renderer.Widget(view)
}
