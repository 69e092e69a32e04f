// util/validation_util.go

package util

import (
	"fmt"

	"github.com/vapvarun/wc-subscription-protection/model"
)

const (
	maxCustomMessageLength = 2000
	maxWidgetTitleLength   = 200
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateProtectionConfig(cfg model.ProtectionConfig) error {
	for _, id := range cfg.RequiredProducts {
		if id == "" {
			return fmt.Errorf("required product IDs cannot be empty")
		}
	}
	if len(cfg.CustomMessage) > maxCustomMessageLength {
		return fmt.Errorf("custom message cannot exceed %d characters", maxCustomMessageLength)
	}
	return nil
}

func (v *ValidationUtil) ValidateContent(item model.ContentItem) error {
	if item.ID == "" {
		return fmt.Errorf("content ID cannot be empty")
	}
	if item.Type == "" {
		return fmt.Errorf("content type cannot be empty")
	}
	if item.Permalink == "" {
		return fmt.Errorf("content permalink cannot be empty")
	}
	return v.ValidateProtectionConfig(item.Protection)
}

func (v *ValidationUtil) ValidateWidget(widget model.WidgetInstance) error {
	if widget.ID == "" {
		return fmt.Errorf("widget ID cannot be empty")
	}
	if len(widget.Title) > maxWidgetTitleLength {
		return fmt.Errorf("widget title cannot exceed %d characters", maxWidgetTitleLength)
	}
	return nil
}
