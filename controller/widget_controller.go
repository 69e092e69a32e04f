// controller/widget_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
)

type WidgetController struct {
	widgetService     service.IWidgetService
	protectionService service.IProtectionService
}

func NewWidgetController(widgetService service.IWidgetService, protectionService service.IProtectionService) *WidgetController {
	return &WidgetController{
		widgetService:     widgetService,
		protectionService: protectionService,
	}
}

// RegisterRoutes registers the API routes
func (wc *WidgetController) RegisterRoutes(r *gin.RouterGroup) {
	widgets := r.Group("/widgets")
	{
		widgets.POST("/toggle", wc.ToggleProtection)
		widgets.GET("/:id", wc.GetWidget)
		widgets.PUT("/:id", wc.UpdateWidget)
		widgets.GET("/:id/render", wc.RenderWidget)
	}
}

// GetWidget endpoint
func (wc *WidgetController) GetWidget(c *gin.Context) {
	widget, err := wc.widgetService.GetWidget(c, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to get widget")
		return
	}

	c.JSON(http.StatusOK, widget)
}

// UpdateWidget endpoint
func (wc *WidgetController) UpdateWidget(c *gin.Context) {
	var widget model.WidgetInstance
	if err := c.ShouldBindJSON(&widget); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid widget data", gate_errors.ErrInvalidWidgetData)
		return
	}
	widget.ID = c.Param("id")

	updated, err := wc.widgetService.UpdateWidget(c, widget, util.GetRequesterFromContext(c))
	if err != nil {
		respondWithServiceError(c, err, "Failed to update widget")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RenderWidget returns the widget markup for the item named by content_id.
func (wc *WidgetController) RenderWidget(c *gin.Context) {
	html, err := wc.widgetService.Render(c, c.Param("id"), c.Query("content_id"), util.GetRequesterFromContext(c))
	if err != nil {
		respondWithServiceError(c, err, "Failed to render widget")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ToggleProtection handles the widget form. Browsers are sent back to the
// item with a 303; JSON clients get the redirect target in the body.
func (wc *WidgetController) ToggleProtection(c *gin.Context) {
	var form model.ToggleForm
	if err := c.ShouldBind(&form); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid toggle request", err)
		return
	}

	result, err := wc.protectionService.Toggle(c, form, util.GetRequesterFromContext(c))
	if err != nil {
		if gate_errors.IsSkippedWrite(err) {
			logger.Info("Protection toggle skipped",
				zap.String("contentID", form.ContentID),
				zap.String("reason", err.Error()))
			c.JSON(http.StatusOK, model.ToggleResult{Applied: false})
			return
		}
		respondWithServiceError(c, err, "Failed to toggle protection")
		return
	}

	if result.Redirect == "" || c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON {
		c.JSON(http.StatusOK, result)
		return
	}
	c.Redirect(http.StatusSeeOther, result.Redirect)
}
