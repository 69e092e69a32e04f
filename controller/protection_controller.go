// controller/protection_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
)

type ProtectionController struct {
	protectionService service.IProtectionService
}

func NewProtectionController(protectionService service.IProtectionService) *ProtectionController {
	return &ProtectionController{
		protectionService: protectionService,
	}
}

type nonceRequest struct {
	Action string `json:"action" binding:"required"`
}

// RegisterRoutes registers the API routes
func (pc *ProtectionController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/content/:id/protection/panel", pc.RenderPanel)
	r.POST("/content/:id/protection", pc.SaveProtection)
	r.POST("/nonces", pc.IssueNonce)
}

// RenderPanel returns the settings panel as HTML.
func (pc *ProtectionController) RenderPanel(c *gin.Context) {
	html, err := pc.protectionService.RenderPanel(c, c.Param("id"), util.GetRequesterFromContext(c))
	if err != nil {
		respondWithServiceError(c, err, "Failed to render protection panel")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// SaveProtection accepts the panel as a form post or as JSON. A write the
// checks reject answers 200 with saved=false, like the host's save hook.
func (pc *ProtectionController) SaveProtection(c *gin.Context) {
	var form model.ProtectionForm
	if err := c.ShouldBind(&form); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid protection data", gate_errors.ErrInvalidProtectionData)
		return
	}

	contentID := c.Param("id")
	result, err := pc.protectionService.Save(c, contentID, form, util.GetRequesterFromContext(c))
	if err != nil {
		if gate_errors.IsSkippedWrite(err) {
			logger.Info("Protection save skipped",
				zap.String("contentID", contentID),
				zap.String("reason", err.Error()))
			c.JSON(http.StatusOK, model.SaveResult{Saved: false})
			return
		}
		respondWithServiceError(c, err, "Failed to save protection settings")
		return
	}

	c.JSON(http.StatusOK, result)
}

// IssueNonce endpoint
func (pc *ProtectionController) IssueNonce(c *gin.Context) {
	var req nonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid nonce request", err)
		return
	}

	token, err := pc.protectionService.IssueNonce(c, req.Action, util.GetRequesterFromContext(c))
	if err != nil {
		respondWithServiceError(c, err, "Failed to issue nonce")
		return
	}

	c.JSON(http.StatusOK, gin.H{"action": req.Action, "nonce": token})
}
