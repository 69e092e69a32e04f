// controller/content_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
)

type ContentController struct {
	contentService service.IContentService
}

func NewContentController(contentService service.IContentService) *ContentController {
	return &ContentController{
		contentService: contentService,
	}
}

// RegisterRoutes registers the API routes
func (cc *ContentController) RegisterRoutes(r *gin.RouterGroup) {
	content := r.Group("/content")
	{
		content.PUT("/:id", cc.RegisterContent)
		content.GET("/:id", cc.GetContent)
		content.POST("/:id/render", cc.RenderContent)
		content.GET("/:id/protection", cc.GetProtection)
	}
}

// RegisterContent endpoint. The host calls it whenever an item is created or
// its title, permalink or author change.
func (cc *ContentController) RegisterContent(c *gin.Context) {
	requester := util.GetRequesterFromContext(c)
	if requester.IsAnonymous() {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", gate_errors.ErrUnauthorized)
		return
	}
	if !requester.Can(model.CapEditPosts) {
		util.RespondWithError(c, http.StatusForbidden, "Forbidden", gate_errors.ErrForbidden)
		return
	}

	var item model.ContentItem
	if err := c.ShouldBindJSON(&item); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid content data", gate_errors.ErrInvalidContentData)
		return
	}
	item.ID = c.Param("id")

	saved, err := cc.contentService.RegisterContent(c, item)
	if err != nil {
		respondWithServiceError(c, err, "Failed to register content")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GetContent endpoint
func (cc *ContentController) GetContent(c *gin.Context) {
	item, err := cc.contentService.GetContent(c, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to get content")
		return
	}

	c.JSON(http.StatusOK, item)
}

// RenderContent runs the content filter for the current requester.
func (cc *ContentController) RenderContent(c *gin.Context) {
	var req model.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid render request", err)
		return
	}

	result, err := cc.contentService.Render(c, c.Param("id"), req, util.GetRequesterFromContext(c))
	if err != nil {
		respondWithServiceError(c, err, "Failed to render content")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProtection endpoint. Unknown items report the zero config.
func (cc *ContentController) GetProtection(c *gin.Context) {
	cfg, err := cc.contentService.GetProtection(c, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to get protection settings")
		return
	}

	c.JSON(http.StatusOK, cfg)
}
