// controller/shortcode_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
)

type ShortcodeController struct {
	shortcodeService service.IShortcodeService
}

func NewShortcodeController(shortcodeService service.IShortcodeService) *ShortcodeController {
	return &ShortcodeController{
		shortcodeService: shortcodeService,
	}
}

// RegisterRoutes registers the API routes
func (sc *ShortcodeController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/shortcodes/render", sc.RenderShortcodes)
	r.GET("/shortcodes/tags", sc.ListTags)
	r.POST("/editor/shortcode", sc.BuildShortcode)
}

// RenderShortcodes expands inline protection tags for the current requester.
func (sc *ShortcodeController) RenderShortcodes(c *gin.Context) {
	var req model.ShortcodeRenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid shortcode render request", err)
		return
	}

	out, err := sc.shortcodeService.Process(c, req, util.GetRequesterFromContext(c))
	if err != nil {
		respondWithServiceError(c, err, "Failed to render shortcodes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": out})
}

// ListTags endpoint
func (sc *ShortcodeController) ListTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": sc.shortcodeService.Tags()})
}

// BuildShortcode is the classic editor insertion. The error messages are the
// ones the editor popup shows verbatim.
func (sc *ShortcodeController) BuildShortcode(c *gin.Context) {
	var req model.ShortcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid shortcode request", err)
		return
	}

	tag, err := sc.shortcodeService.Build(req)
	if err != nil {
		switch {
		case errors.Is(err, gate_errors.ErrNoProductsSelected):
			util.RespondWithError(c, http.StatusBadRequest, "Please select at least one subscription product.", err)
		case errors.Is(err, gate_errors.ErrNoContentToProtect):
			util.RespondWithError(c, http.StatusBadRequest, "Please enter the content to protect.", err)
		default:
			respondWithServiceError(c, err, "Failed to build shortcode")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"shortcode": tag})
}
