// controller/controllers.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
)

type Controllers struct {
	Content    *ContentController
	Protection *ProtectionController
	Shortcode  *ShortcodeController
	Block      *BlockController
	Widget     *WidgetController
	Product    *ProductController
	Admin      *AdminController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Content:    NewContentController(services.Content),
		Protection: NewProtectionController(services.Protection),
		Shortcode:  NewShortcodeController(services.Shortcode),
		Block:      NewBlockController(services.Block),
		Widget:     NewWidgetController(services.Widget, services.Protection),
		Product:    NewProductController(services.Product),
		Admin:      NewAdminController(services.Admin),
	}
}

// RegisterRoutes mounts every controller on r.
func (cs *Controllers) RegisterRoutes(r *gin.RouterGroup) {
	cs.Content.RegisterRoutes(r)
	cs.Protection.RegisterRoutes(r)
	cs.Shortcode.RegisterRoutes(r)
	cs.Block.RegisterRoutes(r)
	cs.Widget.RegisterRoutes(r)
	cs.Product.RegisterRoutes(r)
	cs.Admin.RegisterRoutes(r)
}

// respondWithServiceError maps the error sentinels shared by every service
// onto a status code. fallback is the message for anything unrecognised.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gate_errors.ErrContentNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Content not found", err)
	case errors.Is(err, gate_errors.ErrProductNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Product not found", err)
	case errors.Is(err, gate_errors.ErrWidgetNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Widget not found", err)
	case errors.Is(err, gate_errors.ErrUnauthorized):
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, gate_errors.ErrForbidden):
		util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
	case errors.Is(err, gate_errors.ErrInvalidNonce):
		util.RespondWithError(c, http.StatusForbidden, "Invalid or expired nonce", err)
	case errors.Is(err, gate_errors.ErrInvalidContentData),
		errors.Is(err, gate_errors.ErrInvalidProtectionData),
		errors.Is(err, gate_errors.ErrInvalidWidgetData),
		errors.Is(err, gate_errors.ErrUnknownNonceAction),
		errors.Is(err, gate_errors.ErrInvalidAuditQuery):
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, gate_errors.ErrCommerceUnavailable):
		util.RespondWithError(c, http.StatusServiceUnavailable, "Commerce extension unavailable", err)
	case errors.Is(err, gate_errors.ErrDatabaseOperation):
		util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
