// controller/admin_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
	helper_util "github.com/vapvarun/wc-subscription-protection/util/helper"
)

const defaultAuditWindow = 24 * time.Hour

type AdminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AdminController) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/notices", ac.ListNotices)
		admin.GET("/audit", ac.ListAuditLogs)
	}
}

func (ac *AdminController) ListNotices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"commerce_available": ac.adminService.CommerceAvailable(),
		"notices":            ac.adminService.Notices(),
	})
}

// ListAuditLogs endpoint. Query parameters: from, to (RFC3339), user_id and
// content_id.
func (ac *AdminController) ListAuditLogs(c *gin.Context) {
	from, to, err := helper_util.GetTimeRangeParams(c, defaultAuditWindow)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid time range", gate_errors.ErrInvalidAuditQuery)
		return
	}

	query := model.AuditQuery{
		From:      from,
		To:        to,
		UserID:    c.Query("user_id"),
		ContentID: c.Query("content_id"),
	}
	logs, err := ac.adminService.AuditLogs(c, query, util.GetRequesterFromContext(c))
	if err != nil {
		respondWithServiceError(c, err, "Failed to query audit logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from": helper_util.FormatTime(from),
		"to":   helper_util.FormatTime(to),
		"logs": logs,
	})
}
