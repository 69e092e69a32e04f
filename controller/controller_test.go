// controller/controller_test.go
package controller_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vapvarun/wc-subscription-protection/audit"
	"github.com/vapvarun/wc-subscription-protection/controller"
	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
	mocks "github.com/vapvarun/wc-subscription-protection/test/mock"
	"github.com/vapvarun/wc-subscription-protection/util"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	author = model.Requester{UserID: "3", Capabilities: []string{model.CapEditPosts}}
	admin  = model.Requester{UserID: "1", Capabilities: []string{model.CapEditPosts, model.CapEditOthersPosts, model.CapEditThemeOptions}}
)

type serviceMocks struct {
	content    *mocks.MockContentService
	protection *mocks.MockProtectionService
	shortcode  *mocks.MockShortcodeService
	block      *mocks.MockBlockService
	widget     *mocks.MockWidgetService
	product    *mocks.MockProductService
	admin      *mocks.MockAdminService
}

// setupRouter mounts every controller under /api/v1 and resolves the
// requester to as, standing in for the identity middleware.
func setupRouter(as model.Requester) (*gin.Engine, *serviceMocks) {
	m := &serviceMocks{
		content:    new(mocks.MockContentService),
		protection: new(mocks.MockProtectionService),
		shortcode:  new(mocks.MockShortcodeService),
		block:      new(mocks.MockBlockService),
		widget:     new(mocks.MockWidgetService),
		product:    new(mocks.MockProductService),
		admin:      new(mocks.MockAdminService),
	}
	controllers := controller.InitializeControllers(&service.Services{
		Content:    m.content,
		Protection: m.protection,
		Shortcode:  m.shortcode,
		Block:      m.block,
		Widget:     m.widget,
		Product:    m.product,
		Admin:      m.admin,
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		util.SetRequester(c, as)
		c.Next()
	})
	controllers.RegisterRoutes(r.Group("/api/v1"))
	return r, m
}

func do(r *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestContentController(t *testing.T) {
	t.Run("RenderContent_Deny", func(t *testing.T) {
		r, m := setupRouter(model.Anonymous())
		req := model.RenderRequest{Content: "<p>secret</p>", Singular: true}
		m.content.On("Render", mock.Anything, "12", req, model.Anonymous()).
			Return(&model.RenderResult{Content: "notice", Protected: true, Decision: model.DecisionDeny}, nil)

		w := do(r, http.MethodPost, "/api/v1/content/12/render", "application/json", `{"content":"<p>secret</p>","singular":true}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "notice", body["content"])
		assert.Equal(t, model.DecisionDeny, body["decision"])
	})

	t.Run("RenderContent_LookupFailure", func(t *testing.T) {
		r, m := setupRouter(author)
		m.content.On("Render", mock.Anything, "12", mock.Anything, author).Return(nil, errors.New("connection reset"))

		w := do(r, http.MethodPost, "/api/v1/content/12/render", "application/json", `{"content":"x","singular":true}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to render content", decode(t, w)["error"])
	})

	t.Run("RenderContent_BadBody", func(t *testing.T) {
		r, _ := setupRouter(author)
		w := do(r, http.MethodPost, "/api/v1/content/12/render", "application/json", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetProtection_Success", func(t *testing.T) {
		r, m := setupRouter(model.Anonymous())
		m.content.On("GetProtection", mock.Anything, "12").
			Return(&model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42"}}, nil)

		w := do(r, http.MethodGet, "/api/v1/content/12/protection", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"protected":true,"required_products":["42"]}`, w.Body.String())
	})

	t.Run("GetContent_NotFound", func(t *testing.T) {
		r, m := setupRouter(author)
		m.content.On("GetContent", mock.Anything, "99").Return(nil, gate_errors.ErrContentNotFound)

		w := do(r, http.MethodGet, "/api/v1/content/99", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("RegisterContent_Success", func(t *testing.T) {
		r, m := setupRouter(author)
		item := model.ContentItem{ID: "12", Type: "post", Permalink: "https://example.com/p/"}
		m.content.On("RegisterContent", mock.Anything, item).Return(&item, nil)

		w := do(r, http.MethodPut, "/api/v1/content/12", "application/json", `{"type":"post","permalink":"https://example.com/p/"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		m.content.AssertExpectations(t)
	})

	t.Run("RegisterContent_Anonymous", func(t *testing.T) {
		r, m := setupRouter(model.Anonymous())
		w := do(r, http.MethodPut, "/api/v1/content/12", "application/json", `{"type":"post"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		m.content.AssertNotCalled(t, "RegisterContent", mock.Anything, mock.Anything)
	})

	t.Run("RegisterContent_NoCapability", func(t *testing.T) {
		r, _ := setupRouter(model.Requester{UserID: "9"})
		w := do(r, http.MethodPut, "/api/v1/content/12", "application/json", `{"type":"post"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("RegisterContent_Invalid", func(t *testing.T) {
		r, m := setupRouter(author)
		m.content.On("RegisterContent", mock.Anything, mock.Anything).Return(nil, gate_errors.ErrInvalidContentData)

		w := do(r, http.MethodPut, "/api/v1/content/12", "application/json", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProtectionController(t *testing.T) {
	t.Run("SaveProtection_Form", func(t *testing.T) {
		r, m := setupRouter(author)
		form := model.ProtectionForm{
			Nonce:            "tok",
			Protected:        true,
			RequiredProducts: []string{"42", "43"},
			CustomMessage:    "Members only",
		}
		cfg := model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42", "43"}, CustomMessage: "Members only"}
		m.protection.On("Save", mock.Anything, "12", form, author).Return(&model.SaveResult{Saved: true, Config: cfg}, nil)

		values := url.Values{
			"nonce":             {"tok"},
			"protected":         {"1"},
			"required_products": {"42", "43"},
			"custom_message":    {"Members only"},
		}
		w := do(r, http.MethodPost, "/api/v1/content/12/protection", "application/x-www-form-urlencoded", values.Encode())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["saved"])
		m.protection.AssertExpectations(t)
	})

	t.Run("SaveProtection_SkippedWrite", func(t *testing.T) {
		r, m := setupRouter(author)
		m.protection.On("Save", mock.Anything, "12", mock.Anything, author).Return(nil, gate_errors.ErrInvalidNonce)

		w := do(r, http.MethodPost, "/api/v1/content/12/protection", "application/json", `{"nonce":"forged","protected":true}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["saved"])
	})

	t.Run("SaveProtection_NotFound", func(t *testing.T) {
		r, m := setupRouter(author)
		m.protection.On("Save", mock.Anything, "99", mock.Anything, author).Return(nil, gate_errors.ErrContentNotFound)

		w := do(r, http.MethodPost, "/api/v1/content/99/protection", "application/json", `{"nonce":"tok"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("RenderPanel_HTML", func(t *testing.T) {
		r, m := setupRouter(author)
		m.protection.On("RenderPanel", mock.Anything, "12", author).Return(`<div class="panel"></div>`, nil)

		w := do(r, http.MethodGet, "/api/v1/content/12/protection/panel", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, `<div class="panel"></div>`, w.Body.String())
	})

	t.Run("RenderPanel_Forbidden", func(t *testing.T) {
		r, m := setupRouter(author)
		m.protection.On("RenderPanel", mock.Anything, "12", author).Return("", gate_errors.ErrForbidden)

		w := do(r, http.MethodGet, "/api/v1/content/12/protection/panel", "", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("IssueNonce_Success", func(t *testing.T) {
		r, m := setupRouter(author)
		m.protection.On("IssueNonce", mock.Anything, util.NonceActionSaveProtection, author).Return("tok", nil)

		w := do(r, http.MethodPost, "/api/v1/nonces", "application/json", `{"action":"`+util.NonceActionSaveProtection+`"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok", decode(t, w)["nonce"])
	})

	t.Run("IssueNonce_UnknownAction", func(t *testing.T) {
		r, m := setupRouter(author)
		m.protection.On("IssueNonce", mock.Anything, "nope", author).Return("", gate_errors.ErrUnknownNonceAction)

		w := do(r, http.MethodPost, "/api/v1/nonces", "application/json", `{"action":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("IssueNonce_Anonymous", func(t *testing.T) {
		r, m := setupRouter(model.Anonymous())
		m.protection.On("IssueNonce", mock.Anything, util.NonceActionSaveProtection, model.Anonymous()).Return("", gate_errors.ErrUnauthorized)

		w := do(r, http.MethodPost, "/api/v1/nonces", "application/json", `{"action":"`+util.NonceActionSaveProtection+`"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestShortcodeController(t *testing.T) {
	t.Run("BuildShortcode_Success", func(t *testing.T) {
		r, m := setupRouter(author)
		req := model.ShortcodeRequest{RequiredProducts: []model.ProductID{"42"}, Content: "x"}
		m.shortcode.On("Build", req).Return(`[protect required_products="42"]x[/protect]`, nil)

		w := do(r, http.MethodPost, "/api/v1/editor/shortcode", "application/json", `{"required_products":["42"],"content":"x"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `[protect required_products="42"]x[/protect]`, decode(t, w)["shortcode"])
	})

	t.Run("BuildShortcode_NumericProductIDs", func(t *testing.T) {
		r, m := setupRouter(author)
		req := model.ShortcodeRequest{RequiredProducts: []model.ProductID{"42", "43"}, Content: "x"}
		m.shortcode.On("Build", req).Return(`[protect required_products="42,43"]x[/protect]`, nil)

		w := do(r, http.MethodPost, "/api/v1/editor/shortcode", "application/json", `{"required_products":[42,43],"content":"x"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		m.shortcode.AssertExpectations(t)
	})

	t.Run("BuildShortcode_Validation", func(t *testing.T) {
		tests := []struct {
			err  error
			want string
		}{
			{gate_errors.ErrNoProductsSelected, "Please select at least one subscription product."},
			{gate_errors.ErrNoContentToProtect, "Please enter the content to protect."},
		}
		for _, tt := range tests {
			r, m := setupRouter(author)
			m.shortcode.On("Build", mock.Anything).Return("", tt.err)

			w := do(r, http.MethodPost, "/api/v1/editor/shortcode", "application/json", `{}`)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decode(t, w)["error"])
		}
	})

	t.Run("RenderShortcodes_Success", func(t *testing.T) {
		r, m := setupRouter(model.Anonymous())
		req := model.ShortcodeRenderRequest{Content: `[protect required_products="42"]x[/protect]`, Permalink: "https://example.com/p/"}
		m.shortcode.On("Process", mock.Anything, req, model.Anonymous()).Return("notice", nil)

		w := do(r, http.MethodPost, "/api/v1/shortcodes/render", "application/json",
			`{"content":"[protect required_products=\"42\"]x[/protect]","permalink":"https://example.com/p/"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "notice", decode(t, w)["content"])
	})

	t.Run("ListTags", func(t *testing.T) {
		r, m := setupRouter(model.Anonymous())
		m.shortcode.On("Tags").Return([]string{"protect", "wbcom_subscription_protection"})

		w := do(r, http.MethodGet, "/api/v1/shortcodes/tags", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"tags":["protect","wbcom_subscription_protection"]}`, w.Body.String())
	})
}

func TestBlockController(t *testing.T) {
	t.Run("DescribeBlock", func(t *testing.T) {
		r, m := setupRouter(author)
		m.block.On("Describe", mock.Anything).Return(&model.BlockType{Name: "wbcom/subscription-protection"}, nil)

		w := do(r, http.MethodGet, "/api/v1/blocks/subscription-protection", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "wbcom/subscription-protection", decode(t, w)["name"])
	})

	t.Run("RenderBlock", func(t *testing.T) {
		r, m := setupRouter(author)
		m.block.On("Render", mock.Anything, mock.MatchedBy(func(req model.BlockRenderRequest) bool {
			return req.InnerContent == "inner" && len(req.Attributes.RequiredProducts) == 1
		}), author).Return("inner", nil)

		w := do(r, http.MethodPost, "/api/v1/blocks/subscription-protection/render", "application/json",
			`{"attributes":{"required_products":["42"]},"inner_content":"inner"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "inner", decode(t, w)["content"])
	})

	t.Run("RenderBlock_NumericProductIDs", func(t *testing.T) {
		r, m := setupRouter(author)
		m.block.On("Render", mock.Anything, mock.MatchedBy(func(req model.BlockRenderRequest) bool {
			return assert.ObjectsAreEqual([]model.ProductID{"42", "43"}, req.Attributes.RequiredProducts)
		}), author).Return("inner", nil)

		w := do(r, http.MethodPost, "/api/v1/blocks/subscription-protection/render", "application/json",
			`{"attributes":{"required_products":[42,"43"]},"inner_content":"inner"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "inner", decode(t, w)["content"])
		m.block.AssertExpectations(t)
	})

	t.Run("RenderBlock_FractionalProductID", func(t *testing.T) {
		r, _ := setupRouter(author)
		w := do(r, http.MethodPost, "/api/v1/blocks/subscription-protection/render", "application/json",
			`{"attributes":{"required_products":[4.2]}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWidgetController(t *testing.T) {
	t.Run("ToggleProtection_Redirects", func(t *testing.T) {
		r, m := setupRouter(author)
		form := model.ToggleForm{Nonce: "tok", ContentID: "12", Action: model.ToggleEnable}
		m.protection.On("Toggle", mock.Anything, form, author).
			Return(&model.ToggleResult{Applied: true, Redirect: "https://example.com/members-digest/"}, nil)

		values := url.Values{"nonce": {"tok"}, "content_id": {"12"}, "action": {"enable"}}
		w := do(r, http.MethodPost, "/api/v1/widgets/toggle", "application/x-www-form-urlencoded", values.Encode())

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "https://example.com/members-digest/", w.Header().Get("Location"))
	})

	t.Run("ToggleProtection_JSONClient", func(t *testing.T) {
		r, m := setupRouter(author)
		m.protection.On("Toggle", mock.Anything, mock.Anything, author).
			Return(&model.ToggleResult{Applied: true, Redirect: "https://example.com/members-digest/"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/widgets/toggle", strings.NewReader(`{"nonce":"tok","content_id":"12","action":"disable"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["applied"])
	})

	t.Run("ToggleProtection_Skipped", func(t *testing.T) {
		r, m := setupRouter(author)
		m.protection.On("Toggle", mock.Anything, mock.Anything, author).Return(nil, gate_errors.ErrForbidden)

		w := do(r, http.MethodPost, "/api/v1/widgets/toggle", "application/json", `{"nonce":"tok","content_id":"12","action":"enable"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["applied"])
	})

	t.Run("GetWidget", func(t *testing.T) {
		r, m := setupRouter(admin)
		m.widget.On("GetWidget", mock.Anything, "sidebar-1").Return(&model.WidgetInstance{ID: "sidebar-1", ShowStatus: true}, nil)

		w := do(r, http.MethodGet, "/api/v1/widgets/sidebar-1", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["show_status"])
	})

	t.Run("UpdateWidget_Forbidden", func(t *testing.T) {
		r, m := setupRouter(author)
		m.widget.On("UpdateWidget", mock.Anything, model.WidgetInstance{ID: "sidebar-1", Title: "Members"}, author).
			Return(nil, gate_errors.ErrForbidden)

		w := do(r, http.MethodPut, "/api/v1/widgets/sidebar-1", "application/json", `{"title":"Members"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("UpdateWidget_Success", func(t *testing.T) {
		r, m := setupRouter(admin)
		saved := &model.WidgetInstance{ID: "sidebar-1", Title: "Members", ShowToggle: true}
		m.widget.On("UpdateWidget", mock.Anything, model.WidgetInstance{ID: "sidebar-1", Title: "Members", ShowToggle: true}, admin).Return(saved, nil)

		w := do(r, http.MethodPut, "/api/v1/widgets/sidebar-1", "application/json", `{"title":"Members","show_toggle":true}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Members", decode(t, w)["title"])
	})

	t.Run("RenderWidget", func(t *testing.T) {
		r, m := setupRouter(author)
		m.widget.On("Render", mock.Anything, "sidebar-1", "12", author).Return("<section></section>", nil)

		w := do(r, http.MethodGet, "/api/v1/widgets/sidebar-1/render?content_id=12", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<section></section>", w.Body.String())
	})
}

func TestProductController(t *testing.T) {
	products := []model.Product{
		{ID: "42", Name: "Gold"},
		{ID: "43", Name: "Silver"},
		{ID: "44", Name: "Bronze"},
	}

	t.Run("ListProducts_Paginated", func(t *testing.T) {
		r, m := setupRouter(author)
		m.product.On("ListSubscriptionProducts", mock.Anything).Return(products, nil)

		w := do(r, http.MethodGet, "/api/v1/products?limit=2&offset=1", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Products []model.Product `json:"products"`
			Total    int             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Total)
		assert.Equal(t, products[1:], body.Products)
	})

	t.Run("ListProducts_BadPagination", func(t *testing.T) {
		r, _ := setupRouter(author)
		w := do(r, http.MethodGet, "/api/v1/products?limit=abc", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetProduct_NotFound", func(t *testing.T) {
		r, m := setupRouter(author)
		m.product.On("GetProduct", mock.Anything, model.ProductID("404")).Return(nil, gate_errors.ErrProductNotFound)

		w := do(r, http.MethodGet, "/api/v1/products/404", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidateProduct_Success", func(t *testing.T) {
		shopManager := model.Requester{UserID: "1", Capabilities: []string{model.CapEditProducts}}
		r, m := setupRouter(shopManager)
		m.product.On("InvalidateProduct", mock.Anything, model.ProductID("42"), shopManager).Return(nil)

		w := do(r, http.MethodDelete, "/api/v1/products/42/cache", "", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		m.product.AssertExpectations(t)
	})

	t.Run("InvalidateProduct_Forbidden", func(t *testing.T) {
		r, m := setupRouter(author)
		m.product.On("InvalidateProduct", mock.Anything, model.ProductID("42"), author).Return(gate_errors.ErrForbidden)

		w := do(r, http.MethodDelete, "/api/v1/products/42/cache", "", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAdminController(t *testing.T) {
	t.Run("ListNotices", func(t *testing.T) {
		r, m := setupRouter(admin)
		m.admin.On("CommerceAvailable").Return(false)
		m.admin.On("Notices").Return([]model.AdminNotice{{Level: "error", Message: "missing"}})

		w := do(r, http.MethodGet, "/api/v1/admin/notices", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"commerce_available":false,"notices":[{"level":"error","message":"missing"}]}`, w.Body.String())
	})

	t.Run("ListAuditLogs_Success", func(t *testing.T) {
		r, m := setupRouter(admin)
		query := model.AuditQuery{
			From:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			To:        time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
			UserID:    "7",
			ContentID: "12",
		}
		logs := []audit.AuditLog{{ID: "a1", UserID: "7", ContentID: "12", Action: audit.ActionAccessDenied}}
		m.admin.On("AuditLogs", mock.Anything, mock.MatchedBy(func(q model.AuditQuery) bool {
			return q.From.Equal(query.From) && q.To.Equal(query.To) && q.UserID == "7" && q.ContentID == "12"
		}), admin).Return(logs, nil)

		w := do(r, http.MethodGet, "/api/v1/admin/audit?from=2026-10-01T00:00:00Z&to=2026-10-02T00:00:00Z&user_id=7&content_id=12", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			From string           `json:"from"`
			Logs []audit.AuditLog `json:"logs"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "2026-10-01T00:00:00Z", body.From)
		require.Len(t, body.Logs, 1)
		assert.Equal(t, "a1", body.Logs[0].ID)
		m.admin.AssertExpectations(t)
	})

	t.Run("ListAuditLogs_BadRange", func(t *testing.T) {
		r, m := setupRouter(admin)

		w := do(r, http.MethodGet, "/api/v1/admin/audit?from=yesterday", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.admin.AssertNotCalled(t, "AuditLogs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ListAuditLogs_Forbidden", func(t *testing.T) {
		r, m := setupRouter(author)
		m.admin.On("AuditLogs", mock.Anything, mock.Anything, author).Return(nil, gate_errors.ErrForbidden)

		w := do(r, http.MethodGet, "/api/v1/admin/audit", "", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
