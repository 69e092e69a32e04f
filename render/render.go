// render/render.go
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/vapvarun/wc-subscription-protection/model"
	pdp_model "github.com/vapvarun/wc-subscription-protection/pdp/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Links holds the host URLs the rendered markup points at.
type Links struct {
	LoginURL      string
	ShopURL       string
	NewProductURL string
	ToggleAction  string
}

// Renderer produces the HTML fragments the host embeds: the protection
// notice, the settings panel and the sidebar widget.
type Renderer struct {
	links Links
}

func NewRenderer(links Links) *Renderer {
	return &Renderer{links: links}
}

type noticeData struct {
	Message  string
	Products []model.Product
	LoginURL string
	ShopURL  string
}

// Notice renders the substitute shown on deny. products are the resolved
// required products; unknown ones have already been dropped. permalink is
// where the login link sends the visitor back to.
func (r *Renderer) Notice(decision *pdp_model.AccessDecision, products []model.Product, permalink string) (string, error) {
	data := noticeData{
		Message:  decision.Message,
		Products: products,
		ShopURL:  r.links.ShopURL,
	}
	if decision.CallToAction == pdp_model.CallToActionLogin {
		data.LoginURL = r.LoginURL(permalink)
	}
	return execute("notice.html", data)
}

// LoginURL builds the login link carrying the redirect back to permalink.
func (r *Renderer) LoginURL(permalink string) string {
	if permalink == "" {
		return r.links.LoginURL
	}
	sep := "?"
	if strings.Contains(r.links.LoginURL, "?") {
		sep = "&"
	}
	return r.links.LoginURL + sep + "redirect_to=" + url.QueryEscape(permalink)
}

// PanelProduct is one product checkbox in the settings panel.
type PanelProduct struct {
	ID      model.ProductID
	Name    string
	Checked bool
}

type panelData struct {
	Nonce         string
	Protected     bool
	Products      []PanelProduct
	CustomMessage string
	NewProductURL string
}

// Panel renders the per-item settings panel with the current values.
func (r *Renderer) Panel(cfg model.ProtectionConfig, catalog []model.Product, nonce string) (string, error) {
	products := make([]PanelProduct, len(catalog))
	for i, p := range catalog {
		products[i] = PanelProduct{ID: p.ID, Name: p.Name, Checked: cfg.Requires(p.ID)}
	}
	return execute("panel.html", panelData{
		Nonce:         nonce,
		Protected:     cfg.Protected,
		Products:      products,
		CustomMessage: cfg.CustomMessage,
		NewProductURL: r.links.NewProductURL,
	})
}

// WidgetView is everything the widget shows for one content item.
type WidgetView struct {
	Title         string
	ContentID     string
	ShowStatus    bool
	Protected     bool
	RequiredNames []string
	ShowToggle    bool
	Nonce         string
}

type widgetData struct {
	Title         string
	ContentID     string
	ShowStatus    bool
	Protected     bool
	RequiredNames string
	ShowToggle    bool
	Nonce         string
	ToggleAction  string
}

func (r *Renderer) Widget(view WidgetView) (string, error) {
	return execute("widget.html", widgetData{
		Title:         view.Title,
		ContentID:     view.ContentID,
		ShowStatus:    view.ShowStatus,
		Protected:     view.Protected,
		RequiredNames: strings.Join(view.RequiredNames, ", "),
		ShowToggle:    view.ShowToggle,
		Nonce:         view.Nonce,
		ToggleAction:  r.links.ToggleAction,
	})
}

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
