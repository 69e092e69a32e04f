// service/shortcode_service.go
package service

import (
	"context"
	"strings"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/shortcode"
)

// Attributes read from the protection tag.
const (
	AttrRequiredProducts = "required_products"
	AttrCustomMessage    = "custom_message"
)

// IShortcodeService expands inline protection tags and builds them for the
// classic editor.
type IShortcodeService interface {
	Process(ctx context.Context, req model.ShortcodeRenderRequest, requester model.Requester) (string, error)
	Build(req model.ShortcodeRequest) (string, error)
	Tags() []string
}

type ShortcodeService struct {
	processor  *shortcode.Processor
	gatekeeper *Gatekeeper
	buildTag   string
}

var _ IShortcodeService = &ShortcodeService{}

type renderScopeKey struct{}

// renderScope carries the per-request inputs the tag handler needs.
type renderScope struct {
	requester model.Requester
	permalink string
}

// NewShortcodeService registers the protection handler under every name in
// tags. The first name is the one Build emits.
func NewShortcodeService(gatekeeper *Gatekeeper, tags []string) *ShortcodeService {
	if len(tags) == 0 {
		tags = []string{"protect"}
	}
	s := &ShortcodeService{
		processor:  shortcode.NewProcessor(),
		gatekeeper: gatekeeper,
		buildTag:   tags[0],
	}
	for _, tag := range tags {
		s.processor.Register(tag, s.handleProtect)
	}
	return s
}

func (s *ShortcodeService) Tags() []string {
	return s.processor.Tags()
}

// Process expands every protection tag in req.Content for requester.
func (s *ShortcodeService) Process(ctx context.Context, req model.ShortcodeRenderRequest, requester model.Requester) (string, error) {
	if !s.processor.HasTags(req.Content) {
		return req.Content, nil
	}
	ctx = context.WithValue(ctx, renderScopeKey{}, renderScope{requester: requester, permalink: req.Permalink})
	return s.processor.Process(ctx, req.Content)
}

func (s *ShortcodeService) handleProtect(ctx context.Context, tag shortcode.Tag) (string, error) {
	scope, _ := ctx.Value(renderScopeKey{}).(renderScope)

	// A tag without products restricts nothing, but tags inside it still do.
	products := model.ParseProductIDs(tag.Attr(AttrRequiredProducts))
	if len(products) == 0 {
		return s.processor.Process(ctx, tag.Inner)
	}

	cfg := model.ProtectionConfig{
		Protected:        true,
		RequiredProducts: products,
		CustomMessage:    tag.Attr(AttrCustomMessage),
	}
	decision, notice, err := s.gatekeeper.Guard(ctx, cfg, scope.requester, Target{Permalink: scope.permalink})
	if err != nil {
		return "", err
	}
	if !decision.Allowed() {
		return notice, nil
	}
	return s.processor.Process(ctx, tag.Inner)
}

// Build returns the tag the classic editor inserts around req.Content.
func (s *ShortcodeService) Build(req model.ShortcodeRequest) (string, error) {
	products := model.NormalizeProductIDs(req.RequiredProducts)
	if len(products) == 0 {
		return "", gate_errors.ErrNoProductsSelected
	}
	if strings.TrimSpace(req.Content) == "" {
		return "", gate_errors.ErrNoContentToProtect
	}

	var b strings.Builder
	b.WriteString("[" + s.buildTag)
	b.WriteString(` ` + AttrRequiredProducts + `="` + model.JoinProductIDs(products) + `"`)
	if message := strings.TrimSpace(req.CustomMessage); message != "" {
		b.WriteString(` ` + AttrCustomMessage + `="` + strings.ReplaceAll(message, `"`, "&quot;") + `"`)
	}
	b.WriteString("]" + req.Content + "[/" + s.buildTag + "]")
	return b.String(), nil
}
