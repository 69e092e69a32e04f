// service/services.go
package service

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/vapvarun/wc-subscription-protection/audit"
	"github.com/vapvarun/wc-subscription-protection/dao"
	"github.com/vapvarun/wc-subscription-protection/pdp/engine"
	"github.com/vapvarun/wc-subscription-protection/render"
	"github.com/vapvarun/wc-subscription-protection/util"
)

type Services struct {
	Content    IContentService
	Protection IProtectionService
	Shortcode  IShortcodeService
	Block      IBlockService
	Widget     IWidgetService
	Product    IProductService
	Admin      IAdminService
}

// Settings are the configuration values the services read.
type Settings struct {
	DefaultMessage string
	ContentTypes   []string
	ShortcodeTags  []string
	BlockName      string
	Links          render.Links
}

// CommerceStore is what the commerce extension provides: the subscription
// lookup and the product catalog.
type CommerceStore interface {
	engine.SubscriptionChecker
	ProductCatalog
}

func InitializeServices(
	driver neo4j.DriverWithContext,
	commerceStore CommerceStore,
	status util.DependencyStatus,
	settings Settings,
	auditService audit.Service,
	nonces NonceService,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	contentDAO := dao.NewContentDAO(driver, auditService)
	widgetDAO := dao.NewWidgetDAO(driver)

	renderer := render.NewRenderer(settings.Links)
	products := NewProductService(commerceStore, cacheService)
	evaluator := engine.NewAccessEvaluator(commerceStore, settings.DefaultMessage)
	gatekeeper := NewGatekeeper(evaluator, products, renderer, status, eventBus)

	services := &Services{
		Content:    NewContentService(contentDAO, gatekeeper, validationUtil, auditService, eventBus),
		Protection: NewProtectionService(contentDAO, products, nonces, renderer, validationUtil, notificationSvc, eventBus, settings.ContentTypes),
		Shortcode:  NewShortcodeService(gatekeeper, settings.ShortcodeTags),
		Block:      NewBlockService(settings.BlockName, products, gatekeeper),
		Widget:     NewWidgetService(widgetDAO, contentDAO, products, nonces, renderer, validationUtil),
		Product:    products,
		Admin:      NewAdminService(status, auditService),
	}

	return services, nil
}
