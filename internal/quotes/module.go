// Package quotes provides the storefront quote flow bounded context:
// sessions, the quote cart, pricing, and lead submission.
package quotes

import (
	apphttp "promopro_backend/internal/http"
	"promopro_backend/internal/quotes/handler"
	"promopro_backend/internal/quotes/service"
	"promopro_backend/internal/quotes/session"
	"promopro_backend/platform/config"
	"promopro_backend/platform/logger"
	"promopro_backend/platform/validator"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the quotes module. The session store,
// catalog reader, lead sink, and artwork storage are shared infrastructure
// owned by the composition root.
func NewModule(store session.Store, catalog service.CatalogReader, leads service.LeadSubmitter, artwork service.ArtworkStorage, pricing config.PricingConfig, val *validator.Validator, log *logger.Logger) *Module {
	engine := service.NewEngine(pricing)
	svc := service.NewService(store, catalog, engine, leads, artwork, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the session routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/sessions")
	group.POST("", m.handler.StartSession)
	group.GET("/:token", m.handler.GetSession)
	group.POST("/:token/actions", m.handler.Act)
	group.POST("/:token/preview", m.handler.Preview)
	group.POST("/:token/items", m.handler.AddItem)
	group.DELETE("/:token/items/:cartId", m.handler.RemoveItem)
	group.POST("/:token/artwork", m.handler.UploadArtwork)
	group.POST("/:token/submit", m.handler.Submit)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
