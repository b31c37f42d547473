// Package leads provides the lead capture bounded context module.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"promopro_backend/internal/events"
	apphttp "promopro_backend/internal/http"
	"promopro_backend/internal/leads/handler"
	"promopro_backend/internal/leads/repository"
	"promopro_backend/internal/leads/service"
	"promopro_backend/platform/config"
	"promopro_backend/platform/logger"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, wa config.WhatsAppConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, wa.GetAdvisorWhatsApp(), log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/leads")
	group.GET("/:publicToken", m.handler.GetByPublicToken)
	group.GET("/:publicToken/whatsapp-qr", m.handler.WhatsAppQR)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
