// Package catalog provides the catalog bounded context module.
package catalog

import (
	"promopro_backend/internal/catalog/handler"
	"promopro_backend/internal/catalog/repository"
	"promopro_backend/internal/catalog/service"
	apphttp "promopro_backend/internal/http"
	"promopro_backend/platform/config"
	"promopro_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, pricing config.PricingConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, pricing, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/catalog")
	group.GET("/products", m.handler.ListProducts)
	group.GET("/products/:id", m.handler.GetProductByID)
	group.GET("/techniques", m.handler.ListTechniques)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
