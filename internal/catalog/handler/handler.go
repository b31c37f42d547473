package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"promopro_backend/internal/catalog/service"
	"promopro_backend/platform/httpkit"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
}

const msgInvalidProductID = "invalid product id"

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListProducts retrieves the active product catalog.
// GET /api/v1/catalog/products
func (h *Handler) ListProducts(c *gin.Context) {
	result, err := h.svc.ListActiveProducts(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetProductByID retrieves a product for the detail view.
// GET /api/v1/catalog/products/:id
func (h *Handler) GetProductByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProductID, nil)
		return
	}

	result, err := h.svc.GetProduct(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListTechniques retrieves the decoration techniques with tier tables.
// GET /api/v1/catalog/techniques
func (h *Handler) ListTechniques(c *gin.Context) {
	result, err := h.svc.ListActiveTechniques(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
