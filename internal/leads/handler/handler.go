package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"promopro_backend/internal/leads/service"
	"promopro_backend/platform/httpkit"
)

const qrSizePx = 256

// Handler handles HTTP requests for captured leads.
type Handler struct {
	svc *service.Service
}

// New creates a new leads handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// GetByPublicToken returns the lead confirmation view.
// GET /api/v1/leads/:publicToken
func (h *Handler) GetByPublicToken(c *gin.Context) {
	result, err := h.svc.GetByPublicToken(c.Request.Context(), c.Param("publicToken"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// WhatsAppQR renders the advisor deep link as a QR code so desktop
// visitors can continue the conversation on their phone.
// GET /api/v1/leads/:publicToken/whatsapp-qr
func (h *Handler) WhatsAppQR(c *gin.Context) {
	link, err := h.svc.WhatsAppLink(c.Request.Context(), c.Param("publicToken"))
	if httpkit.HandleError(c, err) {
		return
	}

	png, err := qrcode.Encode(link, qrcode.Medium, qrSizePx)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
