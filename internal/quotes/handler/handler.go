package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"promopro_backend/internal/quotes/service"
	"promopro_backend/internal/quotes/transport"
	"promopro_backend/platform/httpkit"
	"promopro_backend/platform/logger"
	"promopro_backend/platform/validator"
)

// maxArtworkBytes caps virtual-sample uploads at 8 MiB.
const maxArtworkBytes = 8 << 20

const (
	msgInvalidToken   = "invalid session token"
	msgInvalidBody    = "invalid request body"
	msgMissingArtwork = "artwork file is required"
)

// Handler handles HTTP requests for the storefront quote flow.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new quotes handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// StartSession opens a new storefront session.
// POST /api/v1/sessions
func (h *Handler) StartSession(c *gin.Context) {
	result, err := h.svc.StartSession(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetSession returns the session snapshot.
// GET /api/v1/sessions/:token
func (h *Handler) GetSession(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	result, err := h.svc.GetSession(c.Request.Context(), token)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Act applies one navigation action.
// POST /api/v1/sessions/:token/actions
func (h *Handler) Act(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	var req transport.ActionRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.Act(c.Request.Context(), token, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Preview prices a configuration without committing it.
// POST /api/v1/sessions/:token/preview
func (h *Handler) Preview(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	var req transport.ItemRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.Preview(c.Request.Context(), token, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddItem commits a configured product to the cart.
// POST /api/v1/sessions/:token/items
func (h *Handler) AddItem(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	var req transport.ItemRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.AddItem(c.Request.Context(), token, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// RemoveItem deletes a cart line.
// DELETE /api/v1/sessions/:token/items/:cartId
func (h *Handler) RemoveItem(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	result, err := h.svc.RemoveItem(c.Request.Context(), token, c.Param("cartId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UploadArtwork stores a virtual-sample artwork file for the open product.
// POST /api/v1/sessions/:token/artwork
func (h *Handler) UploadArtwork(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxArtworkBytes)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingArtwork, nil)
		return
	}
	defer file.Close()

	result, err := h.svc.AttachArtwork(c.Request.Context(), token,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Submit sends the quote request as a sales lead.
// POST /api/v1/sessions/:token/submit
func (h *Handler) Submit(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	var req transport.BuyerRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.Submit(c.Request.Context(), token, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// bind decodes and validates a JSON request body.
func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return false
	}
	return true
}

// token parses the session token and stores it on the request context so
// every log line for the request carries it.
func (h *Handler) token(c *gin.Context) (uuid.UUID, bool) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidToken, nil)
		return uuid.Nil, false
	}
	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), logger.SessionTokenKey, token.String()))
	return token, true
}
