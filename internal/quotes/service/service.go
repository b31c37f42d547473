package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogrepo "promopro_backend/internal/catalog/repository"
	"promopro_backend/internal/quotes/domain"
	"promopro_backend/internal/quotes/session"
	"promopro_backend/internal/quotes/transport"
	"promopro_backend/platform/apperr"
	"promopro_backend/platform/logger"
)

// CatalogReader is the slice of the catalog the quotes flow needs.
// The catalog repository satisfies it directly.
type CatalogReader interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (catalogrepo.Product, error)
	ListActiveTechniques(ctx context.Context) ([]catalogrepo.PrintTechnique, error)
}

// Buyer is the contact information captured on the quote form.
type Buyer struct {
	Name    string
	Company string
	Phone   string
	Email   string
}

// LeadRequest is a fully assembled quote request handed to the lead sink.
type LeadRequest struct {
	SessionToken   uuid.UUID
	Buyer          Buyer
	Items          []domain.LineItem
	EstimatedTotal decimal.Decimal
}

// LeadResult identifies the stored lead.
type LeadResult struct {
	LeadID       uuid.UUID
	PublicToken  string
	WhatsAppLink string
}

// LeadSubmitter persists a quote request as a sales lead. Validation
// failures come back as apperr.Validation; sink outages as
// apperr.Unavailable so the session can distinguish retry semantics.
type LeadSubmitter interface {
	Submit(ctx context.Context, req LeadRequest) (LeadResult, error)
}

// ArtworkStorage stores uploaded virtual-sample artwork. Uploads return
// the object key; superseded uploads are removed through the same port.
type ArtworkStorage interface {
	UploadArtworkSample(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
	ArtworkSampleURL(ctx context.Context, fileKey string) (string, error)
	RemoveArtworkSample(ctx context.Context, fileKey string) error
}

const (
	msgInvalidAction    = "unknown action"
	msgNoProductOpen    = "no product is open"
	msgInvalidCartID    = "invalid cart item id"
	msgInvalidLogoFmt   = "unknown logo format"
	msgArtworkBeforeAdd = "open a product before uploading artwork"
	msgBelowMinimumQty  = "quantity is below the minimum order quantity"
)

// Service orchestrates the storefront session: navigation, pricing,
// cart edits, artwork uploads, and the lead submission handshake.
// All session mutations are load-mutate-save against the session store;
// a session is exclusively owned by its visitor so no cross-request
// locking is needed.
type Service struct {
	store   session.Store
	catalog CatalogReader
	engine  *Engine
	leads   LeadSubmitter
	artwork ArtworkStorage
	log     *logger.Logger
}

func NewService(store session.Store, catalog CatalogReader, engine *Engine, leads LeadSubmitter, artwork ArtworkStorage, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		engine:  engine,
		leads:   leads,
		artwork: artwork,
		log:     log,
	}
}

// StartSession creates a fresh session on the landing screen.
func (s *Service) StartSession(ctx context.Context) (transport.SessionResponse, error) {
	sess := domain.NewSession()
	if err := s.store.Save(ctx, sess); err != nil {
		return transport.SessionResponse{}, err
	}
	return s.toResponse(sess), nil
}

// GetSession returns the current session snapshot.
func (s *Service) GetSession(ctx context.Context, token uuid.UUID) (transport.SessionResponse, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	return s.toResponse(sess), nil
}

// Act applies one navigation action to the session state machine.
func (s *Service) Act(ctx context.Context, token uuid.UUID, req transport.ActionRequest) (transport.SessionResponse, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	var next domain.Session
	switch req.Action {
	case transport.ActionGoLanding:
		next = sess.GoLanding()
	case transport.ActionExplore, transport.ActionBack:
		next = sess.GoCatalog()
	case transport.ActionOpenProduct:
		next, err = s.openProduct(ctx, sess, req.ProductID)
	case transport.ActionViewCart:
		next = sess.ViewCart()
	case transport.ActionContinue:
		next, err = sess.ContinueToContact()
	case transport.ActionReview:
		next, err = sess.BackToReview()
	default:
		return transport.SessionResponse{}, apperr.BadRequest(msgInvalidAction)
	}
	if err != nil {
		return transport.SessionResponse{}, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return transport.SessionResponse{}, err
	}
	return s.toResponse(next), nil
}

func (s *Service) openProduct(ctx context.Context, sess domain.Session, rawID string) (domain.Session, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return sess, apperr.BadRequest("invalid product id")
	}
	exists := true
	if _, err := s.catalog.GetProductByID(ctx, id); err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			return sess, err
		}
		exists = false
	}
	return sess.OpenProduct(id, exists)
}

// Preview prices an in-progress configuration without touching the cart.
// Quantities below the order minimum are clamped up, matching the
// configurator's stepper behavior.
func (s *Service) Preview(ctx context.Context, token uuid.UUID, req transport.ItemRequest) (transport.PreviewResponse, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return transport.PreviewResponse{}, err
	}
	item, err := s.priceConfiguration(ctx, sess, req, true)
	if err != nil {
		return transport.PreviewResponse{}, err
	}
	return transport.PreviewResponse{
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice.StringFixed(2),
		SetupFee:  item.SetupFee.StringFixed(2),
		LineTotal: item.LineTotal.StringFixed(2),
	}, nil
}

// AddItem commits the configured product to the cart and moves the session
// to cart review. A pending artwork upload is consumed into the line's
// virtual-sample flag.
func (s *Service) AddItem(ctx context.Context, token uuid.UUID, req transport.ItemRequest) (transport.AddItemResponse, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return transport.AddItemResponse{}, err
	}
	item, err := s.priceConfiguration(ctx, sess, req, false)
	if err != nil {
		return transport.AddItemResponse{}, err
	}
	item.HasVirtualSample = sess.PendingArtworkKey != ""

	next, err := sess.ItemAdded()
	if err != nil {
		return transport.AddItemResponse{}, err
	}
	cartID := next.Cart.Add(item)

	if err := s.store.Save(ctx, next); err != nil {
		return transport.AddItemResponse{}, err
	}
	return transport.AddItemResponse{
		CartID:  cartID.String(),
		Session: s.toResponse(next),
	}, nil
}

// RemoveItem deletes a cart line. Unknown ids are a silent no-op.
func (s *Service) RemoveItem(ctx context.Context, token uuid.UUID, rawCartID string) (transport.SessionResponse, error) {
	cartID, err := uuid.Parse(rawCartID)
	if err != nil {
		return transport.SessionResponse{}, apperr.BadRequest(msgInvalidCartID)
	}
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	sess.Cart.Remove(cartID)
	if err := s.store.Save(ctx, sess); err != nil {
		return transport.SessionResponse{}, err
	}
	return s.toResponse(sess), nil
}

// AttachArtwork stores an uploaded artwork file and remembers it on the
// session so the next AddItem is flagged as having a virtual sample.
// Re-uploading replaces the pending object; the superseded one is removed
// best-effort since an orphaned object only wastes storage.
func (s *Service) AttachArtwork(ctx context.Context, token uuid.UUID, filename, contentType string, size int64, r io.Reader) (transport.ArtworkResponse, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return transport.ArtworkResponse{}, err
	}
	if sess.State != domain.StateProductDetail {
		return transport.ArtworkResponse{}, apperr.Conflict(msgArtworkBeforeAdd)
	}
	key, err := s.artwork.UploadArtworkSample(ctx, filename, contentType, size, r)
	if err != nil {
		return transport.ArtworkResponse{}, err
	}
	if sess.PendingArtworkKey != "" && sess.PendingArtworkKey != key {
		if removeErr := s.artwork.RemoveArtworkSample(ctx, sess.PendingArtworkKey); removeErr != nil {
			s.log.Warn("superseded artwork not removed", "file_key", sess.PendingArtworkKey, "error", removeErr)
		}
	}
	sess.PendingArtworkKey = key
	if err := s.store.Save(ctx, sess); err != nil {
		return transport.ArtworkResponse{}, err
	}

	previewURL, err := s.artwork.ArtworkSampleURL(ctx, key)
	if err != nil {
		s.log.Warn("artwork preview url unavailable", "file_key", key, "error", err)
		previewURL = ""
	}
	return transport.ArtworkResponse{FileKey: key, PreviewURL: previewURL}, nil
}

// Submit drives the at-most-once lead submission handshake. The sending
// marker is persisted before the sink call so a concurrent or repeated
// submit is rejected even if this call is still in flight.
func (s *Service) Submit(ctx context.Context, token uuid.UUID, req transport.BuyerRequest) (transport.SubmitResponse, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	sending, err := sess.BeginSubmit()
	if err != nil {
		return transport.SubmitResponse{}, err
	}
	if err := s.store.Save(ctx, sending); err != nil {
		return transport.SubmitResponse{}, err
	}

	result, err := s.leads.Submit(ctx, LeadRequest{
		SessionToken: token,
		Buyer: Buyer{
			Name:    req.Name,
			Company: req.Company,
			Phone:   req.Phone,
			Email:   req.Email,
		},
		Items:          sending.Cart.Snapshot(),
		EstimatedTotal: sending.Cart.GrandTotal(),
	})
	if err != nil {
		validation := apperr.Is(err, apperr.KindValidation)
		failed := sending.FailSubmit(err.Error(), validation)
		if saveErr := s.store.Save(ctx, failed); saveErr != nil {
			s.log.DatabaseError("session.save", saveErr)
		}
		return transport.SubmitResponse{}, err
	}

	done := sending.CompleteSubmit(result.PublicToken, result.WhatsAppLink)
	if err := s.store.Save(ctx, done); err != nil {
		return transport.SubmitResponse{}, err
	}

	s.log.WithContext(ctx).LeadEvent("lead.submitted", result.LeadID.String(), done.Cart.Size(), done.Cart.GrandTotal().StringFixed(2))
	return transport.SubmitResponse{
		LeadToken:    result.PublicToken,
		WhatsAppLink: result.WhatsAppLink,
		Session:      s.toResponse(done),
	}, nil
}

// priceConfiguration resolves the open product and technique table and runs
// the pricing engine. Preview clamps low quantities to mirror the
// configurator's stepper; committing rejects them so a cart line never
// silently carries a different quantity than the visitor asked for.
func (s *Service) priceConfiguration(ctx context.Context, sess domain.Session, req transport.ItemRequest, clamp bool) (domain.LineItem, error) {
	if sess.State != domain.StateProductDetail || sess.SelectedProductID == nil {
		return domain.LineItem{}, apperr.Conflict(msgNoProductOpen)
	}
	if !clamp && req.Quantity < s.engine.MinOrderQty() {
		return domain.LineItem{}, apperr.Validation(msgBelowMinimumQty)
	}
	format, ok := domain.ParseLogoFormat(req.LogoFormat)
	if !ok {
		return domain.LineItem{}, apperr.Validation(msgInvalidLogoFmt)
	}

	product, err := s.catalog.GetProductByID(ctx, *sess.SelectedProductID)
	if err != nil {
		return domain.LineItem{}, err
	}
	techniques, err := s.catalog.ListActiveTechniques(ctx)
	if err != nil {
		return domain.LineItem{}, err
	}

	qty := req.Quantity
	if clamp {
		qty = s.engine.ClampQuantity(qty)
	}
	item, err := s.engine.ComputeLineItem(product, techniques, Configuration{
		Quantity:      qty,
		TechniqueName: req.TechniqueName,
		LogoFormat:    format,
		ColorName:     req.ColorName,
	})
	if err != nil {
		s.log.WithContext(ctx).PricingRejected(err.Error(), product.ID.String(), qty)
		return domain.LineItem{}, err
	}
	return item, nil
}

func (s *Service) toResponse(sess domain.Session) transport.SessionResponse {
	items := sess.Cart.Snapshot()
	resp := transport.SessionResponse{
		Token: sess.Token.String(),
		State: string(sess.State),
		Cart: transport.CartResponse{
			Items:      make([]transport.LineItemResponse, 0, len(items)),
			GrandTotal: sess.Cart.GrandTotal().StringFixed(2),
		},
		Submission: transport.SubmissionResponse{
			Status:       string(sess.Submission.Status),
			ErrorReason:  sess.Submission.ErrorReason,
			LeadToken:    sess.Submission.LeadToken,
			WhatsAppLink: sess.Submission.WhatsAppLink,
		},
		MinOrderQty: s.engine.MinOrderQty(),
	}
	if sess.SelectedProductID != nil {
		resp.SelectedProductID = sess.SelectedProductID.String()
	}
	for _, item := range items {
		resp.Cart.Items = append(resp.Cart.Items, transport.LineItemResponse{
			CartID:           item.CartID.String(),
			ProductID:        item.ProductID.String(),
			SKU:              item.SKU,
			Name:             item.Name,
			ColorName:        item.ColorName,
			Quantity:         item.Quantity,
			TechniqueName:    item.TechniqueName,
			LogoFormat:       string(item.LogoFormat),
			UnitPrice:        item.UnitPrice.StringFixed(2),
			SetupFee:         item.SetupFee.StringFixed(2),
			LineTotal:        item.LineTotal.StringFixed(2),
			HasVirtualSample: item.HasVirtualSample,
		})
	}
	return resp
}
