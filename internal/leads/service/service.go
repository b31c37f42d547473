// Package service implements lead capture: validating and persisting
// submitted quote requests and handing the visitor off to WhatsApp.
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promopro_backend/internal/events"
	"promopro_backend/internal/leads/repository"
	"promopro_backend/internal/leads/transport"
	"promopro_backend/internal/whatsapp"
	"promopro_backend/platform/apperr"
	"promopro_backend/platform/logger"
	"promopro_backend/platform/phone"
	"promopro_backend/platform/sanitize"
)

const (
	msgIncompleteContact = "incomplete contact info"
	msgNoItems           = "a quote request needs at least one item"
	msgSinkUnavailable   = "lead storage unavailable"

	publicTokenBytes = 9
)

// SubmitInput is a quote request ready for capture. Items arrive already
// priced; this service freezes them as submitted.
type SubmitInput struct {
	SessionToken   uuid.UUID
	BuyerName      string
	BuyerCompany   string
	BuyerPhone     string
	BuyerEmail     string
	Items          []ItemInput
	EstimatedTotal decimal.Decimal
}

// ItemInput is one priced cart line to freeze on the lead.
type ItemInput struct {
	ProductID        uuid.UUID
	SKU              string
	Name             string
	ColorName        string
	Quantity         int
	TechniqueName    string
	LogoFormat       string
	UnitPrice        decimal.Decimal
	SetupFee         decimal.Decimal
	LineTotal        decimal.Decimal
	HasVirtualSample bool
}

// SubmitOutput identifies the stored lead.
type SubmitOutput struct {
	LeadID       uuid.UUID
	PublicToken  string
	WhatsAppLink string
}

// Service captures leads and serves them back by public token.
type Service struct {
	repo          repository.Repository
	bus           events.Bus
	advisorPhone  string
	log           *logger.Logger
	now           func() time.Time
	generateToken func() (string, error)
}

// New creates the lead service. advisorPhone is the sales advisor's
// WhatsApp number used for the post-submit deep link.
func New(repo repository.Repository, bus events.Bus, advisorPhone string, log *logger.Logger) *Service {
	return &Service{
		repo:          repo,
		bus:           bus,
		advisorPhone:  advisorPhone,
		log:           log,
		now:           time.Now,
		generateToken: newPublicToken,
	}
}

// Submit validates and persists a quote request. Contact validation runs
// before any storage call so an incomplete form never produces a partial
// lead. Storage failures map to an unavailable error; the session layer
// treats those as retryable.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (SubmitOutput, error) {
	buyerName := sanitize.Text(in.BuyerName)
	buyerCompany := sanitize.Text(in.BuyerCompany)
	buyerPhone := strings.TrimSpace(in.BuyerPhone)
	buyerEmail := strings.TrimSpace(strings.ToLower(in.BuyerEmail))

	if buyerName == "" || buyerCompany == "" || buyerPhone == "" || buyerEmail == "" {
		return SubmitOutput{}, apperr.Validation(msgIncompleteContact)
	}
	if len(in.Items) == 0 {
		return SubmitOutput{}, apperr.Validation(msgNoItems)
	}

	publicToken, err := s.generateToken()
	if err != nil {
		return SubmitOutput{}, fmt.Errorf("generate public token: %w", err)
	}

	lead := repository.Lead{
		ID:             uuid.New(),
		PublicToken:    publicToken,
		SessionToken:   in.SessionToken,
		BuyerName:      buyerName,
		BuyerCompany:   buyerCompany,
		BuyerPhone:     phone.NormalizeE164(buyerPhone),
		BuyerEmail:     buyerEmail,
		EstimatedTotal: in.EstimatedTotal,
		Status:         repository.StatusNew,
		CreatedAt:      s.now().UTC(),
	}

	items := make([]repository.LeadItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, repository.LeadItem{
			ID:               uuid.New(),
			LeadID:           lead.ID,
			ProductID:        it.ProductID,
			SKU:              it.SKU,
			Name:             sanitize.Text(it.Name),
			ColorName:        sanitize.Text(it.ColorName),
			Quantity:         it.Quantity,
			TechniqueName:    it.TechniqueName,
			LogoFormat:       it.LogoFormat,
			UnitPrice:        it.UnitPrice,
			SetupFee:         it.SetupFee,
			LineTotal:        it.LineTotal,
			HasVirtualSample: it.HasVirtualSample,
		})
	}

	if err := s.repo.Insert(ctx, lead, items); err != nil {
		s.log.DatabaseError("leads.insert", err)
		return SubmitOutput{}, apperr.Wrap(apperr.KindUnavailable, msgSinkUnavailable, err)
	}

	link := whatsapp.DeepLink(s.advisorPhone,
		whatsapp.LeadGreeting(lead.BuyerName, lead.BuyerCompany, lead.PublicToken, lead.EstimatedTotal))

	s.publishSubmitted(ctx, lead, items)
	s.log.LeadEvent("lead.captured", lead.ID.String(), len(items), lead.EstimatedTotal.StringFixed(2))

	return SubmitOutput{
		LeadID:       lead.ID,
		PublicToken:  lead.PublicToken,
		WhatsAppLink: link,
	}, nil
}

// GetByPublicToken returns the stored lead for the confirmation screen.
func (s *Service) GetByPublicToken(ctx context.Context, token string) (transport.LeadResponse, error) {
	lead, items, err := s.repo.GetByPublicToken(ctx, token)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead, items, s.advisorPhone), nil
}

// WhatsAppLink rebuilds the advisor deep link for a stored lead.
func (s *Service) WhatsAppLink(ctx context.Context, token string) (string, error) {
	lead, _, err := s.repo.GetByPublicToken(ctx, token)
	if err != nil {
		return "", err
	}
	return whatsapp.DeepLink(s.advisorPhone,
		whatsapp.LeadGreeting(lead.BuyerName, lead.BuyerCompany, lead.PublicToken, lead.EstimatedTotal)), nil
}

func (s *Service) publishSubmitted(ctx context.Context, lead repository.Lead, items []repository.LeadItem) {
	eventItems := make([]events.LeadSubmittedItem, 0, len(items))
	for _, it := range items {
		eventItems = append(eventItems, events.LeadSubmittedItem{
			SKU:      it.SKU,
			Name:     it.Name,
			Quantity: it.Quantity,
			Subtotal: it.LineTotal.StringFixed(2),
		})
	}
	s.bus.Publish(ctx, events.LeadSubmitted{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         lead.ID,
		PublicToken:    lead.PublicToken,
		BuyerName:      lead.BuyerName,
		BuyerCompany:   lead.BuyerCompany,
		BuyerPhone:     lead.BuyerPhone,
		BuyerEmail:     lead.BuyerEmail,
		Items:          eventItems,
		EstimatedTotal: lead.EstimatedTotal.StringFixed(2),
	})
}

func toLeadResponse(lead repository.Lead, items []repository.LeadItem, advisorPhone string) transport.LeadResponse {
	resp := transport.LeadResponse{
		PublicToken:    lead.PublicToken,
		BuyerName:      lead.BuyerName,
		BuyerCompany:   lead.BuyerCompany,
		EstimatedTotal: lead.EstimatedTotal.StringFixed(2),
		Status:         lead.Status,
		CreatedAt:      lead.CreatedAt,
		WhatsAppLink: whatsapp.DeepLink(advisorPhone,
			whatsapp.LeadGreeting(lead.BuyerName, lead.BuyerCompany, lead.PublicToken, lead.EstimatedTotal)),
		Items: make([]transport.LeadItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, transport.LeadItemResponse{
			SKU:              it.SKU,
			Name:             it.Name,
			ColorName:        it.ColorName,
			Quantity:         it.Quantity,
			TechniqueName:    it.TechniqueName,
			LogoFormat:       it.LogoFormat,
			UnitPrice:        it.UnitPrice.StringFixed(2),
			SetupFee:         it.SetupFee.StringFixed(2),
			LineTotal:        it.LineTotal.StringFixed(2),
			HasVirtualSample: it.HasVirtualSample,
		})
	}
	return resp
}

func newPublicToken() (string, error) {
	b := make([]byte, publicTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
