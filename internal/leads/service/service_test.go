package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promopro_backend/internal/events"
	"promopro_backend/internal/leads/repository"
	"promopro_backend/platform/apperr"
	"promopro_backend/platform/logger"
)

type fakeRepo struct {
	inserts   int
	insertErr error
	lastLead  repository.Lead
	lastItems []repository.LeadItem
}

func (f *fakeRepo) Insert(_ context.Context, lead repository.Lead, items []repository.LeadItem) error {
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.lastLead = lead
	f.lastItems = items
	return nil
}

func (f *fakeRepo) GetByPublicToken(_ context.Context, token string) (repository.Lead, []repository.LeadItem, error) {
	if f.lastLead.PublicToken != token {
		return repository.Lead{}, nil, apperr.NotFound("lead not found")
	}
	return f.lastLead, f.lastItems, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func newTestService() (*Service, *fakeRepo, *recordingBus) {
	repo := &fakeRepo{}
	bus := &recordingBus{}
	svc := New(repo, bus, "5215512345678", logger.New("development"))
	return svc, repo, bus
}

func submitInput() SubmitInput {
	return SubmitInput{
		SessionToken: uuid.New(),
		BuyerName:    "Ana Garcia",
		BuyerCompany: "Grupo Delta",
		BuyerPhone:   "55 1234 5678",
		BuyerEmail:   "Ana@GrupoDelta.mx",
		Items: []ItemInput{
			{
				ProductID:  uuid.New(),
				SKU:        "TH-400",
				Name:       "Termo Matterhorn 400ml",
				Quantity:   50,
				LogoFormat: "one_color",
				UnitPrice:  decimal.NewFromFloat(143.50),
				SetupFee:   decimal.NewFromInt(350),
				LineTotal:  decimal.NewFromFloat(7525),
			},
		},
		EstimatedTotal: decimal.NewFromFloat(7525),
	}
}

func TestSubmitStoresLeadAndBuildsDeepLink(t *testing.T) {
	svc, repo, _ := newTestService()

	out, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if repo.inserts != 1 {
		t.Fatalf("expected 1 insert, got %d", repo.inserts)
	}
	if out.PublicToken == "" {
		t.Fatal("expected a public token")
	}
	if !strings.HasPrefix(out.WhatsAppLink, "https://wa.me/5215512345678?text=") {
		t.Fatalf("unexpected whatsapp link: %s", out.WhatsAppLink)
	}

	if repo.lastLead.Status != repository.StatusNew {
		t.Fatalf("expected status new, got %s", repo.lastLead.Status)
	}
	if repo.lastLead.BuyerEmail != "ana@grupodelta.mx" {
		t.Fatalf("expected lowercased email, got %s", repo.lastLead.BuyerEmail)
	}
	if !strings.HasPrefix(repo.lastLead.BuyerPhone, "+52") {
		t.Fatalf("expected E.164 phone, got %s", repo.lastLead.BuyerPhone)
	}
	if len(repo.lastItems) != 1 || repo.lastItems[0].LeadID != repo.lastLead.ID {
		t.Fatal("expected items linked to the lead")
	}
}

func TestStoredLeadUnaffectedByInputMutation(t *testing.T) {
	svc, repo, _ := newTestService()

	in := submitInput()
	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("submit: %v", err)
	}

	in.Items[0].Quantity = 999
	in.Items[0].LineTotal = decimal.NewFromInt(1)
	in.EstimatedTotal = decimal.NewFromInt(1)

	if repo.lastItems[0].Quantity != 50 {
		t.Fatalf("expected stored quantity 50, got %d", repo.lastItems[0].Quantity)
	}
	if got := repo.lastItems[0].LineTotal.StringFixed(2); got != "7525.00" {
		t.Fatalf("expected stored line total 7525.00, got %s", got)
	}
	if got := repo.lastLead.EstimatedTotal.StringFixed(2); got != "7525.00" {
		t.Fatalf("expected stored estimated total 7525.00, got %s", got)
	}
}

func TestSubmitRejectsIncompleteContact(t *testing.T) {
	svc, repo, _ := newTestService()

	cases := []func(*SubmitInput){
		func(in *SubmitInput) { in.BuyerName = "  " },
		func(in *SubmitInput) { in.BuyerCompany = "" },
		func(in *SubmitInput) { in.BuyerPhone = "" },
		func(in *SubmitInput) { in.BuyerEmail = " " },
	}
	for i, mutate := range cases {
		in := submitInput()
		mutate(&in)
		if _, err := svc.Submit(context.Background(), in); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if repo.inserts != 0 {
		t.Fatalf("expected no insert attempts, got %d", repo.inserts)
	}
}

func TestSubmitRejectsEmptyItems(t *testing.T) {
	svc, repo, _ := newTestService()

	in := submitInput()
	in.Items = nil
	if _, err := svc.Submit(context.Background(), in); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.inserts != 0 {
		t.Fatalf("expected no insert attempts, got %d", repo.inserts)
	}
}

func TestSubmitSanitizesBuyerFields(t *testing.T) {
	svc, repo, _ := newTestService()

	in := submitInput()
	in.BuyerName = "  Ana <script>alert(1)</script> Garcia  "
	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if strings.Contains(repo.lastLead.BuyerName, "<") {
		t.Fatalf("expected markup stripped, got %q", repo.lastLead.BuyerName)
	}
}

func TestSubmitMapsStorageFailureToUnavailable(t *testing.T) {
	svc, repo, bus := newTestService()
	repo.insertErr = errors.New("connection refused")

	_, err := svc.Submit(context.Background(), submitInput())
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if len(bus.events) != 0 {
		t.Fatalf("expected no events on failure, got %d", len(bus.events))
	}
}

func TestSubmitPublishesLeadSubmitted(t *testing.T) {
	svc, _, bus := newTestService()

	out, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	event, ok := bus.events[0].(events.LeadSubmitted)
	if !ok {
		t.Fatalf("expected LeadSubmitted, got %T", bus.events[0])
	}
	if event.PublicToken != out.PublicToken {
		t.Fatal("expected the event to reference the stored lead")
	}
	if event.EstimatedTotal != "7525.00" {
		t.Fatalf("expected total 7525.00, got %s", event.EstimatedTotal)
	}
	if len(event.Items) != 1 || event.Items[0].SKU != "TH-400" {
		t.Fatalf("expected frozen items on the event, got %+v", event.Items)
	}
}

func TestPublicTokensAreUnique(t *testing.T) {
	svc, _, _ := newTestService()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		out, err := svc.Submit(context.Background(), submitInput())
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if seen[out.PublicToken] {
			t.Fatalf("duplicate public token %s", out.PublicToken)
		}
		seen[out.PublicToken] = true
	}
}

func TestGetByPublicToken(t *testing.T) {
	svc, _, _ := newTestService()

	out, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	lead, err := svc.GetByPublicToken(context.Background(), out.PublicToken)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if lead.BuyerName != "Ana Garcia" {
		t.Fatalf("expected buyer name, got %s", lead.BuyerName)
	}
	if lead.WhatsAppLink != out.WhatsAppLink {
		t.Fatal("expected the same deep link on the stored lead")
	}

	if _, err := svc.GetByPublicToken(context.Background(), "missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
