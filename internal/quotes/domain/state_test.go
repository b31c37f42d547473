package domain

import (
	"testing"

	"github.com/google/uuid"

	"promopro_backend/platform/apperr"
)

func TestNewSessionStartsOnLanding(t *testing.T) {
	s := NewSession()

	if s.Token == uuid.Nil {
		t.Fatal("expected a session token")
	}
	if s.State != StateLanding {
		t.Fatalf("expected landing state, got %s", s.State)
	}
	if s.Submission.Status != SubmissionIdle {
		t.Fatalf("expected idle submission, got %s", s.Submission.Status)
	}
}

func TestOpenProduct(t *testing.T) {
	s := NewSession().GoCatalog()
	id := uuid.New()

	s, err := s.OpenProduct(id, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State != StateProductDetail {
		t.Fatalf("expected product detail, got %s", s.State)
	}
	if s.SelectedProductID == nil || *s.SelectedProductID != id {
		t.Fatal("expected the opened product to be selected")
	}
}

func TestOpenProductUnknownIDShowsNotFound(t *testing.T) {
	s := NewSession().GoCatalog()

	s, err := s.OpenProduct(uuid.New(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State != StateNotFound {
		t.Fatalf("expected not found state, got %s", s.State)
	}
	if s.SelectedProductID != nil {
		t.Fatal("expected no selected product")
	}
}

func TestOpenProductRequiresID(t *testing.T) {
	s := NewSession()

	if _, err := s.OpenProduct(uuid.Nil, true); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request error, got %v", err)
	}
}

func TestItemAddedOnlyFromProductDetail(t *testing.T) {
	s := NewSession()

	if _, err := s.ItemAdded(); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict from landing, got %v", err)
	}

	s, _ = s.OpenProduct(uuid.New(), true)
	s.PendingArtworkKey = "artwork/sample.png"

	s, err := s.ItemAdded()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State != StateCartReviewing {
		t.Fatalf("expected cart review, got %s", s.State)
	}
	if s.PendingArtworkKey != "" {
		t.Fatal("expected pending artwork to be consumed")
	}
}

func TestNavigatingAwayDropsPendingArtwork(t *testing.T) {
	s := NewSession()
	s, _ = s.OpenProduct(uuid.New(), true)
	s.PendingArtworkKey = "artwork/sample.png"

	if next, _ := s.OpenProduct(uuid.New(), true); next.PendingArtworkKey != "" {
		t.Fatal("expected switching products to drop the pending artwork")
	}
	if next := s.GoCatalog(); next.PendingArtworkKey != "" {
		t.Fatal("expected leaving for the catalog to drop the pending artwork")
	}
	if next := s.GoLanding(); next.PendingArtworkKey != "" {
		t.Fatal("expected leaving for the landing to drop the pending artwork")
	}
	if next := s.ViewCart(); next.PendingArtworkKey != "" {
		t.Fatal("expected leaving for the cart to drop the pending artwork")
	}
}

func TestContinueBlockedOnEmptyCart(t *testing.T) {
	s := NewSession().ViewCart()

	if _, err := s.ContinueToContact(); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error on empty cart, got %v", err)
	}

	s.Cart.Add(LineItem{Name: "Termo", Quantity: 50})
	s, err := s.ContinueToContact()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State != StateCartContact {
		t.Fatalf("expected contact form, got %s", s.State)
	}
}

func TestBackToReview(t *testing.T) {
	s := sessionOnContactForm(t)

	s, err := s.BackToReview()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State != StateCartReviewing {
		t.Fatalf("expected cart review, got %s", s.State)
	}

	if _, err := NewSession().BackToReview(); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict outside contact form, got %v", err)
	}
}

func TestSubmitHandshakeHappyPath(t *testing.T) {
	s := sessionOnContactForm(t)

	s, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Submission.Status != SubmissionSending {
		t.Fatalf("expected sending, got %s", s.Submission.Status)
	}

	s = s.CompleteSubmit("lead-token", "https://wa.me/5215512345678?text=hola")
	if s.State != StateCartSubmitted {
		t.Fatalf("expected submitted, got %s", s.State)
	}
	if s.Submission.Status != SubmissionSent {
		t.Fatalf("expected sent, got %s", s.Submission.Status)
	}
	if s.Submission.LeadToken != "lead-token" {
		t.Fatalf("expected lead token recorded, got %q", s.Submission.LeadToken)
	}
}

func TestBeginSubmitRejectsRepeats(t *testing.T) {
	s := sessionOnContactForm(t)

	sending, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sending.BeginSubmit(); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict while sending, got %v", err)
	}

	done := sending.CompleteSubmit("tok", "link")
	if _, err := done.BeginSubmit(); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict after submit, got %v", err)
	}
}

func TestBeginSubmitOnlyFromContactForm(t *testing.T) {
	s := NewSession()

	if _, err := s.BeginSubmit(); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict from landing, got %v", err)
	}
}

func TestFailSubmitKeepsCartForRetry(t *testing.T) {
	s := sessionOnContactForm(t)
	size := s.Cart.Size()

	s, _ = s.BeginSubmit()

	validation := s.FailSubmit("incomplete contact info", true)
	if validation.State != StateCartContact {
		t.Fatalf("expected contact form, got %s", validation.State)
	}
	if validation.Submission.Status != SubmissionIdle {
		t.Fatalf("expected idle after validation failure, got %s", validation.Submission.Status)
	}
	if validation.Cart.Size() != size {
		t.Fatal("expected the cart to survive a failed submit")
	}

	outage := s.FailSubmit("lead storage unavailable", false)
	if outage.Submission.Status != SubmissionError {
		t.Fatalf("expected error after sink failure, got %s", outage.Submission.Status)
	}
	if outage.Submission.ErrorReason == "" {
		t.Fatal("expected the failure reason to be recorded")
	}
	if _, err := outage.BeginSubmit(); err != nil {
		t.Fatalf("expected retry to be allowed, got %v", err)
	}
}

func TestLeavingSubmittedStartsFreshCart(t *testing.T) {
	s := sessionOnContactForm(t)
	s, _ = s.BeginSubmit()
	s = s.CompleteSubmit("tok", "link")

	s = s.GoCatalog()
	if s.State != StateCatalog {
		t.Fatalf("expected catalog, got %s", s.State)
	}
	if s.Cart.Size() != 0 {
		t.Fatalf("expected a fresh cart, got %d items", s.Cart.Size())
	}
	if s.Submission.Status != SubmissionIdle {
		t.Fatalf("expected idle submission, got %s", s.Submission.Status)
	}
}

func sessionOnContactForm(t *testing.T) Session {
	t.Helper()
	s := NewSession().ViewCart()
	s.Cart.Add(LineItem{Name: "Termo", Quantity: 50})
	s, err := s.ContinueToContact()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return s
}
