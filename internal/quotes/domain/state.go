package domain

import (
	"time"

	"github.com/google/uuid"

	"promopro_backend/platform/apperr"
)

// State is the storefront screen the session is currently on.
type State string

const (
	StateLanding       State = "landing"
	StateCatalog       State = "catalog"
	StateProductDetail State = "product_detail"
	StateNotFound      State = "not_found"
	StateCartReviewing State = "cart_reviewing"
	StateCartContact   State = "cart_contact_info"
	StateCartSubmitted State = "cart_submitted"
)

// SubmissionStatus tracks the lead submission lifecycle for a session.
type SubmissionStatus string

const (
	SubmissionIdle    SubmissionStatus = "idle"
	SubmissionSending SubmissionStatus = "sending"
	SubmissionSent    SubmissionStatus = "sent"
	SubmissionError   SubmissionStatus = "error"
)

// Submission is the session's view of its (single) lead submission.
type Submission struct {
	Status       SubmissionStatus `json:"status"`
	ErrorReason  string           `json:"errorReason,omitempty"`
	LeadToken    string           `json:"leadToken,omitempty"`
	WhatsAppLink string           `json:"whatsAppLink,omitempty"`
}

// Session is one visitor's storefront session: current screen, selected
// product, quote cart, pending artwork flag, and submission status. It is
// exclusively owned by its visitor; there is exactly one mutator.
type Session struct {
	Token             uuid.UUID  `json:"token"`
	State             State      `json:"state"`
	SelectedProductID *uuid.UUID `json:"selectedProductId,omitempty"`
	Cart              Cart       `json:"cart"`
	PendingArtworkKey string     `json:"pendingArtworkKey,omitempty"`
	Submission        Submission `json:"submission"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// NewSession starts a fresh session on the landing screen.
func NewSession() Session {
	return Session{
		Token:      uuid.New(),
		State:      StateLanding,
		Submission: Submission{Status: SubmissionIdle},
		CreatedAt:  time.Now().UTC(),
	}
}

const (
	msgCartEmpty          = "cannot continue with an empty cart"
	msgNotOnProductDetail = "no product is open"
	msgNotReviewing       = "cart is not being reviewed"
	msgNotOnContactForm   = "contact form is not open"
	msgAlreadySubmitted   = "this quote request was already submitted"
	msgSubmitInFlight     = "a submission is already in progress"
	msgProductRequired    = "a product id is required"
)

// GoLanding navigates to the landing screen. Always allowed; leaving a
// submitted session starts a fresh cart (a submitted cart is terminal).
func (s Session) GoLanding() Session {
	s = s.leaveSubmitted()
	s.State = StateLanding
	s.SelectedProductID = nil
	s.PendingArtworkKey = ""
	return s
}

// GoCatalog navigates to the catalog. Always allowed, same fresh-cart rule
// as GoLanding.
func (s Session) GoCatalog() Session {
	s = s.leaveSubmitted()
	s.State = StateCatalog
	s.SelectedProductID = nil
	s.PendingArtworkKey = ""
	return s
}

// OpenProduct moves to the product detail screen, or to the terminal
// not-found display when the id does not reference a known product.
// The existence check is the caller's (catalog collaborator's) verdict.
// Any artwork pending for a previously open product is discarded: an
// uploaded sample belongs to the configuration it was uploaded for.
func (s Session) OpenProduct(id uuid.UUID, exists bool) (Session, error) {
	if id == uuid.Nil {
		return s, apperr.BadRequest(msgProductRequired)
	}
	s = s.leaveSubmitted()
	s.PendingArtworkKey = ""
	if !exists {
		s.State = StateNotFound
		s.SelectedProductID = nil
		return s, nil
	}
	s.State = StateProductDetail
	s.SelectedProductID = &id
	return s, nil
}

// ViewCart opens the cart review screen. Allowed from any browsing screen
// (the cart control is part of the global chrome).
func (s Session) ViewCart() Session {
	s = s.leaveSubmitted()
	s.State = StateCartReviewing
	s.SelectedProductID = nil
	s.PendingArtworkKey = ""
	return s
}

// ItemAdded records that a line item was committed from the product detail
// screen and moves the session to cart review.
func (s Session) ItemAdded() (Session, error) {
	if s.State != StateProductDetail {
		return s, apperr.Conflict(msgNotOnProductDetail)
	}
	s.State = StateCartReviewing
	s.SelectedProductID = nil
	s.PendingArtworkKey = ""
	return s, nil
}

// ContinueToContact moves from cart review to the contact form. Blocked on
// an empty cart: a zero-item lead must never be submittable.
func (s Session) ContinueToContact() (Session, error) {
	if s.State != StateCartReviewing {
		return s, apperr.Conflict(msgNotReviewing)
	}
	if s.Cart.Size() == 0 {
		return s, apperr.Validation(msgCartEmpty)
	}
	s.State = StateCartContact
	return s, nil
}

// BackToReview returns from the contact form to cart review.
func (s Session) BackToReview() (Session, error) {
	if s.State != StateCartContact {
		return s, apperr.Conflict(msgNotOnContactForm)
	}
	s.State = StateCartReviewing
	return s, nil
}

// BeginSubmit marks a submission as in flight. Rejected unless the contact
// form is open and no submission is running; a submitted session is
// terminal. This is the at-most-once guard against repeated clicks.
func (s Session) BeginSubmit() (Session, error) {
	if s.State == StateCartSubmitted || s.Submission.Status == SubmissionSent {
		return s, apperr.Conflict(msgAlreadySubmitted)
	}
	if s.State != StateCartContact {
		return s, apperr.Conflict(msgNotOnContactForm)
	}
	if s.Submission.Status == SubmissionSending {
		return s, apperr.Conflict(msgSubmitInFlight)
	}
	s.Submission.Status = SubmissionSending
	s.Submission.ErrorReason = ""
	return s, nil
}

// CompleteSubmit resolves an in-flight submission. On success the session
// reaches the terminal submitted screen; on failure it returns to the
// contact form with the cart untouched so a retry costs nothing.
func (s Session) CompleteSubmit(leadToken, whatsAppLink string) Session {
	s.State = StateCartSubmitted
	s.Submission = Submission{
		Status:       SubmissionSent,
		LeadToken:    leadToken,
		WhatsAppLink: whatsAppLink,
	}
	return s
}

// FailSubmit resolves an in-flight submission as failed. Validation
// failures return the status to idle (nothing was attempted externally);
// sink failures surface as a retryable error status.
func (s Session) FailSubmit(reason string, validation bool) Session {
	s.State = StateCartContact
	if validation {
		s.Submission.Status = SubmissionIdle
	} else {
		s.Submission.Status = SubmissionError
	}
	s.Submission.ErrorReason = reason
	return s
}

// leaveSubmitted starts a fresh cart when navigating away from the
// terminal submitted screen.
func (s Session) leaveSubmitted() Session {
	if s.State != StateCartSubmitted {
		return s
	}
	s.Cart = Cart{}
	s.Submission = Submission{Status: SubmissionIdle}
	s.PendingArtworkKey = ""
	return s
}
