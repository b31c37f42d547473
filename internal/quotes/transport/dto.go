// Package transport defines the quotes module's HTTP request/response shapes.
// All monetary amounts cross the wire as strings rounded to 2 decimals;
// internal computation keeps full decimal precision.
package transport

// Actions accepted by the session action endpoint.
const (
	ActionGoLanding   = "go_landing"
	ActionExplore     = "explore"
	ActionOpenProduct = "open_product"
	ActionBack        = "back"
	ActionViewCart    = "view_cart"
	ActionContinue    = "continue"
	ActionReview      = "review"
)

// ActionRequest drives one state machine transition.
type ActionRequest struct {
	Action    string `json:"action" binding:"required" validate:"required,oneof=go_landing explore open_product back view_cart continue review"`
	ProductID string `json:"productId,omitempty"`
}

// ItemRequest configures a line item for pricing (preview or add).
type ItemRequest struct {
	Quantity      int    `json:"quantity" binding:"required" validate:"required,min=1"`
	TechniqueName string `json:"techniqueName,omitempty" validate:"max=120"`
	LogoFormat    string `json:"logoFormat,omitempty" validate:"omitempty,oneof=none one_color full_color text_only"`
	ColorName     string `json:"colorName,omitempty" validate:"max=120"`
}

// BuyerRequest carries the lead contact form.
type BuyerRequest struct {
	Name    string `json:"name" binding:"required" validate:"required,max=200"`
	Company string `json:"company" binding:"required" validate:"required,max=200"`
	Phone   string `json:"phone" binding:"required" validate:"required,max=40"`
	Email   string `json:"email" binding:"required" validate:"required,email,max=254"`
}

// LineItemResponse is one cart line as shown to the visitor.
type LineItemResponse struct {
	CartID           string `json:"cartId"`
	ProductID        string `json:"productId"`
	SKU              string `json:"sku,omitempty"`
	Name             string `json:"name"`
	ColorName        string `json:"colorName,omitempty"`
	Quantity         int    `json:"quantity"`
	TechniqueName    string `json:"techniqueName,omitempty"`
	LogoFormat       string `json:"logoFormat"`
	UnitPrice        string `json:"unitPrice"`
	SetupFee         string `json:"setupFee"`
	LineTotal        string `json:"lineTotal"`
	HasVirtualSample bool   `json:"hasVirtualSample"`
}

// CartResponse is the cart contents plus the derived grand total.
type CartResponse struct {
	Items      []LineItemResponse `json:"items"`
	GrandTotal string             `json:"grandTotal"`
}

// SubmissionResponse reports the lead submission status for the session.
type SubmissionResponse struct {
	Status       string `json:"status"`
	ErrorReason  string `json:"errorReason,omitempty"`
	LeadToken    string `json:"leadToken,omitempty"`
	WhatsAppLink string `json:"whatsAppLink,omitempty"`
}

// SessionResponse is the full presentation-facing session snapshot.
type SessionResponse struct {
	Token             string             `json:"token"`
	State             string             `json:"state"`
	SelectedProductID string             `json:"selectedProductId,omitempty"`
	Cart              CartResponse       `json:"cart"`
	Submission        SubmissionResponse `json:"submission"`
	MinOrderQty       int                `json:"minOrderQty"`
}

// PreviewResponse is a non-committing price estimate for an in-progress
// configuration.
type PreviewResponse struct {
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	SetupFee  string `json:"setupFee"`
	LineTotal string `json:"lineTotal"`
}

// AddItemResponse returns the committed line plus the refreshed session.
type AddItemResponse struct {
	CartID  string          `json:"cartId"`
	Session SessionResponse `json:"session"`
}

// SubmitResponse returns the stored lead reference.
type SubmitResponse struct {
	LeadToken    string          `json:"leadToken"`
	WhatsAppLink string          `json:"whatsAppLink"`
	Session      SessionResponse `json:"session"`
}

// ArtworkResponse acknowledges a stored virtual-sample file.
type ArtworkResponse struct {
	FileKey    string `json:"fileKey"`
	PreviewURL string `json:"previewUrl,omitempty"`
}
