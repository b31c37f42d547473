// Package transport defines the leads module's HTTP response shapes.
// Buyer phone and email stay server-side; the confirmation screen only
// needs name, company, and the frozen quote lines.
package transport

import "time"

// LeadItemResponse is one frozen quote line.
type LeadItemResponse struct {
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

// LeadResponse is the confirmation view of a captured lead.
type LeadResponse struct {
	PublicToken    string             `json:"publicToken"`
	BuyerName      string             `json:"buyerName"`
	BuyerCompany   string             `json:"buyerCompany"`
	Items          []LeadItemResponse `json:"items"`
	EstimatedTotal string             `json:"estimatedTotal"`
	Status         string             `json:"status"`
	WhatsAppLink   string             `json:"whatsAppLink"`
	CreatedAt      time.Time          `json:"createdAt"`
}
