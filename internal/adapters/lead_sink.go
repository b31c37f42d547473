package adapters

import (
	"context"

	leadservice "promopro_backend/internal/leads/service"
	quoteservice "promopro_backend/internal/quotes/service"
)

// LeadSinkAdapter lets the quotes flow hand submitted carts to the leads
// module. It satisfies the quotes service's LeadSubmitter port.
type LeadSinkAdapter struct {
	leads *leadservice.Service
}

// NewLeadSinkAdapter wires lead capture into the quotes flow.
func NewLeadSinkAdapter(leads *leadservice.Service) *LeadSinkAdapter {
	return &LeadSinkAdapter{leads: leads}
}

func (a *LeadSinkAdapter) Submit(ctx context.Context, req quoteservice.LeadRequest) (quoteservice.LeadResult, error) {
	items := make([]leadservice.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, leadservice.ItemInput{
			ProductID:        it.ProductID,
			SKU:              it.SKU,
			Name:             it.Name,
			ColorName:        it.ColorName,
			Quantity:         it.Quantity,
			TechniqueName:    it.TechniqueName,
			LogoFormat:       string(it.LogoFormat),
			UnitPrice:        it.UnitPrice,
			SetupFee:         it.SetupFee,
			LineTotal:        it.LineTotal,
			HasVirtualSample: it.HasVirtualSample,
		})
	}

	out, err := a.leads.Submit(ctx, leadservice.SubmitInput{
		SessionToken:   req.SessionToken,
		BuyerName:      req.Buyer.Name,
		BuyerCompany:   req.Buyer.Company,
		BuyerPhone:     req.Buyer.Phone,
		BuyerEmail:     req.Buyer.Email,
		Items:          items,
		EstimatedTotal: req.EstimatedTotal,
	})
	if err != nil {
		return quoteservice.LeadResult{}, err
	}

	return quoteservice.LeadResult{
		LeadID:       out.LeadID,
		PublicToken:  out.PublicToken,
		WhatsAppLink: out.WhatsAppLink,
	}, nil
}

var _ quoteservice.LeadSubmitter = (*LeadSinkAdapter)(nil)
