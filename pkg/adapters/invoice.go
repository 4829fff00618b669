package adapters

import (
	"github.com/enertools/meter-billing/pkg/models/api"
	"github.com/enertools/meter-billing/pkg/models/domain"
)

func MapInvoiceDomainToApi(inv *domain.Invoice) api.Invoice {
	lineItems := make([]api.BillingLineItem, 0, len(inv.Billing.LineItems))
	for _, item := range inv.Billing.LineItems {
		lineItems = append(lineItems, MapLineItemDomainToApi(item))
	}

	return api.Invoice{
		ID:          inv.ID,
		Profile:     inv.Profile,
		ModuleID:    inv.ModuleID,
		PointID:     inv.PointID,
		Currency:    inv.Currency,
		PeriodStart: inv.Period.Start,
		PeriodEnd:   inv.Period.End,
		TotalEnergy: inv.Billing.TotalEnergy,
		TotalCost:   inv.Billing.TotalCost,
		LineItems:   lineItems,
		IssuedAt:    inv.IssuedAt,
	}
}

func MapLineItemDomainToApi(item domain.BillingLineItem) api.BillingLineItem {
	return api.BillingLineItem{
		Date:           item.Date,
		StartTime:      item.StartTime,
		EndTime:        item.EndTime,
		EnergyConsumed: item.EnergyConsumed,
		UnitPrice:      item.UnitPrice,
		Amount:         item.Amount,
	}
}
