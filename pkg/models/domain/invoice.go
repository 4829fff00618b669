package domain

import "time"

// BillingPeriod bounds one invoice in calendar time.
type BillingPeriod struct {
	Start time.Time
	End   time.Time
}

// InvoiceRequest identifies what to bill. Rate is a loosely typed numeric
// string; when empty, the profile's configured rate applies.
type InvoiceRequest struct {
	Profile  string
	ModuleID string
	PointID  string
	Period   BillingPeriod
	Rate     string
}

// Invoice is the computed billing document handed to callers. Persistence
// and rendering are up to them.
type Invoice struct {
	ID       string
	Profile  string
	ModuleID string
	PointID  string
	Currency string
	Period   BillingPeriod
	Billing  BillingResult
	IssuedAt time.Time
}
