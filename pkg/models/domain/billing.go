package domain

// MeteringRead is one consumption sample delivered by the metering API for a
// billing interval. Values are carried as received; numeric validation
// happens during billing, not here.
type MeteringRead struct {
	Date           string
	StartTime      string
	EndTime        string
	ConsumedEnergy string // kWh, may arrive empty or non-numeric
}

// BillingLineItem is the priced record for one MeteringRead.
//
// EnergyConsumed and UnitPrice are fixed two-decimal strings while Amount
// stays the raw product of the unrounded validated inputs. The asymmetry is
// inherited invoice behavior that downstream consumers depend on; see the
// billing package before changing it.
type BillingLineItem struct {
	Date           string
	StartTime      string
	EndTime        string
	EnergyConsumed string
	UnitPrice      string
	Amount         float64
}

// BillingResult aggregates one billing run. LineItems preserves the order of
// the input reads and always has one entry per read.
type BillingResult struct {
	TotalEnergy string
	TotalCost   string
	LineItems   []BillingLineItem
}
