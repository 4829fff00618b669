package billing

import (
	"math"
	"strconv"
	"strings"

	"github.com/enertools/meter-billing/pkg/models/domain"
)

// Calculate prices a sequence of metered reads at the given per-kWh rate.
//
// It never fails: unparseable or non-finite energy and rate values count as
// zero, and malformed reads are kept rather than dropped, so the result
// always carries one line item per input read, in input order. The rate is
// coerced once for the whole run.
//
// Per line, the displayed energy and unit price are rounded to two decimals
// while Amount is the product of the unrounded inputs. TotalEnergy sums the
// rounded per-line energies; TotalCost sums the unrounded amounts. The two
// totals can therefore drift apart by cumulative rounding error. This
// mismatch is inherited invoice behavior — flagged to the product owner, kept
// until they confirm a change.
func Calculate(reads []domain.MeteringRead, rate string) domain.BillingResult {
	unitPrice := coerce(rate)

	lineItems := make([]domain.BillingLineItem, 0, len(reads))
	var totalEnergy, totalCost float64

	for _, read := range reads {
		energy := coerce(read.ConsumedEnergy)
		amount := energy * unitPrice

		item := domain.BillingLineItem{
			Date:           read.Date,
			StartTime:      read.StartTime,
			EndTime:        read.EndTime,
			EnergyConsumed: formatAmount(energy),
			UnitPrice:      formatAmount(unitPrice),
			Amount:         amount,
		}
		lineItems = append(lineItems, item)

		rounded, _ := strconv.ParseFloat(item.EnergyConsumed, 64)
		totalEnergy += rounded
		totalCost += amount
	}

	return domain.BillingResult{
		TotalEnergy: formatAmount(totalEnergy),
		TotalCost:   formatAmount(totalCost),
		LineItems:   lineItems,
	}
}

// coerce parses a loosely typed numeric value; anything unparseable or
// non-finite counts as zero.
func coerce(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// formatAmount renders a value with exactly two decimals, rounding halves
// away from zero. fmt's %.2f rounds half to even, which disagrees on values
// like 2.345, so round explicitly first.
func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}
