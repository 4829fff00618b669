package api

import "time"

type Profile struct {
	Name string `json:"name"`
}

type BillingLineItem struct {
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime,omitempty"`
	EndTime        string  `json:"endTime,omitempty"`
	EnergyConsumed string  `json:"energyConsumed"`
	UnitPrice      string  `json:"unitPrice"`
	Amount         float64 `json:"amount"`
}

type Invoice struct {
	ID          string            `json:"id"`
	Profile     string            `json:"profile"`
	ModuleID    string            `json:"moduleId"`
	PointID     string            `json:"pointId"`
	Currency    string            `json:"currency"`
	PeriodStart time.Time         `json:"periodStart"`
	PeriodEnd   time.Time         `json:"periodEnd"`
	TotalEnergy string            `json:"totalEnergy"`
	TotalCost   string            `json:"totalCost"`
	LineItems   []BillingLineItem `json:"lineItems"`
	IssuedAt    time.Time         `json:"issuedAt"`
}
