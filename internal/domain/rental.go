package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusFinalized RentalStatus = "FINALIZED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

type BillingPeriod string

const (
	BillingPeriodHour  BillingPeriod = "hour"
	BillingPeriodDay   BillingPeriod = "day"
	BillingPeriodMonth BillingPeriod = "month"
)

// RentalLineItem is one reserved equipment position on an order.
// Name and unit price are snapshots taken at registration time; later edits to
// the equipment record do not change what an existing order holds or owes.
type RentalLineItem struct {
	EquipmentID    string `json:"equipment_id"`
	EquipmentName  string `json:"equipment_name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// RentalOrder is a rental contract. Status transitions only
// ACTIVE -> FINALIZED or ACTIVE -> CANCELLED; terminal states never revert and
// orders are never deleted. While ACTIVE the order's line items hold reserved
// stock on their equipment records.
type RentalOrder struct {
	ID            string           `json:"id"`
	ClientID      string           `json:"client_id"`
	ClientName    string           `json:"client_name"`
	StartDate     string           `json:"start_date"`
	DueDate       string           `json:"due_date"`
	ReturnedOn    *string          `json:"returned_on,omitempty"`
	BillingPeriod BillingPeriod    `json:"billing_period"`
	DurationUnits int32            `json:"duration_units"`
	LineItems     []RentalLineItem `json:"line_items"`
	SubtotalCents int64            `json:"subtotal_cents"`
	TotalCents    int64            `json:"total_cents"`
	Status        RentalStatus     `json:"status"`
	Overdue       bool             `json:"overdue"`
	CancelReason  string           `json:"cancel_reason,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedOn     time.Time        `json:"created_on"`
	UpdatedOn     time.Time        `json:"updated_on"`
}
