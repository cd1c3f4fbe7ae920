package domain

import "time"

type AdjustmentKind string

const (
	AdjustmentKindInbound     AdjustmentKind = "INBOUND"
	AdjustmentKindOutbound    AdjustmentKind = "OUTBOUND"
	AdjustmentKindMaintenance AdjustmentKind = "MAINTENANCE"
	AdjustmentKindReturn      AdjustmentKind = "RETURN"
)

// StockAdjustment is one append-only audit row for a manual stock change.
// Rows are write-once and never mutated or deleted.
type StockAdjustment struct {
	ID            string         `json:"id"`
	EquipmentID   string         `json:"equipment_id"`
	EquipmentName string         `json:"equipment_name"`
	Kind          AdjustmentKind `json:"kind"`
	Quantity      int32          `json:"quantity"`
	Reason        string         `json:"reason"`
	Actor         string         `json:"actor"`
	CreatedOn     time.Time      `json:"created_on"`
}
