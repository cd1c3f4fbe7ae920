package domain

import "time"

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusUnavailable EquipmentStatus = "UNAVAILABLE"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
)

// Equipment is one equipment type plus its ledger counters. The counters are
// the single source of truth for availability and must only change through the
// ledger operations (reserve/release/adjust), never by master-data writes.
//
// Invariants: 0 <= AvailableQuantity <= TotalQuantity, and
// AvailableQuantity + RentedQuantity == TotalQuantity while the item is not
// under maintenance (maintenance withdraws units from the available pool
// without marking them rented).
type Equipment struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	TotalQuantity     int32           `json:"total_quantity"`
	AvailableQuantity int32           `json:"available_quantity"`
	RentedQuantity    int32           `json:"rented_quantity"`
	Status            EquipmentStatus `json:"status"`
	HourlyRateCents   int64           `json:"hourly_rate_cents"`
	DailyRateCents    int64           `json:"daily_rate_cents"`
	MonthlyRateCents  int64           `json:"monthly_rate_cents"`
	Notes             string          `json:"notes,omitempty"`
	CreatedOn         time.Time       `json:"created_on"`
}

// InventoryStats summarizes the equipment catalog for the stock overview.
type InventoryStats struct {
	TotalItems     int32 `json:"total_items"`
	Available      int32 `json:"available"`
	PartiallyOut   int32 `json:"partially_out"`
	Exhausted      int32 `json:"exhausted"`
	InMaintenance  int32 `json:"in_maintenance"`
	TotalUnits     int32 `json:"total_units"`
	UnitsOnRental  int32 `json:"units_on_rental"`
	UnitsAvailable int32 `json:"units_available"`
}
