package domain

// Reporting aggregates are computed on demand from persisted orders; nothing
// here is stored.

type DailyRentalCount struct {
	Date  string `json:"date"`
	Count int32  `json:"count"`
}

type CategoryRevenue struct {
	Category     string `json:"category"`
	RevenueCents int64  `json:"revenue_cents"`
}

type ClientActivity struct {
	ClientID     string `json:"client_id"`
	ClientName   string `json:"client_name"`
	Rentals      int32  `json:"rentals"`
	RevenueCents int64  `json:"revenue_cents"`
}

type EquipmentActivity struct {
	EquipmentID   string `json:"equipment_id"`
	EquipmentName string `json:"equipment_name"`
	UnitsRented   int32  `json:"units_rented"`
	RevenueCents  int64  `json:"revenue_cents"`
}

type FinancialSummary struct {
	Rentals           int32 `json:"rentals"`
	RevenueCents      int64 `json:"revenue_cents"`
	MeanPerOrderCents int64 `json:"mean_per_order_cents"`
}
