package service

import (
	"context"

	"equiprent-backend/internal/domain"
)

// LedgerService is the only path allowed to move the availability counters on
// equipment records.
type LedgerService interface {
	Reserve(ctx context.Context, equipmentID string, quantity int32) error
	Release(ctx context.Context, equipmentID string, quantity int32) error
	Adjust(ctx context.Context, equipmentID string, kind domain.AdjustmentKind, quantity int32, reason, actor string) (*domain.Equipment, error)
	Snapshot(ctx context.Context, equipmentID string) (*domain.Equipment, error)
	ListAdjustments(ctx context.Context, equipmentID string, limit int32) ([]domain.StockAdjustment, error)
}

type RentalService interface {
	RegisterRental(ctx context.Context, input RegisterRentalInput) (*domain.RentalOrder, error)
	FinalizeRental(ctx context.Context, orderID, actor string) (*domain.RentalOrder, error)
	CancelRental(ctx context.Context, orderID, reason, actor string) (*domain.RentalOrder, error)
	GetRental(ctx context.Context, orderID string) (*domain.RentalOrder, error)
	ListRentals(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.RentalOrder, int32, error)
}

// RegisterRentalInput is a user-submitted rental request. Lines referencing
// the same equipment are merged by summing quantities before any reservation
// is attempted.
type RegisterRentalInput struct {
	ClientID      string               `json:"client_id"`
	StartDate     string               `json:"start_date"`
	BillingPeriod domain.BillingPeriod `json:"billing_period"`
	DurationUnits int32                `json:"duration_units"`
	Lines         []RentalRequestLine  `json:"lines"`
	Notes         string               `json:"notes"`
}

type RentalRequestLine struct {
	EquipmentID string `json:"equipment_id"`
	Quantity    int32  `json:"quantity"`
}

type ClientService interface {
	CreateClient(ctx context.Context, client *domain.Client) error
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	UpdateClient(ctx context.Context, client *domain.Client) error
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context, search string) ([]domain.Client, error)
}

type EquipmentService interface {
	CreateEquipment(ctx context.Context, eq *domain.Equipment) error
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, id string) error
	ListEquipment(ctx context.Context, category string, status domain.EquipmentStatus, search string) ([]domain.Equipment, error)
	InventoryStats(ctx context.Context) (*domain.InventoryStats, error)
}

type ReportService interface {
	RentalsPerDay(ctx context.Context, from, to string) ([]domain.DailyRentalCount, error)
	RevenueByCategory(ctx context.Context, from, to string) ([]domain.CategoryRevenue, error)
	TopClients(ctx context.Context, from, to string, limit int) ([]domain.ClientActivity, error)
	TopEquipment(ctx context.Context, from, to string, limit int) ([]domain.EquipmentActivity, error)
	FinancialSummary(ctx context.Context, from, to string) (*domain.FinancialSummary, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error) // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type EmailService interface {
	SendOverdueDigest(ctx context.Context, to string, orders []domain.RentalOrder) error
	SendRentalReceipt(ctx context.Context, to, clientName string, order *domain.RentalOrder) error
}
