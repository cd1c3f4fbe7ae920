package repository

import (
	"context"

	"equiprent-backend/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string) ([]domain.Client, error)
}

// EquipmentRepository owns the equipment records and their ledger counters.
// Reserve, Release and Adjust are the only operations that may move the
// counters; each one is a single serialized transaction against one equipment
// row, so two concurrent reservations of the same equipment cannot both
// observe the same available pool.
type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	// Update writes master data only; the live counters on the stored row are
	// preserved regardless of what the passed struct carries.
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, category string, status domain.EquipmentStatus, search string) ([]domain.Equipment, error)
	Stats(ctx context.Context) (*domain.InventoryStats, error)

	Reserve(ctx context.Context, id string, quantity int32) error
	Release(ctx context.Context, id string, quantity int32) error
	Adjust(ctx context.Context, id string, kind domain.AdjustmentKind, quantity int32) (*domain.Equipment, error)
}

type RentalRepository interface {
	Create(ctx context.Context, order *domain.RentalOrder) error
	GetByID(ctx context.Context, id string) (*domain.RentalOrder, error)
	// CloseOrder commits a terminal status for an order that is still ACTIVE.
	// The transition is first-writer-wins: when a concurrent close already
	// committed, the call returns InvalidStateError and writes nothing, so
	// the caller releases reserved stock at most once. Line items are
	// immutable once created.
	CloseOrder(ctx context.Context, id string, status domain.RentalStatus, reason, returnedOn string) error
	List(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ListByDateRange(ctx context.Context, from, to string) ([]domain.RentalOrder, error)
	CountActiveByEquipment(ctx context.Context, equipmentID string) (int32, error)
}

type AdjustmentRepository interface {
	Create(ctx context.Context, adj *domain.StockAdjustment) error
	List(ctx context.Context, equipmentID string, limit int32) ([]domain.StockAdjustment, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
