package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	rentalRepo    repository.RentalRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, rentalRepo repository.RentalRepository) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		rentalRepo:    rentalRepo,
	}
}

func validateEquipment(eq *domain.Equipment) error {
	if eq.Name == "" {
		return &domain.ValidationError{Field: "name", Msg: "required"}
	}
	if eq.TotalQuantity < 0 {
		return &domain.ValidationError{Field: "total_quantity", Msg: "cannot be negative"}
	}
	if eq.HourlyRateCents < 0 || eq.DailyRateCents < 0 || eq.MonthlyRateCents < 0 {
		return &domain.ValidationError{Field: "rates", Msg: "cannot be negative"}
	}
	switch eq.Status {
	case domain.EquipmentStatusAvailable, domain.EquipmentStatusUnavailable, domain.EquipmentStatusMaintenance:
	case "":
		eq.Status = domain.EquipmentStatusAvailable
	default:
		return &domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	return nil
}

func (s *equipmentService) CreateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	// A new equipment type starts with its whole pool free.
	eq.AvailableQuantity = eq.TotalQuantity
	eq.RentedQuantity = 0
	return s.equipmentRepo.Create(ctx, eq)
}

func (s *equipmentService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

// UpdateEquipment writes master data only. The repository keeps the stored
// counters, so an edit can never erase in-flight reservations.
func (s *equipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	return s.equipmentRepo.Update(ctx, eq)
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, id string) error {
	active, err := s.rentalRepo.CountActiveByEquipment(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return &domain.ReferencedByActiveOrderError{EquipmentID: id}
	}
	return s.equipmentRepo.Delete(ctx, id)
}

func (s *equipmentService) ListEquipment(ctx context.Context, category string, status domain.EquipmentStatus, search string) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx, category, status, search)
}

func (s *equipmentService) InventoryStats(ctx context.Context) (*domain.InventoryStats, error) {
	return s.equipmentRepo.Stats(ctx)
}
