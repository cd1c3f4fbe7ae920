package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
)

type ledgerService struct {
	equipmentRepo  repository.EquipmentRepository
	adjustmentRepo repository.AdjustmentRepository
}

func NewLedgerService(equipmentRepo repository.EquipmentRepository, adjustmentRepo repository.AdjustmentRepository) LedgerService {
	return &ledgerService{
		equipmentRepo:  equipmentRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

func (s *ledgerService) Reserve(ctx context.Context, equipmentID string, quantity int32) error {
	if quantity < 1 {
		return &domain.ValidationError{Field: "quantity", Msg: "must be at least 1"}
	}
	return s.equipmentRepo.Reserve(ctx, equipmentID, quantity)
}

func (s *ledgerService) Release(ctx context.Context, equipmentID string, quantity int32) error {
	if quantity < 1 {
		return &domain.ValidationError{Field: "quantity", Msg: "must be at least 1"}
	}
	return s.equipmentRepo.Release(ctx, equipmentID, quantity)
}

func (s *ledgerService) Adjust(ctx context.Context, equipmentID string, kind domain.AdjustmentKind, quantity int32, reason, actor string) (*domain.Equipment, error) {
	if quantity < 1 {
		return nil, &domain.InvalidAdjustmentError{EquipmentID: equipmentID, Reason: "quantity must be at least 1"}
	}
	if reason == "" {
		return nil, &domain.InvalidAdjustmentError{EquipmentID: equipmentID, Reason: "a reason is required"}
	}

	eq, err := s.equipmentRepo.Adjust(ctx, equipmentID, kind, quantity)
	if err != nil {
		return nil, err
	}

	// The stock mutation is committed at this point. A failed audit append is
	// an operational problem, not grounds to undo the adjustment.
	adj := &domain.StockAdjustment{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		Kind:          kind,
		Quantity:      quantity,
		Reason:        reason,
		Actor:         actor,
	}
	if err := s.adjustmentRepo.Create(ctx, adj); err != nil {
		logger.Error("Failed to append stock adjustment audit record",
			"equipment_id", eq.ID, "kind", kind, "quantity", quantity, "error", err)
	}

	logger.Info("Stock adjusted", "equipment_id", eq.ID, "kind", kind,
		"quantity", quantity, "available", eq.AvailableQuantity, "total", eq.TotalQuantity)
	return eq, nil
}

func (s *ledgerService) Snapshot(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, equipmentID)
}

func (s *ledgerService) ListAdjustments(ctx context.Context, equipmentID string, limit int32) ([]domain.StockAdjustment, error) {
	return s.adjustmentRepo.List(ctx, equipmentID, limit)
}
