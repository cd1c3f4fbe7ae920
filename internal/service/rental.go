package service

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/utils"
)

type rentalService struct {
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	clientRepo    repository.ClientRepository
	ledger        LedgerService
	// email is optional; nil disables receipt mails.
	email EmailService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	clientRepo repository.ClientRepository,
	ledger LedgerService,
	email EmailService,
) RentalService {
	return &rentalService{
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
		clientRepo:    clientRepo,
		ledger:        ledger,
		email:         email,
	}
}

// mergeLines collapses duplicate equipment ids by summing quantities,
// preserving first-seen order. Two lines for the same equipment are one
// reservation, not two.
func mergeLines(lines []RentalRequestLine) []RentalRequestLine {
	index := make(map[string]int, len(lines))
	merged := make([]RentalRequestLine, 0, len(lines))
	for _, l := range lines {
		if i, ok := index[l.EquipmentID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.EquipmentID] = len(merged)
		merged = append(merged, l)
	}
	return merged
}

func (s *rentalService) RegisterRental(ctx context.Context, input RegisterRentalInput) (*domain.RentalOrder, error) {
	if input.ClientID == "" {
		return nil, &domain.ValidationError{Field: "client_id", Msg: "required"}
	}
	if len(input.Lines) == 0 {
		return nil, &domain.ValidationError{Field: "lines", Msg: "at least one equipment line is required"}
	}
	if input.DurationUnits < 1 {
		return nil, &domain.ValidationError{Field: "duration_units", Msg: "must be at least 1"}
	}
	switch input.BillingPeriod {
	case domain.BillingPeriodHour, domain.BillingPeriodDay, domain.BillingPeriodMonth:
	default:
		return nil, &domain.ValidationError{Field: "billing_period", Msg: "must be hour, day or month"}
	}

	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	lines := mergeLines(input.Lines)
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, &domain.ValidationError{Field: "quantity", Msg: "must be at least 1"}
		}
	}

	// Price every line before touching any counter, so a bad line costs no
	// rollback work.
	items := make([]domain.RentalLineItem, 0, len(lines))
	var subtotal int64
	for _, l := range lines {
		eq, err := s.equipmentRepo.GetByID(ctx, l.EquipmentID)
		if err != nil {
			return nil, err
		}
		price, err := utils.UnitPriceForPeriod(eq, input.BillingPeriod)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.RentalLineItem{
			EquipmentID:    eq.ID,
			EquipmentName:  eq.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: price,
		})
		subtotal += price * int64(l.Quantity)
	}

	dueDate, err := utils.DueDate(input.StartDate, input.BillingPeriod, input.DurationUnits)
	if err != nil {
		return nil, err
	}

	// Reserve line by line; on the first failure release everything already
	// reserved and surface the failing equipment. The order is persisted only
	// after the full set of reservations holds.
	for i, li := range items {
		if err := s.ledger.Reserve(ctx, li.EquipmentID, li.Quantity); err != nil {
			s.rollbackReservations(ctx, items[:i])
			return nil, err
		}
	}

	order := &domain.RentalOrder{
		ClientID:      client.ID,
		ClientName:    client.Name,
		StartDate:     input.StartDate,
		DueDate:       dueDate,
		BillingPeriod: input.BillingPeriod,
		DurationUnits: input.DurationUnits,
		LineItems:     items,
		SubtotalCents: subtotal,
		TotalCents:    subtotal * int64(input.DurationUnits),
		Status:        domain.RentalStatusActive,
		Notes:         input.Notes,
	}
	if err := s.rentalRepo.Create(ctx, order); err != nil {
		// The reservations hold stock for an order that now cannot exist.
		s.rollbackReservations(ctx, items)
		return nil, err
	}

	if s.email != nil && client.Email != "" {
		if err := s.email.SendRentalReceipt(ctx, client.Email, client.Name, order); err != nil {
			logger.Warn("Failed to send rental receipt", "order_id", order.ID, "error", err)
		}
	}

	logger.Info("Rental registered", "order_id", order.ID, "client_id", client.ID,
		"lines", len(items), "total_cents", order.TotalCents)
	return order, nil
}

func (s *rentalService) rollbackReservations(ctx context.Context, reserved []domain.RentalLineItem) {
	for _, li := range reserved {
		if err := s.ledger.Release(ctx, li.EquipmentID, li.Quantity); err != nil {
			logger.Error("Failed to release reservation during rollback",
				"equipment_id", li.EquipmentID, "quantity", li.Quantity, "error", err)
		}
	}
}

func (s *rentalService) FinalizeRental(ctx context.Context, orderID, actor string) (*domain.RentalOrder, error) {
	return s.close(ctx, orderID, domain.RentalStatusFinalized, "", actor)
}

func (s *rentalService) CancelRental(ctx context.Context, orderID, reason, actor string) (*domain.RentalOrder, error) {
	return s.close(ctx, orderID, domain.RentalStatusCancelled, reason, actor)
}

// close moves an active order to a terminal status and returns its reserved
// units to the available pool, once. The status check here is a fast reject;
// the guarantee comes from CloseOrder, whose conditional write only one of
// two concurrent closers can win. Only the winner releases stock.
func (s *rentalService) close(ctx context.Context, orderID string, target domain.RentalStatus, reason, actor string) (*domain.RentalOrder, error) {
	order, err := s.rentalRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.RentalStatusActive {
		return nil, &domain.InvalidStateError{OrderID: orderID, Status: order.Status}
	}

	returnedOn := time.Now().Format("2006-01-02")
	if err := s.rentalRepo.CloseOrder(ctx, orderID, target, reason, returnedOn); err != nil {
		return nil, err
	}
	order.Status = target
	order.CancelReason = reason
	order.ReturnedOn = &returnedOn

	for _, li := range order.LineItems {
		if err := s.ledger.Release(ctx, li.EquipmentID, li.Quantity); err != nil {
			// Status already committed; log and keep releasing the rest.
			logger.Error("Failed to release line item on close",
				"order_id", orderID, "equipment_id", li.EquipmentID, "error", err)
		}
	}

	logger.Info("Rental closed", "order_id", orderID, "status", target, "actor", actor)
	return order, nil
}

func (s *rentalService) GetRental(ctx context.Context, orderID string) (*domain.RentalOrder, error) {
	return s.rentalRepo.GetByID(ctx, orderID)
}

func (s *rentalService) ListRentals(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.rentalRepo.List(ctx, status, page, pageSize)
}
