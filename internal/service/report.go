package service

import (
	"context"
	"sort"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

// reportService reduces persisted rental orders on demand. Cancelled orders
// count for nothing; finalized and active orders both count as business.
type reportService struct {
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
}

func NewReportService(rentalRepo repository.RentalRepository, equipmentRepo repository.EquipmentRepository) ReportService {
	return &reportService{
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
	}
}

func (s *reportService) ordersInRange(ctx context.Context, from, to string) ([]domain.RentalOrder, error) {
	orders, err := s.rentalRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	kept := orders[:0]
	for _, o := range orders {
		if o.Status != domain.RentalStatusCancelled {
			kept = append(kept, o)
		}
	}
	return kept, nil
}

func (s *reportService) RentalsPerDay(ctx context.Context, from, to string) ([]domain.DailyRentalCount, error) {
	orders, err := s.ordersInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int32)
	for _, o := range orders {
		byDay[o.StartDate]++
	}
	days := make([]domain.DailyRentalCount, 0, len(byDay))
	for d, n := range byDay {
		days = append(days, domain.DailyRentalCount{Date: d, Count: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

func (s *reportService) RevenueByCategory(ctx context.Context, from, to string) ([]domain.CategoryRevenue, error) {
	orders, err := s.ordersInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.List(ctx, "", "", "")
	if err != nil {
		return nil, err
	}
	categoryOf := make(map[string]string, len(equipment))
	for _, eq := range equipment {
		categoryOf[eq.ID] = eq.Category
	}

	revenue := make(map[string]int64)
	for _, o := range orders {
		for _, li := range o.LineItems {
			category := categoryOf[li.EquipmentID]
			if category == "" {
				category = "other"
			}
			revenue[category] += li.UnitPriceCents * int64(li.Quantity) * int64(o.DurationUnits)
		}
	}

	out := make([]domain.CategoryRevenue, 0, len(revenue))
	for c, v := range revenue {
		out = append(out, domain.CategoryRevenue{Category: c, RevenueCents: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RevenueCents > out[j].RevenueCents })
	return out, nil
}

func (s *reportService) TopClients(ctx context.Context, from, to string, limit int) ([]domain.ClientActivity, error) {
	orders, err := s.ordersInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byClient := make(map[string]*domain.ClientActivity)
	for _, o := range orders {
		ca, ok := byClient[o.ClientID]
		if !ok {
			ca = &domain.ClientActivity{ClientID: o.ClientID, ClientName: o.ClientName}
			byClient[o.ClientID] = ca
		}
		ca.Rentals++
		ca.RevenueCents += o.TotalCents
	}

	out := make([]domain.ClientActivity, 0, len(byClient))
	for _, ca := range byClient {
		out = append(out, *ca)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RevenueCents > out[j].RevenueCents })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *reportService) TopEquipment(ctx context.Context, from, to string, limit int) ([]domain.EquipmentActivity, error) {
	orders, err := s.ordersInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byEquipment := make(map[string]*domain.EquipmentActivity)
	for _, o := range orders {
		for _, li := range o.LineItems {
			ea, ok := byEquipment[li.EquipmentID]
			if !ok {
				ea = &domain.EquipmentActivity{EquipmentID: li.EquipmentID, EquipmentName: li.EquipmentName}
				byEquipment[li.EquipmentID] = ea
			}
			ea.UnitsRented += li.Quantity
			ea.RevenueCents += li.UnitPriceCents * int64(li.Quantity) * int64(o.DurationUnits)
		}
	}

	out := make([]domain.EquipmentActivity, 0, len(byEquipment))
	for _, ea := range byEquipment {
		out = append(out, *ea)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RevenueCents > out[j].RevenueCents })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *reportService) FinancialSummary(ctx context.Context, from, to string) (*domain.FinancialSummary, error) {
	orders, err := s.ordersInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	sum := &domain.FinancialSummary{}
	for _, o := range orders {
		sum.Rentals++
		sum.RevenueCents += o.TotalCents
	}
	if sum.Rentals > 0 {
		sum.MeanPerOrderCents = sum.RevenueCents / int64(sum.Rentals)
	}
	return sum, nil
}
