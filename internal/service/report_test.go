package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"equiprent-backend/internal/domain"
)

func reportOrders() []domain.RentalOrder {
	return []domain.RentalOrder{
		{
			ID: "o1", ClientID: "c1", ClientName: "Maria", StartDate: "2026-08-01",
			DurationUnits: 2, TotalCents: 6000, Status: domain.RentalStatusFinalized,
			LineItems: []domain.RentalLineItem{
				{EquipmentID: "drill", EquipmentName: "Power Drill", Quantity: 2, UnitPriceCents: 1500},
			},
		},
		{
			ID: "o2", ClientID: "c2", ClientName: "Carlos", StartDate: "2026-08-01",
			DurationUnits: 1, TotalCents: 2500, Status: domain.RentalStatusActive,
			LineItems: []domain.RentalLineItem{
				{EquipmentID: "saw", EquipmentName: "Circular Saw", Quantity: 1, UnitPriceCents: 2500},
			},
		},
		{
			ID: "o3", ClientID: "c1", ClientName: "Maria", StartDate: "2026-08-03",
			DurationUnits: 1, TotalCents: 1500, Status: domain.RentalStatusActive,
			LineItems: []domain.RentalLineItem{
				{EquipmentID: "drill", EquipmentName: "Power Drill", Quantity: 1, UnitPriceCents: 1500},
			},
		},
		{
			ID: "o4", ClientID: "c3", ClientName: "Ana", StartDate: "2026-08-03",
			DurationUnits: 5, TotalCents: 99999, Status: domain.RentalStatusCancelled,
			LineItems: []domain.RentalLineItem{
				{EquipmentID: "drill", EquipmentName: "Power Drill", Quantity: 9, UnitPriceCents: 1500},
			},
		},
	}
}

func newReportFixture(t *testing.T) (*MockRentalRepo, *MockEquipmentRepo, ReportService) {
	t.Helper()
	rentalRepo := new(MockRentalRepo)
	equipRepo := new(MockEquipmentRepo)
	return rentalRepo, equipRepo, NewReportService(rentalRepo, equipRepo)
}

func TestRentalsPerDay_SkipsCancelled(t *testing.T) {
	rentalRepo, _, svc := newReportFixture(t)
	ctx := context.Background()
	rentalRepo.On("ListByDateRange", ctx, "2026-08-01", "2026-08-31").Return(reportOrders(), nil)

	days, err := svc.RentalsPerDay(ctx, "2026-08-01", "2026-08-31")

	assert.NoError(t, err)
	assert.Equal(t, []domain.DailyRentalCount{
		{Date: "2026-08-01", Count: 2},
		{Date: "2026-08-03", Count: 1},
	}, days)
}

func TestRevenueByCategory(t *testing.T) {
	rentalRepo, equipRepo, svc := newReportFixture(t)
	ctx := context.Background()
	rentalRepo.On("ListByDateRange", ctx, "2026-08-01", "2026-08-31").Return(reportOrders(), nil)
	equipRepo.On("List", ctx, "", domain.EquipmentStatus(""), "").Return([]domain.Equipment{
		{ID: "drill", Category: "tools"},
		// "saw" has no registered category and falls into "other".
	}, nil)

	revenue, err := svc.RevenueByCategory(ctx, "2026-08-01", "2026-08-31")

	assert.NoError(t, err)
	// drill: o1 2x1500x2 + o3 1x1500x1 = 7500; saw: 1x2500x1 = 2500
	assert.Equal(t, []domain.CategoryRevenue{
		{Category: "tools", RevenueCents: 7500},
		{Category: "other", RevenueCents: 2500},
	}, revenue)
}

func TestTopClients_OrdersByRevenueAndLimits(t *testing.T) {
	rentalRepo, _, svc := newReportFixture(t)
	ctx := context.Background()
	rentalRepo.On("ListByDateRange", ctx, "2026-08-01", "2026-08-31").Return(reportOrders(), nil)

	clients, err := svc.TopClients(ctx, "2026-08-01", "2026-08-31", 1)

	assert.NoError(t, err)
	assert.Len(t, clients, 1)
	assert.Equal(t, "c1", clients[0].ClientID)
	assert.Equal(t, int32(2), clients[0].Rentals)
	assert.Equal(t, int64(7500), clients[0].RevenueCents)
}

func TestTopEquipment(t *testing.T) {
	rentalRepo, _, svc := newReportFixture(t)
	ctx := context.Background()
	rentalRepo.On("ListByDateRange", ctx, "2026-08-01", "2026-08-31").Return(reportOrders(), nil)

	equipment, err := svc.TopEquipment(ctx, "2026-08-01", "2026-08-31", 0)

	assert.NoError(t, err)
	assert.Len(t, equipment, 2)
	assert.Equal(t, "drill", equipment[0].EquipmentID)
	assert.Equal(t, int32(3), equipment[0].UnitsRented)
	assert.Equal(t, int64(7500), equipment[0].RevenueCents)
}

func TestFinancialSummary(t *testing.T) {
	rentalRepo, _, svc := newReportFixture(t)
	ctx := context.Background()
	rentalRepo.On("ListByDateRange", ctx, "2026-08-01", "2026-08-31").Return(reportOrders(), nil)

	sum, err := svc.FinancialSummary(ctx, "2026-08-01", "2026-08-31")

	assert.NoError(t, err)
	assert.Equal(t, int32(3), sum.Rentals)
	assert.Equal(t, int64(10000), sum.RevenueCents)
	assert.Equal(t, int64(3333), sum.MeanPerOrderCents)
}

func TestFinancialSummary_EmptyRange(t *testing.T) {
	rentalRepo, _, svc := newReportFixture(t)
	ctx := context.Background()
	rentalRepo.On("ListByDateRange", ctx, "2027-01-01", "2027-01-31").Return([]domain.RentalOrder{}, nil)

	sum, err := svc.FinancialSummary(ctx, "2027-01-01", "2027-01-31")

	assert.NoError(t, err)
	assert.Equal(t, int32(0), sum.Rentals)
	assert.Equal(t, int64(0), sum.MeanPerOrderCents)
}
