package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/domain"
)

func newRentalFixture() (*MockRentalRepo, *MockEquipmentRepo, *MockClientRepo, RentalService) {
	rentalRepo := new(MockRentalRepo)
	equipRepo := new(MockEquipmentRepo)
	clientRepo := new(MockClientRepo)
	adjRepo := new(MockAdjustmentRepo)
	ledger := NewLedgerService(equipRepo, adjRepo)
	svc := NewRentalService(rentalRepo, equipRepo, clientRepo, ledger, nil)
	return rentalRepo, equipRepo, clientRepo, svc
}

func TestMergeLines(t *testing.T) {
	lines := []RentalRequestLine{
		{EquipmentID: "drill", Quantity: 2},
		{EquipmentID: "saw", Quantity: 1},
		{EquipmentID: "drill", Quantity: 3},
	}

	merged := mergeLines(lines)

	assert.Len(t, merged, 2)
	assert.Equal(t, "drill", merged[0].EquipmentID)
	assert.Equal(t, int32(5), merged[0].Quantity)
	assert.Equal(t, "saw", merged[1].EquipmentID)
	assert.Equal(t, int32(1), merged[1].Quantity)
}

func TestRegisterRental_Success(t *testing.T) {
	rentalRepo, equipRepo, clientRepo, svc := newRentalFixture()
	ctx := context.Background()

	clientRepo.On("GetByID", ctx, "client-1").Return(&domain.Client{ID: "client-1", Name: "Maria Souza"}, nil)
	equipRepo.On("GetByID", ctx, "drill").Return(&domain.Equipment{
		ID: "drill", Name: "Power Drill", DailyRateCents: 1500,
	}, nil)
	equipRepo.On("GetByID", ctx, "saw").Return(&domain.Equipment{
		ID: "saw", Name: "Circular Saw", DailyRateCents: 2500,
	}, nil)
	equipRepo.On("Reserve", ctx, "drill", int32(2)).Return(nil)
	equipRepo.On("Reserve", ctx, "saw", int32(1)).Return(nil)
	rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOrder")).Return(nil)

	order, err := svc.RegisterRental(ctx, RegisterRentalInput{
		ClientID:      "client-1",
		StartDate:     "2026-09-01",
		BillingPeriod: domain.BillingPeriodDay,
		DurationUnits: 3,
		Lines: []RentalRequestLine{
			{EquipmentID: "drill", Quantity: 2},
			{EquipmentID: "saw", Quantity: 1},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Maria Souza", order.ClientName)
	assert.Equal(t, "2026-09-04", order.DueDate)
	assert.Equal(t, domain.RentalStatusActive, order.Status)
	assert.Len(t, order.LineItems, 2)
	// 2x1500 + 1x2500 per day
	assert.Equal(t, int64(5500), order.SubtotalCents)
	assert.Equal(t, int64(16500), order.TotalCents)
	rentalRepo.AssertExpectations(t)
	equipRepo.AssertExpectations(t)
}

func TestRegisterRental_MergesDuplicateLines(t *testing.T) {
	rentalRepo, equipRepo, clientRepo, svc := newRentalFixture()
	ctx := context.Background()

	clientRepo.On("GetByID", ctx, "client-1").Return(&domain.Client{ID: "client-1", Name: "Maria"}, nil)
	equipRepo.On("GetByID", ctx, "drill").Return(&domain.Equipment{
		ID: "drill", Name: "Power Drill", DailyRateCents: 1000,
	}, nil)
	// One reservation for the summed quantity, not two.
	equipRepo.On("Reserve", ctx, "drill", int32(5)).Return(nil).Once()
	rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOrder")).Return(nil)

	order, err := svc.RegisterRental(ctx, RegisterRentalInput{
		ClientID:      "client-1",
		StartDate:     "2026-09-01",
		BillingPeriod: domain.BillingPeriodDay,
		DurationUnits: 1,
		Lines: []RentalRequestLine{
			{EquipmentID: "drill", Quantity: 2},
			{EquipmentID: "drill", Quantity: 3},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, order.LineItems, 1)
	assert.Equal(t, int32(5), order.LineItems[0].Quantity)
	equipRepo.AssertExpectations(t)
}

func TestRegisterRental_ReceiptFailureDoesNotFailOrder(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipRepo := new(MockEquipmentRepo)
	clientRepo := new(MockClientRepo)
	email := new(MockEmailService)
	ledger := NewLedgerService(equipRepo, new(MockAdjustmentRepo))
	svc := NewRentalService(rentalRepo, equipRepo, clientRepo, ledger, email)
	ctx := context.Background()

	clientRepo.On("GetByID", ctx, "client-1").Return(&domain.Client{
		ID: "client-1", Name: "Maria", Email: "maria@example.com",
	}, nil)
	equipRepo.On("GetByID", ctx, "drill").Return(&domain.Equipment{
		ID: "drill", Name: "Power Drill", DailyRateCents: 1000,
	}, nil)
	equipRepo.On("Reserve", ctx, "drill", int32(1)).Return(nil)
	rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOrder")).Return(nil)
	email.On("SendRentalReceipt", ctx, "maria@example.com", "Maria", mock.Anything).
		Return(errors.New("sendgrid down"))

	order, err := svc.RegisterRental(ctx, RegisterRentalInput{
		ClientID:      "client-1",
		StartDate:     "2026-09-01",
		BillingPeriod: domain.BillingPeriodDay,
		DurationUnits: 1,
		Lines:         []RentalRequestLine{{EquipmentID: "drill", Quantity: 1}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, order)
	email.AssertExpectations(t)
}

func TestRegisterRental_ReserveFailureRollsBack(t *testing.T) {
	rentalRepo, equipRepo, clientRepo, svc := newRentalFixture()
	ctx := context.Background()

	clientRepo.On("GetByID", ctx, "client-1").Return(&domain.Client{ID: "client-1", Name: "Maria"}, nil)
	equipRepo.On("GetByID", ctx, "drill").Return(&domain.Equipment{
		ID: "drill", Name: "Power Drill", DailyRateCents: 1000,
	}, nil)
	equipRepo.On("GetByID", ctx, "saw").Return(&domain.Equipment{
		ID: "saw", Name: "Circular Saw", DailyRateCents: 2000,
	}, nil)
	equipRepo.On("Reserve", ctx, "drill", int32(1)).Return(nil)
	equipRepo.On("Reserve", ctx, "saw", int32(4)).Return(&domain.InsufficientStockError{
		EquipmentID: "saw", Requested: 4, Available: 2,
	})
	// The earlier reservation must be handed back.
	equipRepo.On("Release", ctx, "drill", int32(1)).Return(nil).Once()

	_, err := svc.RegisterRental(ctx, RegisterRentalInput{
		ClientID:      "client-1",
		StartDate:     "2026-09-01",
		BillingPeriod: domain.BillingPeriodDay,
		DurationUnits: 2,
		Lines: []RentalRequestLine{
			{EquipmentID: "drill", Quantity: 1},
			{EquipmentID: "saw", Quantity: 4},
		},
	})

	var insufficient *domain.InsufficientStockError
	assert.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "saw", insufficient.EquipmentID)
	equipRepo.AssertExpectations(t)
	rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterRental_CreateFailureReleasesAll(t *testing.T) {
	rentalRepo, equipRepo, clientRepo, svc := newRentalFixture()
	ctx := context.Background()

	clientRepo.On("GetByID", ctx, "client-1").Return(&domain.Client{ID: "client-1", Name: "Maria"}, nil)
	equipRepo.On("GetByID", ctx, "drill").Return(&domain.Equipment{
		ID: "drill", Name: "Power Drill", DailyRateCents: 1000,
	}, nil)
	equipRepo.On("Reserve", ctx, "drill", int32(2)).Return(nil)
	rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOrder")).Return(errors.New("db down"))
	equipRepo.On("Release", ctx, "drill", int32(2)).Return(nil).Once()

	_, err := svc.RegisterRental(ctx, RegisterRentalInput{
		ClientID:      "client-1",
		StartDate:     "2026-09-01",
		BillingPeriod: domain.BillingPeriodDay,
		DurationUnits: 1,
		Lines:         []RentalRequestLine{{EquipmentID: "drill", Quantity: 2}},
	})

	assert.Error(t, err)
	equipRepo.AssertExpectations(t)
}

func TestRegisterRental_Validation(t *testing.T) {
	_, _, _, svc := newRentalFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterRentalInput
	}{
		{"missing client", RegisterRentalInput{
			BillingPeriod: domain.BillingPeriodDay, DurationUnits: 1,
			Lines: []RentalRequestLine{{EquipmentID: "drill", Quantity: 1}},
		}},
		{"no lines", RegisterRentalInput{
			ClientID: "client-1", BillingPeriod: domain.BillingPeriodDay, DurationUnits: 1,
		}},
		{"zero duration", RegisterRentalInput{
			ClientID: "client-1", BillingPeriod: domain.BillingPeriodDay,
			Lines: []RentalRequestLine{{EquipmentID: "drill", Quantity: 1}},
		}},
		{"bad billing period", RegisterRentalInput{
			ClientID: "client-1", BillingPeriod: "week", DurationUnits: 1,
			Lines: []RentalRequestLine{{EquipmentID: "drill", Quantity: 1}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterRental(ctx, tc.input)
			var validation *domain.ValidationError
			assert.True(t, errors.As(err, &validation))
		})
	}
}

func TestFinalizeRental_ReleasesStock(t *testing.T) {
	rentalRepo, equipRepo, _, svc := newRentalFixture()
	ctx := context.Background()

	order := &domain.RentalOrder{
		ID:     "order-1",
		Status: domain.RentalStatusActive,
		LineItems: []domain.RentalLineItem{
			{EquipmentID: "drill", Quantity: 2},
			{EquipmentID: "saw", Quantity: 1},
		},
	}
	rentalRepo.On("GetByID", ctx, "order-1").Return(order, nil)
	rentalRepo.On("CloseOrder", ctx, "order-1", domain.RentalStatusFinalized, "", mock.AnythingOfType("string")).Return(nil)
	equipRepo.On("Release", ctx, "drill", int32(2)).Return(nil).Once()
	equipRepo.On("Release", ctx, "saw", int32(1)).Return(nil).Once()

	closed, err := svc.FinalizeRental(ctx, "order-1", "ops@example.com")

	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusFinalized, closed.Status)
	assert.NotNil(t, closed.ReturnedOn)
	rentalRepo.AssertExpectations(t)
	equipRepo.AssertExpectations(t)
}

func TestFinalizeRental_AlreadyFinalized(t *testing.T) {
	rentalRepo, equipRepo, _, svc := newRentalFixture()
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, "order-1").Return(&domain.RentalOrder{
		ID:     "order-1",
		Status: domain.RentalStatusFinalized,
		LineItems: []domain.RentalLineItem{
			{EquipmentID: "drill", Quantity: 2},
		},
	}, nil)

	_, err := svc.FinalizeRental(ctx, "order-1", "ops@example.com")

	var state *domain.InvalidStateError
	assert.True(t, errors.As(err, &state))
	assert.Equal(t, domain.RentalStatusFinalized, state.Status)
	// No double release.
	equipRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	rentalRepo.AssertNotCalled(t, "CloseOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Two closers that both read the order while it was still ACTIVE. The
// conditional transition lets only the first one through; the loser gets
// InvalidStateError and must not touch the ledger, so every line item is
// released exactly once.
func TestFinalizeRental_ConcurrentCloseReleasesOnce(t *testing.T) {
	rentalRepo, equipRepo, _, svc := newRentalFixture()
	ctx := context.Background()

	order := &domain.RentalOrder{
		ID:     "order-1",
		Status: domain.RentalStatusActive,
		LineItems: []domain.RentalLineItem{
			{EquipmentID: "drill", Quantity: 2},
		},
	}
	rentalRepo.On("GetByID", ctx, "order-1").Return(order, nil)
	rentalRepo.On("CloseOrder", ctx, "order-1", domain.RentalStatusFinalized, "", mock.AnythingOfType("string")).
		Return(nil).Once()
	rentalRepo.On("CloseOrder", ctx, "order-1", domain.RentalStatusFinalized, "", mock.AnythingOfType("string")).
		Return(&domain.InvalidStateError{OrderID: "order-1", Status: domain.RentalStatusFinalized})
	equipRepo.On("Release", ctx, "drill", int32(2)).Return(nil).Once()

	_, err := svc.FinalizeRental(ctx, "order-1", "ops@example.com")
	assert.NoError(t, err)

	_, err = svc.FinalizeRental(ctx, "order-1", "ops@example.com")
	var state *domain.InvalidStateError
	assert.True(t, errors.As(err, &state))

	equipRepo.AssertNumberOfCalls(t, "Release", 1)
}

func TestCancelRental_KeepsReason(t *testing.T) {
	rentalRepo, equipRepo, _, svc := newRentalFixture()
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, "order-1").Return(&domain.RentalOrder{
		ID:     "order-1",
		Status: domain.RentalStatusActive,
		LineItems: []domain.RentalLineItem{
			{EquipmentID: "drill", Quantity: 1},
		},
	}, nil)
	rentalRepo.On("CloseOrder", ctx, "order-1", domain.RentalStatusCancelled, "client gave up", mock.AnythingOfType("string")).Return(nil)
	equipRepo.On("Release", ctx, "drill", int32(1)).Return(nil)

	closed, err := svc.CancelRental(ctx, "order-1", "client gave up", "ops@example.com")

	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusCancelled, closed.Status)
	assert.Equal(t, "client gave up", closed.CancelReason)
}

func TestListRentals_ClampsPaging(t *testing.T) {
	rentalRepo, _, _, svc := newRentalFixture()
	ctx := context.Background()

	rentalRepo.On("List", ctx, domain.RentalStatusActive, int32(1), int32(20)).
		Return([]domain.RentalOrder{}, int32(0), nil)

	_, _, err := svc.ListRentals(ctx, domain.RentalStatusActive, 0, 500)

	assert.NoError(t, err)
	rentalRepo.AssertExpectations(t)
}
