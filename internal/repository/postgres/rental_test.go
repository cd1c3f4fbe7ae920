package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"equiprent-backend/internal/domain"
)

func rentalRow(id, clientID, status string, overdue bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "client_id", "client_name", "start_date", "due_date", "returned_on",
		"billing_period", "duration_units", "subtotal_cents", "total_cents", "status",
		"overdue", "cancel_reason", "notes", "created_on", "updated_on",
	}).AddRow(id, clientID, "Maria", "2026-09-01", "2026-09-04", nil,
		"day", 3, 5500, 16500, status, overdue, "", "", now, now)
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	order := &domain.RentalOrder{
		ClientID:      "client-1",
		ClientName:    "Maria",
		StartDate:     "2026-09-01",
		DueDate:       "2026-09-04",
		BillingPeriod: domain.BillingPeriodDay,
		DurationUnits: 3,
		SubtotalCents: 5500,
		TotalCents:    16500,
		Status:        domain.RentalStatusActive,
		LineItems: []domain.RentalLineItem{
			{EquipmentID: "drill", EquipmentName: "Power Drill", Quantity: 2, UnitPriceCents: 1500},
			{EquipmentID: "saw", EquipmentName: "Circular Saw", Quantity: 1, UnitPriceCents: 2500},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO rental_orders").
		WithArgs(sqlmock.AnyArg(), "client-1", "Maria", "2026-09-01", "2026-09-04", nil,
			domain.BillingPeriodDay, int32(3), int64(5500), int64(16500),
			domain.RentalStatusActive, false, "", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO rental_line_items").
		WithArgs(sqlmock.AnyArg(), "drill", "Power Drill", int32(2), int64(1500)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO rental_line_items").
		WithArgs(sqlmock.AnyArg(), "saw", "Circular Saw", int32(1), int64(2500)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = repo.Create(ctx, order)
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Create_LineItemFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO rental_orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO rental_line_items").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err = repo.Create(ctx, &domain.RentalOrder{
		ClientID: "client-1", ClientName: "Maria", Status: domain.RentalStatusActive,
		LineItems: []domain.RentalLineItem{
			{EquipmentID: "ghost", Quantity: 1, UnitPriceCents: 100},
		},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, client_id, client_name").
			WithArgs("order-1").
			WillReturnRows(rentalRow("order-1", "client-1", "ACTIVE", false))
		mock.ExpectQuery("SELECT order_id, equipment_id").
			WillReturnRows(sqlmock.NewRows([]string{"order_id", "equipment_id", "equipment_name", "quantity", "unit_price_cents"}).
				AddRow("order-1", "drill", "Power Drill", 2, 1500))

		order, err := repo.GetByID(ctx, "order-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusActive, order.Status)
		assert.Len(t, order.LineItems, 1)
		assert.Equal(t, int32(2), order.LineItems[0].Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, client_id, client_name").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, "ghost")
		var notFound *domain.NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestRentalRepository_CloseOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("TransitionsActiveOrder", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_orders(.|\n)+WHERE id=\\$5 AND status='ACTIVE'").
			WithArgs(string(domain.RentalStatusFinalized), "2026-09-04", "", sqlmock.AnyArg(), "order-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CloseOrder(ctx, "order-1", domain.RentalStatusFinalized, "", "2026-09-04")
		assert.NoError(t, err)
	})

	// The row exists but another session committed a terminal status first.
	// The predicate matches zero rows and the caller learns the live status.
	t.Run("LostRaceReportsCurrentStatus", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_orders(.|\n)+WHERE id=\\$5 AND status='ACTIVE'").
			WithArgs(string(domain.RentalStatusCancelled), "2026-09-04", "changed plans", sqlmock.AnyArg(), "order-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM rental_orders WHERE id = \\$1").
			WithArgs("order-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("FINALIZED"))

		err := repo.CloseOrder(ctx, "order-1", domain.RentalStatusCancelled, "changed plans", "2026-09-04")
		var state *domain.InvalidStateError
		assert.True(t, errors.As(err, &state))
		assert.Equal(t, domain.RentalStatusFinalized, state.Status)
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_orders(.|\n)+WHERE id=\\$5 AND status='ACTIVE'").
			WithArgs(string(domain.RentalStatusFinalized), "2026-09-04", "", sqlmock.AnyArg(), "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM rental_orders WHERE id = \\$1").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		err := repo.CloseOrder(ctx, "ghost", domain.RentalStatusFinalized, "", "2026-09-04")
		var notFound *domain.NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestRentalRepository_CountActiveByEquipment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM rental_orders o").
		WithArgs("drill").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActiveByEquipment(ctx, "drill")
	assert.NoError(t, err)
	assert.Equal(t, int32(3), count)
}
