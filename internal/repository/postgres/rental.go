package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, client_id, client_name, start_date, due_date, returned_on, billing_period, duration_units, subtotal_cents, total_cents, status, overdue, cancel_reason, notes, created_on, updated_on`

func scanRental(row interface{ Scan(...any) error }) (*domain.RentalOrder, error) {
	o := &domain.RentalOrder{}
	err := row.Scan(&o.ID, &o.ClientID, &o.ClientName, &o.StartDate, &o.DueDate, &o.ReturnedOn,
		&o.BillingPeriod, &o.DurationUnits, &o.SubtotalCents, &o.TotalCents, &o.Status,
		&o.Overdue, &o.CancelReason, &o.Notes, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts the order and its line items in one transaction. The order
// is persisted only after all reservations succeeded, so a committed order
// always holds the stock its lines reference.
func (r *rentalRepository) Create(ctx context.Context, order *domain.RentalOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now()
	order.CreatedOn = now
	order.UpdatedOn = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO rental_orders (` + rentalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = tx.ExecContext(ctx, query, order.ID, order.ClientID, order.ClientName,
		order.StartDate, order.DueDate, order.ReturnedOn, order.BillingPeriod,
		order.DurationUnits, order.SubtotalCents, order.TotalCents, order.Status,
		order.Overdue, order.CancelReason, order.Notes, order.CreatedOn, order.UpdatedOn)
	if err != nil {
		return err
	}

	for _, li := range order.LineItems {
		_, err = tx.ExecContext(ctx, `INSERT INTO rental_line_items (order_id, equipment_id, equipment_name, quantity, unit_price_cents)
		          VALUES ($1, $2, $3, $4, $5)`,
			order.ID, li.EquipmentID, li.EquipmentName, li.Quantity, li.UnitPriceCents)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *rentalRepository) loadLineItems(ctx context.Context, orderIDs []string) (map[string][]domain.RentalLineItem, error) {
	if len(orderIDs) == 0 {
		return map[string][]domain.RentalLineItem{}, nil
	}
	query := `SELECT order_id, equipment_id, equipment_name, quantity, unit_price_cents
	          FROM rental_line_items WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.RentalLineItem)
	for rows.Next() {
		var orderID string
		var li domain.RentalLineItem
		if err := rows.Scan(&orderID, &li.EquipmentID, &li.EquipmentName, &li.Quantity, &li.UnitPriceCents); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], li)
	}
	return items, rows.Err()
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.RentalOrder, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_orders WHERE id = $1`
	order, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "rental order", ID: id}
	}
	if err != nil {
		return nil, err
	}
	items, err := r.loadLineItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	order.LineItems = items[id]
	return order, nil
}

// CloseOrder moves an ACTIVE order to a terminal status. The status predicate
// on the UPDATE makes the transition atomic under concurrency: two sessions
// that both read the order as ACTIVE cannot both match the row, so exactly one
// close wins and the loser gets InvalidStateError.
func (r *rentalRepository) CloseOrder(ctx context.Context, id string, status domain.RentalStatus, reason, returnedOn string) error {
	query := `UPDATE rental_orders
	          SET status=$1, returned_on=$2, cancel_reason=$3, updated_on=$4
	          WHERE id=$5 AND status='ACTIVE'`
	res, err := r.db.ExecContext(ctx, query, status, returnedOn, reason, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var current domain.RentalStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM rental_orders WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.NotFoundError{Entity: "rental order", ID: id}
		}
		if err != nil {
			return err
		}
		return &domain.InvalidStateError{OrderID: id, Status: current}
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rental_orders WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	var ids []string
	for rows.Next() {
		o, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	items, err := r.loadLineItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].LineItems = items[orders[i].ID]
	}
	return orders, count, nil
}

func (r *rentalRepository) ListByDateRange(ctx context.Context, from, to string) ([]domain.RentalOrder, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_orders
	          WHERE start_date >= $1 AND start_date <= $2 ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	var ids []string
	for rows.Next() {
		o, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.loadLineItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].LineItems = items[orders[i].ID]
	}
	return orders, nil
}

func (r *rentalRepository) CountActiveByEquipment(ctx context.Context, equipmentID string) (int32, error) {
	query := `SELECT count(*) FROM rental_orders o
	          JOIN rental_line_items li ON li.order_id = o.id
	          WHERE li.equipment_id = $1 AND o.status = 'ACTIVE'`
	var count int32
	err := r.db.QueryRowContext(ctx, query, equipmentID).Scan(&count)
	return count, err
}
