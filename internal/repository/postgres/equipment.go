package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, name, category, total_quantity, available_quantity, rented_quantity, status, hourly_rate_cents, daily_rate_cents, monthly_rate_cents, notes, created_on`

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	err := row.Scan(&eq.ID, &eq.Name, &eq.Category, &eq.TotalQuantity, &eq.AvailableQuantity,
		&eq.RentedQuantity, &eq.Status, &eq.HourlyRateCents, &eq.DailyRateCents,
		&eq.MonthlyRateCents, &eq.Notes, &eq.CreatedOn)
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	if eq.ID == "" {
		eq.ID = uuid.NewString()
	}
	eq.CreatedOn = time.Now()
	query := `INSERT INTO equipment (` + equipmentColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query, eq.ID, eq.Name, eq.Category, eq.TotalQuantity,
		eq.AvailableQuantity, eq.RentedQuantity, eq.Status, eq.HourlyRateCents,
		eq.DailyRateCents, eq.MonthlyRateCents, eq.Notes, eq.CreatedOn)
	return err
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	eq, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

// Update deliberately leaves total/available/rented out of the SET list:
// master-data edits must not erase in-flight reservations.
func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment
	          SET name=$1, category=$2, status=$3, hourly_rate_cents=$4, daily_rate_cents=$5, monthly_rate_cents=$6, notes=$7
	          WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, eq.Name, eq.Category, eq.Status,
		eq.HourlyRateCents, eq.DailyRateCents, eq.MonthlyRateCents, eq.Notes, eq.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "equipment", ID: eq.ID}
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	return nil
}

func (r *equipmentRepository) List(ctx context.Context, category string, status domain.EquipmentStatus, search string) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *eq)
	}
	return list, rows.Err()
}

func (r *equipmentRepository) Stats(ctx context.Context) (*domain.InventoryStats, error) {
	query := `SELECT
	            count(*),
	            count(*) FILTER (WHERE status = 'AVAILABLE' AND available_quantity > 0),
	            count(*) FILTER (WHERE rented_quantity > 0),
	            count(*) FILTER (WHERE status = 'UNAVAILABLE' OR available_quantity <= 0),
	            count(*) FILTER (WHERE status = 'MAINTENANCE'),
	            COALESCE(sum(total_quantity), 0),
	            COALESCE(sum(rented_quantity), 0),
	            COALESCE(sum(available_quantity), 0)
	          FROM equipment`
	st := &domain.InventoryStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(&st.TotalItems, &st.Available, &st.PartiallyOut,
		&st.Exhausted, &st.InMaintenance, &st.TotalUnits, &st.UnitsOnRental, &st.UnitsAvailable)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// lockCounters reads one equipment row FOR UPDATE inside tx. Every counter
// mutation goes through this lock so concurrent reservations serialize on the
// row instead of racing a read-then-write.
func lockCounters(ctx context.Context, tx *sql.Tx, id string) (total, available, rented int32, status domain.EquipmentStatus, err error) {
	query := `SELECT total_quantity, available_quantity, rented_quantity, status FROM equipment WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, id).Scan(&total, &available, &rented, &status)
	if errors.Is(err, sql.ErrNoRows) {
		err = &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	return
}

func (r *equipmentRepository) Reserve(ctx context.Context, id string, quantity int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, available, _, status, err := lockCounters(ctx, tx, id)
	if err != nil {
		return err
	}
	if status != domain.EquipmentStatusAvailable {
		return &domain.EquipmentUnavailableError{EquipmentID: id, Status: status}
	}
	if available < quantity {
		return &domain.InsufficientStockError{EquipmentID: id, Requested: quantity, Available: available}
	}

	_, err = tx.ExecContext(ctx, `UPDATE equipment
	          SET available_quantity = available_quantity - $2, rented_quantity = rented_quantity + $2
	          WHERE id = $1`, id, quantity)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *equipmentRepository) Release(ctx context.Context, id string, quantity int32) error {
	query := `UPDATE equipment
	          SET available_quantity = available_quantity + $2,
	              rented_quantity = GREATEST(0, rented_quantity - $2)
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, quantity)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	return nil
}

func (r *equipmentRepository) Adjust(ctx context.Context, id string, kind domain.AdjustmentKind, quantity int32) (*domain.Equipment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	total, available, rented, _, err := lockCounters(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	var query string
	switch kind {
	case domain.AdjustmentKindInbound:
		query = `UPDATE equipment
		         SET total_quantity = total_quantity + $2, available_quantity = available_quantity + $2
		         WHERE id = $1`
	case domain.AdjustmentKindOutbound:
		if available < quantity {
			return nil, &domain.InvalidAdjustmentError{EquipmentID: id,
				Reason: fmt.Sprintf("outbound of %d exceeds available %d", quantity, available)}
		}
		query = `UPDATE equipment
		         SET total_quantity = total_quantity - $2, available_quantity = available_quantity - $2
		         WHERE id = $1`
	case domain.AdjustmentKindMaintenance:
		if available < quantity {
			return nil, &domain.InvalidAdjustmentError{EquipmentID: id,
				Reason: fmt.Sprintf("maintenance withdrawal of %d exceeds available %d", quantity, available)}
		}
		query = `UPDATE equipment
		         SET available_quantity = available_quantity - $2, status = 'MAINTENANCE'
		         WHERE id = $1`
	case domain.AdjustmentKindReturn:
		// Units can only return from the maintenance pool, never beyond what
		// was withdrawn.
		if available+rented+quantity > total {
			return nil, &domain.InvalidAdjustmentError{EquipmentID: id,
				Reason: fmt.Sprintf("return of %d exceeds units under maintenance", quantity)}
		}
		query = `UPDATE equipment
		         SET available_quantity = available_quantity + $2, status = 'AVAILABLE'
		         WHERE id = $1`
	default:
		return nil, &domain.InvalidAdjustmentError{EquipmentID: id, Reason: "unknown adjustment kind"}
	}

	if _, err := tx.ExecContext(ctx, query, id, quantity); err != nil {
		return nil, err
	}

	eq, err := scanEquipment(tx.QueryRowContext(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return eq, nil
}
