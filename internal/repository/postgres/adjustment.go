package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type adjustmentRepository struct {
	db *sql.DB
}

func NewAdjustmentRepository(db *sql.DB) repository.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func (r *adjustmentRepository) Create(ctx context.Context, adj *domain.StockAdjustment) error {
	if adj.ID == "" {
		adj.ID = uuid.NewString()
	}
	adj.CreatedOn = time.Now()
	query := `INSERT INTO stock_adjustments (id, equipment_id, equipment_name, kind, quantity, reason, actor, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, adj.ID, adj.EquipmentID, adj.EquipmentName,
		adj.Kind, adj.Quantity, adj.Reason, adj.Actor, adj.CreatedOn)
	return err
}

func (r *adjustmentRepository) List(ctx context.Context, equipmentID string, limit int32) ([]domain.StockAdjustment, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, equipment_id, equipment_name, kind, quantity, reason, actor, created_on
	          FROM stock_adjustments`
	args := []interface{}{}
	if equipmentID != "" {
		query += ` WHERE equipment_id = $1`
		args = append(args, equipmentID)
		query += ` ORDER BY created_on DESC LIMIT $2`
	} else {
		query += ` ORDER BY created_on DESC LIMIT $1`
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.StockAdjustment
	for rows.Next() {
		var a domain.StockAdjustment
		if err := rows.Scan(&a.ID, &a.EquipmentID, &a.EquipmentName, &a.Kind, &a.Quantity,
			&a.Reason, &a.Actor, &a.CreatedOn); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
