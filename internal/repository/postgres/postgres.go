package postgres

import (
	"database/sql"

	"equiprent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ClientRepository
	repository.EquipmentRepository
	repository.RentalRepository
	repository.AdjustmentRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		ClientRepository:     NewClientRepository(db),
		EquipmentRepository:  NewEquipmentRepository(db),
		RentalRepository:     NewRentalRepository(db),
		AdjustmentRepository: NewAdjustmentRepository(db),
		UserRepository:       NewUserRepository(db),
	}
}
