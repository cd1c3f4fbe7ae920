package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, document, birth_date, phone, cell_phone, email, postal_code, address, neighborhood, city, state, registered_on`

func scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	c := &domain.Client{}
	err := row.Scan(&c.ID, &c.Name, &c.Document, &c.BirthDate, &c.Phone, &c.CellPhone,
		&c.Email, &c.PostalCode, &c.Address, &c.Neighborhood, &c.City, &c.State, &c.RegisteredOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	client.RegisteredOn = time.Now()
	query := `INSERT INTO clients (` + clientColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query, client.ID, client.Name, client.Document,
		client.BirthDate, client.Phone, client.CellPhone, client.Email, client.PostalCode,
		client.Address, client.Neighborhood, client.City, client.State, client.RegisteredOn)
	return err
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "client", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `UPDATE clients
	          SET name=$1, document=$2, birth_date=$3, phone=$4, cell_phone=$5, email=$6, postal_code=$7, address=$8, neighborhood=$9, city=$10, state=$11
	          WHERE id=$12`
	res, err := r.db.ExecContext(ctx, query, client.Name, client.Document, client.BirthDate,
		client.Phone, client.CellPhone, client.Email, client.PostalCode, client.Address,
		client.Neighborhood, client.City, client.State, client.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "client", ID: client.ID}
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "client", ID: id}
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, search string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR document ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}
