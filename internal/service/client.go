package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func validateClient(client *domain.Client) error {
	if client.Name == "" {
		return &domain.ValidationError{Field: "name", Msg: "required"}
	}
	if client.CellPhone == "" {
		return &domain.ValidationError{Field: "cell_phone", Msg: "required"}
	}
	if client.Document == "" {
		return &domain.ValidationError{Field: "document", Msg: "required"}
	}
	return nil
}

func (s *clientService) CreateClient(ctx context.Context, client *domain.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}
	return s.clientRepo.Create(ctx, client)
}

func (s *clientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) UpdateClient(ctx context.Context, client *domain.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}
	return s.clientRepo.Update(ctx, client)
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	return s.clientRepo.Delete(ctx, id)
}

func (s *clientService) ListClients(ctx context.Context, search string) ([]domain.Client, error) {
	return s.clientRepo.List(ctx, search)
}
