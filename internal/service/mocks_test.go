package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/domain"
)

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockClientRepo) List(ctx context.Context, search string) ([]domain.Client, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]domain.Client), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context, category string, status domain.EquipmentStatus, search string) ([]domain.Equipment, error) {
	args := m.Called(ctx, category, status, search)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Stats(ctx context.Context) (*domain.InventoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryStats), args.Error(1)
}
func (m *MockEquipmentRepo) Reserve(ctx context.Context, id string, quantity int32) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Release(ctx context.Context, id string, quantity int32) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Adjust(ctx context.Context, id string, kind domain.AdjustmentKind, quantity int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id, kind, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, order *domain.RentalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.RentalOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalOrder), args.Error(1)
}
func (m *MockRentalRepo) CloseOrder(ctx context.Context, id string, status domain.RentalStatus, reason, returnedOn string) error {
	args := m.Called(ctx, id, status, reason, returnedOn)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.RentalOrder), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByDateRange(ctx context.Context, from, to string) ([]domain.RentalOrder, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.RentalOrder), args.Error(1)
}
func (m *MockRentalRepo) CountActiveByEquipment(ctx context.Context, equipmentID string) (int32, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).(int32), args.Error(1)
}

// MockAdjustmentRepo
type MockAdjustmentRepo struct {
	mock.Mock
}

func (m *MockAdjustmentRepo) Create(ctx context.Context, adj *domain.StockAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}
func (m *MockAdjustmentRepo) List(ctx context.Context, equipmentID string, limit int32) ([]domain.StockAdjustment, error) {
	args := m.Called(ctx, equipmentID, limit)
	return args.Get(0).([]domain.StockAdjustment), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOverdueDigest(ctx context.Context, to string, orders []domain.RentalOrder) error {
	args := m.Called(ctx, to, orders)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalReceipt(ctx context.Context, to, clientName string, order *domain.RentalOrder) error {
	args := m.Called(ctx, to, clientName, order)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
