package http_test

import (
	"context"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	args := m.Called(ctx, name, email, password, role)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) Login(ctx context.Context, email, password, role string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password, role)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) BootstrapAdmin(ctx context.Context, name, email, password string) error {
	args := m.Called(ctx, name, email, password)
	return args.Error(0)
}

// MockEquipmentService
type MockEquipmentService struct {
	mock.Mock
}

func (m *MockEquipmentService) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentService) Get(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentService) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentService) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentService) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}

// MockBorrowService
type MockBorrowService struct {
	mock.Mock
}

func (m *MockBorrowService) CreateRequest(ctx context.Context, requesterID, equipmentID int32, fromDate, toDate, purpose string) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, requesterID, equipmentID, fromDate, toDate, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) Approve(ctx context.Context, adminID, requestID int32, notes string) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, adminID, requestID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) Reject(ctx context.Context, adminID, requestID int32, reason string) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, adminID, requestID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) MarkReturned(ctx context.Context, adminID, requestID int32, condition, notes string) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, adminID, requestID, condition, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) ListForRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.BorrowRequest, int32, error) {
	args := m.Called(ctx, requesterID, status, page, pageSize)
	return args.Get(0).([]domain.BorrowRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockBorrowService) ListAll(ctx context.Context, f repository.RequestFilter) ([]domain.BorrowRequest, int32, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.BorrowRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockBorrowService) Stats(ctx context.Context) (*domain.RequestStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequestStats), args.Error(1)
}
