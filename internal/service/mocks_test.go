package service_test

import (
	"context"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/repository"
	"equiplend-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
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
func (m *MockUserRepo) UpdateRole(ctx context.Context, id int32, role domain.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
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
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.BorrowRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockRequestRepo) Approve(ctx context.Context, requestID int32, d domain.Decision) error {
	args := m.Called(ctx, requestID, d)
	return args.Error(0)
}
func (m *MockRequestRepo) Reject(ctx context.Context, requestID int32, d domain.Decision) error {
	args := m.Called(ctx, requestID, d)
	return args.Error(0)
}
func (m *MockRequestRepo) MarkReturned(ctx context.Context, requestID int32, d domain.Decision, condition, notes string) error {
	args := m.Called(ctx, requestID, d, condition, notes)
	return args.Error(0)
}
func (m *MockRequestRepo) ListByRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.BorrowRequest, int32, error) {
	args := m.Called(ctx, requesterID, status, page, pageSize)
	return args.Get(0).([]domain.BorrowRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRequestRepo) ListAll(ctx context.Context, f repository.RequestFilter) ([]domain.BorrowRequest, int32, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.BorrowRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRequestRepo) CountByStatus(ctx context.Context) (*domain.RequestStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequestStats), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApprovalNotification(ctx context.Context, email, name, equipmentName, notes string) error {
	args := m.Called(ctx, email, name, equipmentName, notes)
	return args.Error(0)
}
func (m *MockEmailService) SendRejectionNotification(ctx context.Context, email, name, equipmentName, reason string) error {
	args := m.Called(ctx, email, name, equipmentName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, email, name, equipmentName string) error {
	args := m.Called(ctx, email, name, equipmentName)
	return args.Error(0)
}
func (m *MockEmailService) SendDueReminder(ctx context.Context, email, name, equipmentName, dueDate string) error {
	args := m.Called(ctx, email, name, equipmentName, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueNotice(ctx context.Context, email, name, equipmentName, dueDate string) error {
	args := m.Called(ctx, email, name, equipmentName, dueDate)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, email string, role domain.Role) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
