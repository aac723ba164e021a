package service

import (
	"context"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error)
	Login(ctx context.Context, email, password, role string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	BootstrapAdmin(ctx context.Context, name, email, password string) error
}

type EquipmentService interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	Get(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int32, error)
}

// BorrowService drives the borrow-request lifecycle:
// pending→{approved,rejected} and approved→returned. All callers are
// already authorized by the HTTP capability middleware; the service owns
// validation, snapshots and the capacity-coupled transitions.
type BorrowService interface {
	CreateRequest(ctx context.Context, requesterID, equipmentID int32, fromDate, toDate, purpose string) (*domain.BorrowRequest, error)
	Approve(ctx context.Context, adminID, requestID int32, notes string) (*domain.BorrowRequest, error)
	Reject(ctx context.Context, adminID, requestID int32, reason string) (*domain.BorrowRequest, error)
	MarkReturned(ctx context.Context, adminID, requestID int32, condition, notes string) (*domain.BorrowRequest, error)
	ListForRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.BorrowRequest, int32, error)
	ListAll(ctx context.Context, f repository.RequestFilter) ([]domain.BorrowRequest, int32, error)
	Stats(ctx context.Context) (*domain.RequestStats, error)
}

type EmailService interface {
	SendApprovalNotification(ctx context.Context, email, name, equipmentName, notes string) error
	SendRejectionNotification(ctx context.Context, email, name, equipmentName, reason string) error
	SendReturnConfirmation(ctx context.Context, email, name, equipmentName string) error
	SendDueReminder(ctx context.Context, email, name, equipmentName, dueDate string) error
	SendOverdueNotice(ctx context.Context, email, name, equipmentName, dueDate string) error
}
