package repository

import (
	"context"
	"equiplend-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id int32, role domain.Role) error
}

// EquipmentFilter narrows equipment listings. Name matches are
// case-insensitive substring matches.
type EquipmentFilter struct {
	Category string
	Name     string
	Page     int32
	PageSize int32
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, f EquipmentFilter) ([]domain.Equipment, int32, error)
}

// RequestFilter narrows the admin-side request listing. Name filters are
// case-insensitive substring matches against the denormalized snapshot
// columns, not live joins.
type RequestFilter struct {
	Status        string
	RequesterName string
	EquipmentName string
	Page          int32
	PageSize      int32
}

// BorrowRequestRepository owns borrow-request rows and the capacity-coupled
// transitions. Approve and MarkReturned flip the request status and adjust
// the equipment available count inside a single transaction so that racing
// approvals on the last unit cannot both succeed.
type BorrowRequestRepository interface {
	Create(ctx context.Context, req *domain.BorrowRequest) error
	GetByID(ctx context.Context, id int32) (*domain.BorrowRequest, error)
	Approve(ctx context.Context, requestID int32, d domain.Decision) error
	Reject(ctx context.Context, requestID int32, d domain.Decision) error
	MarkReturned(ctx context.Context, requestID int32, d domain.Decision, condition, notes string) error
	ListByRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.BorrowRequest, int32, error)
	ListAll(ctx context.Context, f RequestFilter) ([]domain.BorrowRequest, int32, error)
	CountByStatus(ctx context.Context) (*domain.RequestStats, error)
}
