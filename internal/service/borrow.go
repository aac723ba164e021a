package service

import (
	"context"
	"strings"
	"time"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/logger"
	"equiplend-backend/internal/repository"
)

const dateLayout = "2006-01-02"

type borrowService struct {
	requestRepo   repository.BorrowRequestRepository
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	emailSvc      EmailService
}

func NewBorrowService(
	requestRepo repository.BorrowRequestRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) BorrowService {
	return &borrowService{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		emailSvc:      emailSvc,
	}
}

// CreateRequest opens a pending request. Availability is deliberately not
// checked here; capacity is committed at approval time, when an admin
// reviews the request.
func (s *borrowService) CreateRequest(ctx context.Context, requesterID, equipmentID int32, fromDate, toDate, purpose string) (*domain.BorrowRequest, error) {
	if equipmentID <= 0 {
		return nil, domain.NewValidationError("equipment_id", "equipment_id is required")
	}
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return nil, domain.NewValidationError("from_date", "from_date must be a YYYY-MM-DD date")
	}
	to, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return nil, domain.NewValidationError("to_date", "to_date must be a YYYY-MM-DD date")
	}
	if !to.After(from) {
		return nil, domain.NewValidationError("to_date", "to_date must be after from_date")
	}
	if strings.TrimSpace(purpose) == "" {
		return nil, domain.NewValidationError("purpose", "purpose is required")
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	req := &domain.BorrowRequest{
		RequesterID:    requester.ID,
		RequesterName:  requester.Name,
		RequesterEmail: requester.Email,
		EquipmentID:    equipment.ID,
		EquipmentName:  equipment.Name,
		FromDate:       from.Format(dateLayout),
		ToDate:         to.Format(dateLayout),
		Purpose:        purpose,
		Status:         domain.RequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *borrowService) Approve(ctx context.Context, adminID, requestID int32, notes string) (*domain.BorrowRequest, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	d := domain.Decision{DeciderID: admin.ID, DeciderName: admin.Name, Notes: notes}
	if err := s.requestRepo.Approve(ctx, requestID, d); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.emailSvc.SendApprovalNotification(ctx, req.RequesterEmail, req.RequesterName, req.EquipmentName, notes); err != nil {
		logger.Warn("approval notification failed", "request_id", req.ID, "error", err)
	}
	return req, nil
}

func (s *borrowService) Reject(ctx context.Context, adminID, requestID int32, reason string) (*domain.BorrowRequest, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	d := domain.Decision{DeciderID: admin.ID, DeciderName: admin.Name, Notes: reason}
	if err := s.requestRepo.Reject(ctx, requestID, d); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.emailSvc.SendRejectionNotification(ctx, req.RequesterEmail, req.RequesterName, req.EquipmentName, reason); err != nil {
		logger.Warn("rejection notification failed", "request_id", req.ID, "error", err)
	}
	return req, nil
}

func (s *borrowService) MarkReturned(ctx context.Context, adminID, requestID int32, condition, notes string) (*domain.BorrowRequest, error) {
	if condition != "" && !domain.ValidCondition(condition) {
		return nil, domain.NewValidationError("condition", "condition must be Excellent, Good, Fair or Poor")
	}
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	d := domain.Decision{DeciderID: admin.ID, DeciderName: admin.Name}
	if err := s.requestRepo.MarkReturned(ctx, requestID, d, condition, notes); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.emailSvc.SendReturnConfirmation(ctx, req.RequesterEmail, req.RequesterName, req.EquipmentName); err != nil {
		logger.Warn("return confirmation failed", "request_id", req.ID, "error", err)
	}
	return req, nil
}

func (s *borrowService) ListForRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.BorrowRequest, int32, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, 0, domain.NewValidationError("status", "unknown status filter")
	}
	return s.requestRepo.ListByRequester(ctx, requesterID, status, page, pageSize)
}

func (s *borrowService) ListAll(ctx context.Context, f repository.RequestFilter) ([]domain.BorrowRequest, int32, error) {
	if f.Status != "" && !domain.ValidStatus(f.Status) {
		return nil, 0, domain.NewValidationError("status", "unknown status filter")
	}
	return s.requestRepo.ListAll(ctx, f)
}

func (s *borrowService) Stats(ctx context.Context) (*domain.RequestStats, error) {
	return s.requestRepo.CountByStatus(ctx)
}
