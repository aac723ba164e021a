package service

import (
	"context"
	"fmt"
	"strings"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func validateEquipment(eq *domain.Equipment) error {
	if strings.TrimSpace(eq.Name) == "" {
		return domain.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(eq.Category) == "" {
		return domain.NewValidationError("category", "category is required")
	}
	if !domain.ValidCondition(string(eq.Condition)) {
		return domain.NewValidationError("condition", "condition must be Excellent, Good, Fair or Poor")
	}
	if eq.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidQuantity)
	}
	if eq.Available < 0 || eq.Available > eq.Quantity {
		return fmt.Errorf("%w: available must be within [0, %d]", domain.ErrInvalidQuantity, eq.Quantity)
	}
	return nil
}

func (s *equipmentService) Create(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	return s.equipmentRepo.Create(ctx, eq)
}

func (s *equipmentService) Get(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) Update(ctx context.Context, eq *domain.Equipment) error {
	if _, err := s.equipmentRepo.GetByID(ctx, eq.ID); err != nil {
		return err
	}
	if err := validateEquipment(eq); err != nil {
		return err
	}
	return s.equipmentRepo.Update(ctx, eq)
}

func (s *equipmentService) Delete(ctx context.Context, id int32) error {
	return s.equipmentRepo.Delete(ctx, id)
}

func (s *equipmentService) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int32, error) {
	return s.equipmentRepo.List(ctx, f)
}
