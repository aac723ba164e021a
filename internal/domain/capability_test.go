package domain_test

import (
	"testing"

	"equiplend-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	// Students and staff share the borrower capability set.
	for _, role := range []domain.Role{domain.RoleStudent, domain.RoleStaff} {
		assert.True(t, role.Can(domain.OpEquipmentView), role)
		assert.True(t, role.Can(domain.OpRequestCreate), role)
		assert.True(t, role.Can(domain.OpRequestViewOwn), role)
		assert.False(t, role.Can(domain.OpEquipmentManage), role)
		assert.False(t, role.Can(domain.OpRequestViewAll), role)
		assert.False(t, role.Can(domain.OpRequestDecide), role)
		assert.False(t, role.Can(domain.OpStatsView), role)
	}

	assert.True(t, domain.RoleAdmin.Can(domain.OpEquipmentManage))
	assert.True(t, domain.RoleAdmin.Can(domain.OpRequestViewAll))
	assert.True(t, domain.RoleAdmin.Can(domain.OpRequestDecide))
	assert.True(t, domain.RoleAdmin.Can(domain.OpStatsView))
	assert.False(t, domain.RoleAdmin.Can(domain.OpRequestCreate))

	// Unknown roles hold nothing.
	assert.False(t, domain.Role("visitor").Can(domain.OpEquipmentView))
}

func TestAllowedOperations(t *testing.T) {
	ops := domain.AllowedOperations(domain.RoleStudent)
	assert.Len(t, ops, 3)
	assert.Contains(t, ops, domain.OpRequestCreate)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, domain.CanTransition(domain.RequestStatusPending, domain.RequestStatusApproved))
	assert.True(t, domain.CanTransition(domain.RequestStatusPending, domain.RequestStatusRejected))
	assert.True(t, domain.CanTransition(domain.RequestStatusApproved, domain.RequestStatusReturned))

	assert.False(t, domain.CanTransition(domain.RequestStatusPending, domain.RequestStatusReturned))
	assert.False(t, domain.CanTransition(domain.RequestStatusApproved, domain.RequestStatusRejected))
	assert.False(t, domain.CanTransition(domain.RequestStatusRejected, domain.RequestStatusApproved))
	assert.False(t, domain.CanTransition(domain.RequestStatusReturned, domain.RequestStatusApproved))
}
