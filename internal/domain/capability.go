package domain

// Operation names a gated action on the API surface. The capability table
// below is the single source of truth for role gating; the HTTP middleware
// consults it before any handler runs, and nothing else branches on role.
type Operation string

const (
	OpEquipmentView   Operation = "equipment.view"
	OpEquipmentManage Operation = "equipment.manage"
	OpRequestCreate   Operation = "request.create"
	OpRequestViewOwn  Operation = "request.view_own"
	OpRequestViewAll  Operation = "request.view_all"
	OpRequestDecide   Operation = "request.decide"
	OpStatsView       Operation = "stats.view"
)

var capabilities = map[Role]map[Operation]bool{
	RoleStudent: {
		OpEquipmentView:  true,
		OpRequestCreate:  true,
		OpRequestViewOwn: true,
	},
	RoleStaff: {
		OpEquipmentView:  true,
		OpRequestCreate:  true,
		OpRequestViewOwn: true,
	},
	RoleAdmin: {
		OpEquipmentView:   true,
		OpEquipmentManage: true,
		OpRequestViewOwn:  true,
		OpRequestViewAll:  true,
		OpRequestDecide:   true,
		OpStatsView:       true,
	},
}

// Can reports whether the role holds the capability for op.
func (r Role) Can(op Operation) bool {
	return capabilities[r][op]
}

// AllowedOperations returns the operation set for a role, for display layers
// that want to mirror the gate.
func AllowedOperations(r Role) []Operation {
	ops := make([]Operation, 0, len(capabilities[r]))
	for op, ok := range capabilities[r] {
		if ok {
			ops = append(ops, op)
		}
	}
	return ops
}
