package service

import "roomledger-backend/internal/domain"

// Operation names every mutating action the access policy gates. Reads are
// open to any authenticated user.
type Operation string

const (
	OpManageCatalog  Operation = "manage_catalog" // buildings and rooms
	OpManageTenants  Operation = "manage_tenants"
	OpCreateLease    Operation = "create_lease"
	OpCreatePayment  Operation = "create_payment"
	OpManageExpenses Operation = "manage_expenses"
	OpReviewPayment  Operation = "review_payment" // approve/reject
	OpDeleteBilling  Operation = "delete_billing" // payments and expenses
	OpManageUsers    Operation = "manage_users"
	OpManageSettings Operation = "manage_settings"
)

// Allowed is a pure function mapping (role, operation) to allow/deny.
func Allowed(role domain.Role, op Operation) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleSupervisor:
		switch op {
		case OpManageUsers, OpManageSettings:
			return false
		}
		return true
	case domain.RoleCollections:
		return op == OpCreatePayment
	}
	return false
}

// authorize returns a Forbidden error when the actor's role denies op.
func authorize(actor domain.Actor, op Operation) error {
	if !Allowed(actor.Role, op) {
		return domain.NewForbidden("role %s may not perform %s", actor.Role, op)
	}
	return nil
}
