package authz

import "ai-recorddesk-be/pkg/schema"

// Actor roles known to the engine. Role names line up with what the
// identity store records for each actor.
const (
	RoleAdmin            = "admin"
	RoleSystemAdmin      = "system_admin"
	RoleHRManager        = "hr_manager"
	RoleHRStaff          = "hr_staff"
	RoleFinanceManager   = "finance_manager"
	RoleFinanceStaff     = "finance_staff"
	RoleAccountant       = "accountant"
	RoleProcurementStaff = "procurement_staff"
	RoleWarehouseManager = "warehouse_manager"
	RoleCustomerService  = "customer_service"
	RoleSales            = "sales"
	RoleManager          = "manager"
	RoleEmployee         = "employee"
)

// tierRoles is the allow-list per restricted tier. Collections in the
// customer and general tiers accept any authenticated actor, so they have
// no entry here.
var tierRoles = map[string][]string{
	schema.TierAdmin:       {RoleAdmin, RoleHRManager, RoleSystemAdmin},
	schema.TierHR:          {RoleHRStaff, RoleHRManager, RoleAdmin, RoleManager},
	schema.TierFinance:     {RoleFinanceStaff, RoleFinanceManager, RoleAdmin, RoleAccountant},
	schema.TierProcurement: {RoleProcurementStaff, RoleWarehouseManager, RoleAdmin, RoleManager},
}

// roleAllowed reports whether a role may operate on a collection of the
// given tier. Tiers without an allow-list admit every role.
func roleAllowed(tier, role string) bool {
	allowed, restricted := tierRoles[tier]
	if !restricted {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
