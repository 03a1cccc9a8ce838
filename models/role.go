package models

// Role is a user's role inside its tenant
type Role string

const (
	RoleOwner    Role = "owner"
	RoleManager  Role = "manager"
	RoleSales    Role = "sales"
	RoleCustomer Role = "customer"
)

// Permission names an action guarded by RequirePermission
type Permission string

const (
	PermManageCatalog       Permission = "catalog.manage"
	PermViewSubscriptions   Permission = "subscriptions.view_all"
	PermCreateSubscriptions Permission = "subscriptions.create"
	PermApproveSubscription Permission = "subscriptions.approve"
	PermManageSubscriptions Permission = "subscriptions.manage"
	PermManageOffers        Permission = "offers.manage"
	PermManageTeam          Permission = "team.manage"
	PermManageWallets       Permission = "wallets.manage"
	PermViewReports         Permission = "reports.view"
)

var rolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermManageCatalog, PermViewSubscriptions, PermCreateSubscriptions, PermApproveSubscription,
		PermManageSubscriptions, PermManageOffers, PermManageTeam, PermManageWallets, PermViewReports,
	},
	RoleManager: {
		PermManageCatalog, PermViewSubscriptions, PermCreateSubscriptions, PermApproveSubscription,
		PermManageSubscriptions, PermManageOffers, PermManageWallets, PermViewReports,
	},
	RoleSales: {
		PermViewSubscriptions, PermCreateSubscriptions, PermManageOffers,
	},
	RoleCustomer: {
		PermCreateSubscriptions,
	},
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role grants p
func (r Role) Can(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// IsStaff is true for every role that works on behalf of the tenant
func (r Role) IsStaff() bool {
	return r.Valid() && r != RoleCustomer
}
