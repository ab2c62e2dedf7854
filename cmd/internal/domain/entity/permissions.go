package entity

// Permission is a custom type for bitwise flags
type Permission int64

const (
	// PermissionAdministrator grants god-mode.
	// Admins bypass every permission check below, but are still bound to their unidade.
	PermissionAdministrator Permission = 1 << iota

	// PermissionViewBoard allows reading the pedagogical kanban board.
	PermissionViewBoard

	// PermissionMoveCards allows dragging cards between columns.
	PermissionMoveCards

	// PermissionEditCards allows changing the fields of a card.
	PermissionEditCards

	// PermissionFinalizeCards allows closing a card as evaded or retained.
	// Finalized cards are frozen in their column.
	PermissionFinalizeCards

	// PermissionManageApostilas allows working the collected-material queue.
	PermissionManageApostilas

	// PermissionManageClients allows editing, resetting and removing leads.
	PermissionManageClients

	// PermissionManageAlunos allows changing student photos and booking makeup classes.
	PermissionManageAlunos

	// PermissionViewAlerts allows listing absence alerts. Running a check on
	// demand is reserved to administrators.
	PermissionViewAlerts
)

// Has checks if the permission bitmask contains ALL bits
// requested in 'target'. It ignores Administrator status.
// Logic: (p & target) == target
func (p Permission) Has(target Permission) bool {
	return (p & target) == target
}

// HasAny returns true if the user has ANY of the target permissions
func (p Permission) HasAny(target Permission) bool {
	return (p & target) > 0
}

// Add appends a permission to the bitmask
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove clears a permission from the bitmask
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// HasEffective checks if the permission bitmask contains the target bits
// OR if the permission includes Administrator
func (p Permission) HasEffective(target Permission) bool {
	return p.Has(PermissionAdministrator) || p.Has(target)
}
