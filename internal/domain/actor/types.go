package actor

import "errors"

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidPermission = errors.New("invalid permission")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

type Permission string

const (
	PermissionBookTable            Permission = "reservations.book"
	PermissionStartService         Permission = "reservations.start_service"
	PermissionCompleteService      Permission = "reservations.complete_service"
	PermissionTriggerEmergency     Permission = "emergencies.trigger"
	PermissionDispatchNotification Permission = "notifications.dispatch"
)

func (p Permission) String() string {
	return string(p)
}

func (p Permission) IsValid() bool {
	switch p {
	case PermissionBookTable, PermissionStartService, PermissionCompleteService,
		PermissionTriggerEmergency, PermissionDispatchNotification:
		return true
	default:
		return false
	}
}

func NewPermission(s string) (Permission, error) {
	p := Permission(s)
	if !p.IsValid() {
		return "", ErrInvalidPermission
	}
	return p, nil
}
