package actor

import (
	"slices"

	"github.com/google/uuid"
)

// Actor is the caller on whose behalf a command runs. It is resolved by the
// authentication layer and passed explicitly into every command.
type Actor struct {
	id          uuid.UUID
	roles       []Role
	permissions []Permission
	system      bool
}

func New(id uuid.UUID, roles []Role, permissions []Permission) Actor {
	return Actor{
		id:          id,
		roles:       slices.Clone(roles),
		permissions: slices.Clone(permissions),
	}
}

// Parse builds an actor from token claims, rejecting unknown roles and permissions.
func Parse(id uuid.UUID, roles, permissions []string) (Actor, error) {
	rs := make([]Role, 0, len(roles))
	for _, r := range roles {
		role, err := NewRole(r)
		if err != nil {
			return Actor{}, err
		}
		rs = append(rs, role)
	}
	ps := make([]Permission, 0, len(permissions))
	for _, p := range permissions {
		perm, err := NewPermission(p)
		if err != nil {
			return Actor{}, err
		}
		ps = append(ps, perm)
	}
	return New(id, rs, ps), nil
}

// System is the actor for transitions triggered by the service itself.
func System() Actor {
	return Actor{system: true}
}

func (a Actor) ID() uuid.UUID             { return a.id }
func (a Actor) IsSystem() bool            { return a.system }
func (a Actor) Roles() []Role             { return slices.Clone(a.roles) }
func (a Actor) Permissions() []Permission { return slices.Clone(a.permissions) }

func (a Actor) HasRole(role Role) bool {
	return slices.Contains(a.roles, role)
}

func (a Actor) HasPermission(p Permission) bool {
	return slices.Contains(a.permissions, p)
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// AuditID is nil for system actors.
func (a Actor) AuditID() *uuid.UUID {
	if a.system || a.id == uuid.Nil {
		return nil
	}
	id := a.id
	return &id
}
