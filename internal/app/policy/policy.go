// Package policy holds the pure authorization decision logic. It performs no
// I/O; callers resolve the actor and the resource owner first and pass ids in.
package policy

import (
	"inkwell/internal/domain/model"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionLike   Action = "like"
	ActionView   Action = "view"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool {
	return d == Allow
}

// RoleSet is the typed membership gate used for role-restricted operations.
type RoleSet map[model.Role]struct{}

func NewRoleSet(roles ...model.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(role model.Role) bool {
	_, ok := s[role]
	return ok
}

// RoleGate allows an action iff the actor's role belongs to the allowed set,
// independent of resource ownership.
func RoleGate(actorRole model.Role, allowed RoleSet) Decision {
	if allowed.Contains(actorRole) {
		return Allow
	}
	return Deny
}

var deleteOverride = NewRoleSet(model.RoleAdmin)

// Decide evaluates an action by an actor against a resource owned by
// resourceOwnerID. An empty actorID means the request is unauthenticated.
//
// Update is owner-only: admins may delete resources they do not own but may
// not edit them.
func Decide(actorRole model.Role, actorID, resourceOwnerID string, action Action) Decision {
	switch action {
	case ActionRead, ActionView:
		return Allow
	case ActionCreate, ActionLike:
		if actorID != "" {
			return Allow
		}
		return Deny
	case ActionUpdate:
		if actorID != "" && actorID == resourceOwnerID {
			return Allow
		}
		return Deny
	case ActionDelete:
		if actorID == "" {
			return Deny
		}
		if actorID == resourceOwnerID {
			return Allow
		}
		return RoleGate(actorRole, deleteOverride)
	default:
		return Deny
	}
}
