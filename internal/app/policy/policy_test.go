package policy

import (
	"testing"

	"inkwell/internal/domain/model"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		role    model.Role
		actorID string
		ownerID string
		action  Action
		want    Decision
	}{
		{"anonymous read", model.RoleUser, "", "owner", ActionRead, Allow},
		{"anonymous view", model.RoleUser, "", "owner", ActionView, Allow},
		{"anonymous create denied", model.RoleUser, "", "", ActionCreate, Deny},
		{"authenticated create", model.RoleUser, "u1", "", ActionCreate, Allow},
		{"anonymous like denied", model.RoleUser, "", "", ActionLike, Deny},
		{"authenticated like", model.RoleUser, "u1", "", ActionLike, Allow},
		{"owner update", model.RoleUser, "u1", "u1", ActionUpdate, Allow},
		{"non-owner update denied", model.RoleUser, "u2", "u1", ActionUpdate, Deny},
		{"admin update of another's resource denied", model.RoleAdmin, "a1", "u1", ActionUpdate, Deny},
		{"owner delete", model.RoleUser, "u1", "u1", ActionDelete, Allow},
		{"non-owner delete denied", model.RoleUser, "u2", "u1", ActionDelete, Deny},
		{"admin delete of another's resource", model.RoleAdmin, "a1", "u1", ActionDelete, Allow},
		{"anonymous delete denied", model.RoleAdmin, "", "u1", ActionDelete, Deny},
		{"unknown action denied", model.RoleAdmin, "a1", "a1", Action("publish"), Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.role, tt.actorID, tt.ownerID, tt.action)
			if got != tt.want {
				t.Fatalf("Decide(%s, %q, %q, %s) = %v, want %v", tt.role, tt.actorID, tt.ownerID, tt.action, got, tt.want)
			}
		})
	}
}

func TestRoleGate(t *testing.T) {
	admins := NewRoleSet(model.RoleAdmin)

	if !RoleGate(model.RoleAdmin, admins).Allowed() {
		t.Fatal("expected admin to pass the admin gate")
	}
	if RoleGate(model.RoleUser, admins).Allowed() {
		t.Fatal("expected user to be rejected by the admin gate")
	}
}
