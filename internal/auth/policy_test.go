package auth

import (
	"context"
	"testing"

	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func caller(roles []string, permissions []string) *identity.Identity {
	return &identity.Identity{UserID: uuid.New(), TenantID: uuid.New(), Roles: roles, Permissions: permissions}
}

func TestAdministratorOverride(t *testing.T) {
	authorizer := NewAuthorizer(DefaultPolicies()...)
	admin := caller([]string{identity.AdministratorRole}, nil)

	for _, policy := range DefaultPolicies() {
		assert.True(t, authorizer.Allows(admin, policy.Name), policy.Name)
	}
	assert.True(t, authorizer.Allows(admin, "Not.Registered"))
}

func TestPolicyRequirements(t *testing.T) {
	authorizer := NewAuthorizer(append(DefaultPolicies(), Policy{
		Name: "Schedules.Publish",
		Requirements: []Requirement{
			PermissionRequirement{Code: "Schedules.Write"},
			RoleRequirement{AnyOf: []string{"Gerente", "Supervisor"}},
		},
	})...)

	t.Run("permission grants the matching policy only", func(t *testing.T) {
		reader := caller([]string{"Cajero"}, []string{PolicyEmployeesRead})
		assert.True(t, authorizer.Allows(reader, PolicyEmployeesRead))
		assert.False(t, authorizer.Allows(reader, PolicyEmployeesWrite))
	})

	t.Run("every requirement must hold", func(t *testing.T) {
		assert.True(t, authorizer.Allows(caller([]string{"Supervisor"}, []string{"Schedules.Write"}), "Schedules.Publish"))
		assert.False(t, authorizer.Allows(caller([]string{"Cajero"}, []string{"Schedules.Write"}), "Schedules.Publish"))
		assert.False(t, authorizer.Allows(caller([]string{"Gerente"}, nil), "Schedules.Publish"))
	})

	t.Run("unknown policy denies", func(t *testing.T) {
		assert.False(t, authorizer.Allows(caller([]string{"Gerente"}, []string{"Not.Registered"}), "Not.Registered"))
	})

	t.Run("nil identity denies", func(t *testing.T) {
		assert.False(t, authorizer.Allows(nil, PolicyEmployeesRead))
	})

	t.Run("role names are case sensitive", func(t *testing.T) {
		assert.False(t, authorizer.Allows(caller([]string{"administrador"}, nil), PolicyEmployeesRead))
	})
}

func TestLaterPolicyReplacesEarlier(t *testing.T) {
	authorizer := NewAuthorizer(append(DefaultPolicies(), Policy{
		Name:         PolicyEmployeesRead,
		Requirements: []Requirement{RoleRequirement{AnyOf: []string{"Gerente"}}},
	})...)

	assert.True(t, authorizer.Allows(caller([]string{"Gerente"}, nil), PolicyEmployeesRead))
	assert.False(t, authorizer.Allows(caller(nil, []string{PolicyEmployeesRead}), PolicyEmployeesRead))
}

func TestAuthorize(t *testing.T) {
	authorizer := NewAuthorizer(DefaultPolicies()...)

	err := authorizer.Authorize(context.Background(), PolicyUsersRead)
	assert.ErrorIs(t, err, apperrors.ErrMissingIdentity)
	assert.True(t, apperrors.IsAuthentication(err))

	ctx := identity.WithIdentity(context.Background(), caller(nil, []string{PolicyUsersRead}))
	assert.NoError(t, authorizer.Authorize(ctx, PolicyUsersRead))

	err = authorizer.Authorize(ctx, PolicyUsersWrite)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.True(t, apperrors.IsAuthorization(err))
}
