package auth

import (
	"context"

	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"
)

// Policy names used by the API
const (
	PolicyBranchesRead     = "Branches.Read"
	PolicyBranchesWrite    = "Branches.Write"
	PolicyUsersRead        = "Users.Read"
	PolicyUsersWrite       = "Users.Write"
	PolicyRolesRead        = "Roles.Read"
	PolicyRolesWrite       = "Roles.Write"
	PolicyPermissionsRead  = "Permissions.Read"
	PolicyPermissionsWrite = "Permissions.Write"
	PolicyPositionsRead    = "Positions.Read"
	PolicyPositionsWrite   = "Positions.Write"
	PolicyEmployeesRead    = "Employees.Read"
	PolicyEmployeesWrite   = "Employees.Write"
)

// Requirement is one condition a policy places on the caller
type Requirement interface {
	SatisfiedBy(id *identity.Identity) bool
}

// PermissionRequirement requires a permission code
type PermissionRequirement struct {
	Code string
}

// SatisfiedBy implements Requirement
func (r PermissionRequirement) SatisfiedBy(id *identity.Identity) bool {
	return id.HasPermission(r.Code)
}

// RoleRequirement requires at least one of the listed roles
type RoleRequirement struct {
	AnyOf []string
}

// SatisfiedBy implements Requirement
func (r RoleRequirement) SatisfiedBy(id *identity.Identity) bool {
	for _, role := range r.AnyOf {
		if id.HasRole(role) {
			return true
		}
	}
	return false
}

// Policy is a named set of requirements, all of which must hold
type Policy struct {
	Name         string
	Requirements []Requirement
}

// Decision is the outcome of one rule
type Decision int

const (
	Abstain Decision = iota
	Allow
	Deny
)

// Rule is one step of the evaluation pipeline. policy is nil when the name is unknown.
type Rule interface {
	Evaluate(id *identity.Identity, policy *Policy) Decision
}

// AdministratorOverride allows every policy for holders of the administrator role
type AdministratorOverride struct{}

// Evaluate implements Rule
func (AdministratorOverride) Evaluate(id *identity.Identity, _ *Policy) Decision {
	if id.IsAdministrator() {
		return Allow
	}
	return Abstain
}

// PolicyRequirements allows when every requirement of a known policy holds
type PolicyRequirements struct{}

// Evaluate implements Rule
func (PolicyRequirements) Evaluate(id *identity.Identity, policy *Policy) Decision {
	if policy == nil {
		return Deny
	}
	for _, requirement := range policy.Requirements {
		if !requirement.SatisfiedBy(id) {
			return Deny
		}
	}
	return Allow
}

// Authorizer evaluates named policies through an ordered rule pipeline; the first
// rule that does not abstain decides.
type Authorizer struct {
	policies map[string]*Policy
	rules    []Rule
}

// NewAuthorizer creates an authorizer with the administrator override ahead of policy checks.
// Later policies replace earlier ones with the same name.
func NewAuthorizer(policies ...Policy) *Authorizer {
	a := &Authorizer{
		policies: make(map[string]*Policy, len(policies)),
		rules:    []Rule{AdministratorOverride{}, PolicyRequirements{}},
	}
	for i := range policies {
		p := policies[i]
		a.policies[p.Name] = &p
	}
	return a
}

// Allows reports whether id passes the named policy
func (a *Authorizer) Allows(id *identity.Identity, policyName string) bool {
	if id == nil {
		return false
	}
	policy := a.policies[policyName]
	for _, rule := range a.rules {
		switch rule.Evaluate(id, policy) {
		case Allow:
			return true
		case Deny:
			return false
		}
	}
	return false
}

// Authorize checks the caller on ctx against the named policy
func (a *Authorizer) Authorize(ctx context.Context, policyName string) error {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return apperrors.ErrMissingIdentity
	}
	if !a.Allows(id, policyName) {
		return apperrors.ErrForbidden
	}
	return nil
}

// DefaultPolicies maps every API policy to the permission code of the same name
func DefaultPolicies() []Policy {
	names := []string{
		PolicyBranchesRead, PolicyBranchesWrite,
		PolicyUsersRead, PolicyUsersWrite,
		PolicyRolesRead, PolicyRolesWrite,
		PolicyPermissionsRead, PolicyPermissionsWrite,
		PolicyPositionsRead, PolicyPositionsWrite,
		PolicyEmployeesRead, PolicyEmployeesWrite,
	}
	policies := make([]Policy, 0, len(names))
	for _, name := range names {
		policies = append(policies, Policy{
			Name:         name,
			Requirements: []Requirement{PermissionRequirement{Code: name}},
		})
	}
	return policies
}
