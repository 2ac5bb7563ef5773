package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AdministratorRole is the role name that passes every authorization policy
const AdministratorRole = "Administrador"

// Identity is the authenticated caller recovered from an access token
type Identity struct {
	UserID      uuid.UUID `json:"user_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Email       string    `json:"email,omitempty"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
	TokenID     string    `json:"-"`
	ExpiresAt   time.Time `json:"-"`
}

// HasRole reports whether the identity holds the named role
func (i *Identity) HasRole(name string) bool {
	if i == nil {
		return false
	}
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasPermission reports whether the identity carries the permission code
func (i *Identity) HasPermission(code string) bool {
	if i == nil {
		return false
	}
	for _, p := range i.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// IsAdministrator reports whether the identity holds the administrator role
func (i *Identity) IsAdministrator() bool {
	return i.HasRole(AdministratorRole)
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored on ctx, if any
func FromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok && id != nil
}

// ActorID returns the user id of the caller on ctx, or uuid.Nil for system operations
func ActorID(ctx context.Context) uuid.UUID {
	if id, ok := FromContext(ctx); ok {
		return id.UserID
	}
	return uuid.Nil
}
