package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"
	"staff-backoffice-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultPageSize is used when a listing does not ask for a page size
	DefaultPageSize = 10
	// MaxPageSize caps the page size of every listing
	MaxPageSize = 100
	// maxOffset bounds the row offset a page may address
	maxOffset = math.MaxInt32

	dateLayout = "2006-01-02"
)

// PageRequest selects one page of a listing. Page numbers start at 1.
type PageRequest struct {
	PageNumber int `form:"pageNumber" json:"pageNumber" example:"1"`
	PageSize   int `form:"pageSize" json:"pageSize" example:"10"`
}

// Normalize applies defaults and rejects negative values and pages past maxOffset
func (p PageRequest) Normalize() (PageRequest, error) {
	if p.PageNumber < 0 || p.PageSize < 0 {
		return p, apperrors.ErrInvalidPaginationParams
	}
	if p.PageNumber == 0 {
		p.PageNumber = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.PageNumber-1 > maxOffset/p.PageSize {
		return p, apperrors.ErrInvalidPaginationParams
	}
	return p, nil
}

// Limit returns the SQL limit of the page
func (p PageRequest) Limit() int {
	return p.PageSize
}

// Offset returns the SQL offset of the page
func (p PageRequest) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// PagedResponse is the envelope of every paginated listing
type PagedResponse[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// NewPagedResponse wraps one page of items
func NewPagedResponse[T any](items []T, page PageRequest, totalCount int64) *PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if page.PageSize > 0 {
		totalPages = int((totalCount + int64(page.PageSize) - 1) / int64(page.PageSize))
	}
	return &PagedResponse[T]{
		Items:      items,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// caller returns the authenticated identity on ctx
func caller(ctx context.Context) (*identity.Identity, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrMissingIdentity
	}
	return id, nil
}

// callerTenant returns the branch every read and write of the caller is scoped to
func callerTenant(ctx context.Context) (uuid.UUID, error) {
	id, err := caller(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return id.TenantID, nil
}

func validate(v *validator.Validate, req interface{}) error {
	if err := v.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperrors.NewValidationError(fe.Field(), fmt.Sprintf("failed on the '%s' rule", fe.Tag()))
		}
		return apperrors.NewValidationError("", err.Error())
	}
	return nil
}

// lookupError maps a missing row to the entity sentinel
func lookupError(err error, notFound error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}

// writeError maps store failures of a create or update to domain errors
func writeError(err error, exists, notFound error, op string) error {
	switch {
	case repository.IsUniqueViolation(err):
		return exists
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// uniqueIDs drops duplicate and nil ids, keeping order
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
