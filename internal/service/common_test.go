package service_test

import (
	"context"
	"math"
	"testing"

	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"
	"staff-backoffice-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callerContext returns a context carrying a signed-in user of tenantID
func callerContext(tenantID uuid.UUID, roles ...string) (context.Context, *identity.Identity) {
	id := &identity.Identity{
		UserID:      uuid.New(),
		TenantID:    tenantID,
		Email:       "gerente@example.com",
		Roles:       roles,
		Permissions: []string{},
	}
	return identity.WithIdentity(context.Background(), id), id
}

func TestPageRequestNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		page, err := service.PageRequest{}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, service.DefaultPageSize, page.PageSize)
		assert.Equal(t, 0, page.Offset())
	})

	t.Run("caps page size", func(t *testing.T) {
		page, err := service.PageRequest{PageNumber: 3, PageSize: 500}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, service.MaxPageSize, page.PageSize)
		assert.Equal(t, 200, page.Offset())
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := service.PageRequest{PageNumber: -1}.Normalize()
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaginationParams)
		assert.True(t, apperrors.IsValidation(err))

		_, err = service.PageRequest{PageSize: -5}.Normalize()
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaginationParams)
	})

	t.Run("rejects pages past the offset limit", func(t *testing.T) {
		_, err := service.PageRequest{PageNumber: math.MaxInt / 50, PageSize: 100}.Normalize()
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaginationParams)

		_, err = service.PageRequest{PageNumber: math.MaxInt32/service.MaxPageSize + 2, PageSize: service.MaxPageSize}.Normalize()
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaginationParams)
	})

	t.Run("accepts the last addressable page", func(t *testing.T) {
		last := math.MaxInt32/service.MaxPageSize + 1
		page, err := service.PageRequest{PageNumber: last, PageSize: service.MaxPageSize}.Normalize()
		require.NoError(t, err)
		assert.Positive(t, page.Offset())
	})
}

func TestNewPagedResponse(t *testing.T) {
	page := service.PageRequest{PageNumber: 2, PageSize: 10}

	response := service.NewPagedResponse([]int{1, 2, 3, 4, 5}, page, 15)
	assert.Len(t, response.Items, 5)
	assert.Equal(t, 2, response.PageNumber)
	assert.Equal(t, 10, response.PageSize)
	assert.Equal(t, int64(15), response.TotalCount)
	assert.Equal(t, 2, response.TotalPages)

	empty := service.NewPagedResponse[int](nil, service.PageRequest{PageNumber: 1, PageSize: 10}, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)

	exact := service.NewPagedResponse([]int{}, service.PageRequest{PageNumber: 1, PageSize: 10}, 20)
	assert.Equal(t, 2, exact.TotalPages)
}
