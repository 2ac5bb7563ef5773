package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"staff-backoffice-backend/internal/identity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// immutableColumns are never touched by Update
var immutableColumns = []string{"id", "tenant_id", "created_at", "created_by", "is_deleted", "deleted_at", "deleted_by"}

// IsUniqueViolation reports whether err comes from a unique constraint (23505)
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// tenantScope restricts a query to one branch
func tenantScope(table string, tenantID interface{}) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".tenant_id = ?", tenantID)
	}
}

// updateRecord writes every mutable column of model, scoped to its tenant.
// Returns gorm.ErrRecordNotFound when no live row matched.
func updateRecord(ctx context.Context, db *gorm.DB, model interface{}, id, tenantID interface{}) error {
	result := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Select("*").
		Omit(append([]string{clause.Associations}, immutableColumns...)...).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// softDeleteColumns builds the column set for a logical delete by the context actor
func softDeleteColumns(ctx context.Context, now time.Time) map[string]interface{} {
	cols := map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}
	if actor := identity.ActorID(ctx); actor != uuid.Nil {
		cols["deleted_by"] = actor
	}
	return cols
}

// softDelete flags the live rows of model matching query. Rows are never removed.
func softDelete(ctx context.Context, tx *gorm.DB, model interface{}, query string, args ...interface{}) (int64, error) {
	result := tx.WithContext(ctx).
		Model(model).
		Where(query, args...).
		UpdateColumns(softDeleteColumns(ctx, time.Now().UTC()))
	return result.RowsAffected, result.Error
}

// paginate applies limit/offset; a non-positive limit returns everything
func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}
