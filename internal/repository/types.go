package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agency-hub/internal/dto"
	pkgErrors "agency-hub/pkg/errors"
)

type QueryOption func(*gorm.DB) *gorm.DB

func WithPreload(association string, conds ...interface{}) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association, conds...)
	}
}

// Paginate applies offset and limit
func Paginate(q dto.PageQuery) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(q.GetOffset()).Limit(q.GetPageSize())
	}
}

func applyOptions(db *gorm.DB, opts ...QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// taskBoardOrder backlog, todo, in_progress, done, then the manual order
const taskBoardOrder = "CASE status WHEN 'backlog' THEN 0 WHEN 'todo' THEN 1 WHEN 'in_progress' THEN 2 ELSE 3 END ASC, sort_order ASC, created_at ASC"

// userBrief selects the public columns of a related user
func userBrief(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "avatar")
}

// projectBrief selects id and name of a related project
func projectBrief(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

// clientBrief selects the contact columns of a related client
func clientBrief(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "company")
}

// dbError maps gorm errors onto application errors
func dbError(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgErrors.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkgErrors.Wrap(pkgErrors.CodeConflict, pkgErrors.ErrRecordExists.Message, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return pkgErrors.Wrap(pkgErrors.CodeConflict, "record is still referenced or references a missing record", err)
	default:
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, message, err)
	}
}

// updateAll writes every column of value except the omitted ones; a missing row is ErrRecordNotFound
func updateAll(db *gorm.DB, value interface{}, message string, omit ...string) error {
	omit = append(omit, clause.Associations, "created_at")
	result := db.Model(value).Select("*").Omit(omit...).Updates(value)
	if result.Error != nil {
		return dbError(result.Error, message)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

// deleteByID hard deletes one row; a missing row is ErrRecordNotFound
func deleteByID(db *gorm.DB, value interface{}, id string, message string) error {
	result := db.Where("id = ?", id).Delete(value)
	if result.Error != nil {
		return dbError(result.Error, message)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, dbError(err, "check existence failed")
	}
	return count > 0, nil
}

type groupCount struct {
	GroupKey string
	Total    int64
}

// countBy counts rows of table grouped by column for the given ids
func countBy(ctx context.Context, db *gorm.DB, table, column string, ids []string) (map[string]int64, error) {
	out := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []groupCount
	err := db.WithContext(ctx).Table(table).
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(err, "count "+table+" failed")
	}
	for _, row := range rows {
		out[row.GroupKey] = row.Total
	}
	return out, nil
}
