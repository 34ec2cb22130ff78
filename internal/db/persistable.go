package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrInvalidRecord     = errors.New("invalid record")
	ErrCategoryMissing   = errors.New("post category does not exist")
	ErrAuthorMissing     = errors.New("post author does not exist")
	ErrMissingPrimaryKey = errors.New("record has no primary key")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DeleteAction 描述删除被引用记录时对引用方的处理方式。
type DeleteAction int

const (
	// Cascade 删除全部引用方记录
	Cascade DeleteAction = iota
	// Detach 只删除关联表中的行
	Detach
)

// DeleteRule 是一条级联规则：Table.Column 引用当前记录的主键。
type DeleteRule struct {
	Action DeleteAction
	Table  string
	Column string
	// Load 仅在 Cascade 时使用，返回需要递归删除的引用方记录。
	Load func(tx *gorm.DB, id uint) ([]Persistable, error)
}

// Persistable is implemented by every stored entity. It carries the schema
// metadata the store needs to validate writes and to cascade deletes.
type Persistable interface {
	TableName() string
	PrimaryKey() uint
	Validate() error
	DeleteRules() []DeleteRule
}

// DeleteRecord removes record and applies its delete rules in one transaction.
func DeleteRecord(gdb *gorm.DB, record Persistable) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		return deleteCascade(tx, record)
	})
}

func deleteCascade(tx *gorm.DB, record Persistable) error {
	id := record.PrimaryKey()
	if id == 0 {
		return ErrMissingPrimaryKey
	}

	for _, rule := range record.DeleteRules() {
		switch rule.Action {
		case Detach:
			stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", rule.Table, rule.Column)
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		case Cascade:
			dependents, err := rule.Load(tx, id)
			if err != nil {
				return err
			}
			for _, dependent := range dependents {
				if err := deleteCascade(tx, dependent); err != nil {
					return err
				}
			}
		}
	}

	result := tx.Delete(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func validateStruct(record Persistable) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		details = append(details, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(details, "; "))
}

func countByID(tx *gorm.DB, model interface{}, id uint) (int64, error) {
	var count int64
	err := tx.Session(&gorm.Session{NewDB: true}).Model(model).Where("id = ?", id).Count(&count).Error
	return count, err
}
