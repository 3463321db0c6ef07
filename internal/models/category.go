package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCategoryColor is shown for categories without a color.
const DefaultCategoryColor = "#007bff"

// DefaultCategoryIcon is shown for categories without an icon.
const DefaultCategoryIcon = "tag"

// Category is an income or expense label within a ledger.
type Category struct {
	DefaultModel
	LedgerID  uuid.UUID             `json:"ledgerId" gorm:"index;not null"`
	Ledger    Ledger                `json:"-"`
	Name      string                `json:"name" example:"Groceries"`
	Type      types.TransactionType `json:"type" gorm:"size:10;not null" example:"expense"`
	Icon      string                `json:"icon" example:"cart"`
	Color     string                `json:"color" example:"#28a745"`
	SortOrder int                   `json:"sortOrder" example:"3"`
	Active    bool                  `json:"active" gorm:"default:true"`
}

// BeforeSave
//   - trims whitespace from string fields
//   - validates the name length and the type
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.TrimSpace(c.Color)

	if n := utf8.RuneCountInString(c.Name); n < 1 || n > 50 {
		return ErrCategoryNameLength
	}

	return c.Type.Validate()
}

// DisplayColor returns the color of the category or the default color.
func (c Category) DisplayColor() string {
	if c.Color == "" {
		return DefaultCategoryColor
	}
	return c.Color
}

// DisplayIcon returns the icon of the category or the default icon.
func (c Category) DisplayIcon() string {
	if c.Icon == "" {
		return DefaultCategoryIcon
	}
	return c.Icon
}

// CreateCategory creates the category at the end of the sort order of
// its ledger.
func CreateCategory(c *Category) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&Category{}).
			Where("ledger_id = ?", c.LedgerID).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&last).Error
		if err != nil {
			return err
		}

		c.SortOrder = last + 1
		c.Active = true
		return tx.Omit(clause.Associations).Create(c).Error
	})
}

// CategoryOf returns the active category with id in the ledger.
func CategoryOf(ledgerID, id uuid.UUID) (Category, error) {
	var category Category
	err := DB.Where("id = ? AND ledger_id = ? AND active = ?", id, ledgerID, true).First(&category).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return Category{}, apperror.Missing("category", id.String())
		}
		return Category{}, err
	}

	return category, nil
}

// CategoriesOf returns the active categories of the ledger in sort order.
//
// If t is empty, categories of both types are returned.
func CategoriesOf(ledgerID uuid.UUID, t types.TransactionType) ([]Category, error) {
	categories := make([]Category, 0)

	query := DB.Where("ledger_id = ? AND active = ?", ledgerID, true)
	if t != "" {
		query = query.Where("type = ?", t)
	}

	err := query.Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

// Update saves all fields of the category.
func (c *Category) Update() error {
	return DB.Omit(clause.Associations).Save(c).Error
}

// Deactivate soft deletes the category. Categories that are still
// referenced by transactions are kept.
func (c *Category) Deactivate() error {
	var count int64
	err := DB.Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoryHasTransactions
	}

	c.Active = false
	return DB.Model(c).Update("active", false).Error
}

// SortCategories sets the sort order of the categories of a ledger to the
// position of their ID in ids, starting at 1.
//
// IDs of categories that are not in the ledger are rejected as NotFound
// and nothing is updated.
func SortCategories(ledgerID uuid.UUID, ids []uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			result := tx.Model(&Category{}).
				Where("id = ? AND ledger_id = ?", id, ledgerID).
				UpdateColumn("sort_order", i+1)
			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				return apperror.Missing("category", id.String())
			}
		}

		return nil
	})
}
