package controllers

import (
	"fmt"
	"net/http"

	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryForm struct {
	Name  string                `form:"name" binding:"required,max=50"`
	Type  types.TransactionType `form:"type" binding:"omitempty,oneof=income expense"`
	Icon  string                `form:"icon" binding:"max=50"`
	Color string                `form:"color" binding:"max=20"`
}

func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.GET("", co.ListCategories)
	r.GET("/new", co.NewCategoryPage)
	r.POST("/new", co.CreateCategory)
	r.POST("/sort", co.SortCategories)
	r.GET("/:categoryId/edit", co.EditCategoryPage)
	r.POST("/:categoryId/edit", co.UpdateCategory)
	r.POST("/:categoryId/delete", co.DeleteCategory)
}

// category returns the category from the :categoryId parameter within ledger.
func (co Controller) category(c *gin.Context, ledger models.Ledger) (models.Category, bool) {
	id, err := httputil.UUIDParam(c, "categoryId")
	if err != nil {
		co.renderError(c, err)
		return models.Category{}, false
	}

	category, err := models.CategoryOf(ledger.ID, id)
	if err != nil {
		co.renderError(c, err)
		return models.Category{}, false
	}

	return category, true
}

// ListCategories shows the income and expense categories of a ledger.
func (co Controller) ListCategories(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	income, err := models.CategoriesOf(ledger.ID, types.Income)
	if err != nil {
		co.renderError(c, err)
		return
	}

	expense, err := models.CategoriesOf(ledger.ID, types.Expense)
	if err != nil {
		co.renderError(c, err)
		return
	}

	render(c, http.StatusOK, "category_list.html", "Categories", gin.H{
		"Ledger":  ledger,
		"Income":  income,
		"Expense": expense,
	})
}

func (co Controller) NewCategoryPage(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	t := types.TransactionType(c.DefaultQuery("type", string(types.Expense)))
	if !t.Valid() {
		t = types.Expense
	}

	render(c, http.StatusOK, "category_form.html", "New category", gin.H{
		"Ledger":   ledger,
		"Category": models.Category{Type: t},
		"Action":   categoriesPath(ledger) + "/new",
		"New":      true,
	})
}

func (co Controller) CreateCategory(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	var form CategoryForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, categoriesPath(ledger)+"/new", "error", msg)
		return
	}

	if form.Type == "" {
		redirect(c, categoriesPath(ledger)+"/new", "error", types.ErrTransactionTypeInvalid.Error())
		return
	}

	category := models.Category{
		LedgerID: ledger.ID,
		Name:     form.Name,
		Type:     form.Type,
		Icon:     form.Icon,
		Color:    form.Color,
	}

	if err := models.CreateCategory(&category); err != nil {
		if httputil.Status(err) == http.StatusBadRequest {
			redirect(c, categoriesPath(ledger)+"/new", "error", err.Error())
			return
		}

		co.renderError(c, err)
		return
	}

	redirect(c, categoriesPath(ledger), "success", "Category created")
}

func (co Controller) EditCategoryPage(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	category, ok := co.category(c, ledger)
	if !ok {
		return
	}

	render(c, http.StatusOK, "category_form.html", "Edit category", gin.H{
		"Ledger":   ledger,
		"Category": category,
		"Action":   categoryPath(ledger, category) + "/edit",
	})
}

// UpdateCategory changes name, icon and color. The type of a category is
// fixed once it has been created.
func (co Controller) UpdateCategory(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	category, ok := co.category(c, ledger)
	if !ok {
		return
	}

	var form CategoryForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, categoryPath(ledger, category)+"/edit", "error", msg)
		return
	}

	category.Name = form.Name
	category.Icon = form.Icon
	category.Color = form.Color

	if err := category.Update(); err != nil {
		if httputil.Status(err) == http.StatusBadRequest {
			redirect(c, categoryPath(ledger, category)+"/edit", "error", err.Error())
			return
		}

		co.renderError(c, err)
		return
	}

	redirect(c, categoriesPath(ledger), "success", "Category updated")
}

func (co Controller) DeleteCategory(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	category, ok := co.category(c, ledger)
	if !ok {
		return
	}

	if err := category.Deactivate(); err != nil {
		if httputil.Status(err) == http.StatusBadRequest {
			redirect(c, categoriesPath(ledger), "error", err.Error())
			return
		}

		co.renderError(c, err)
		return
	}

	redirect(c, categoriesPath(ledger), "success", "Category deleted")
}

// SortCategories stores the order of the category IDs in the "ids" form field.
func (co Controller) SortCategories(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	values := c.PostFormArray("ids")
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := httputil.UUIDFromString(v)
		if err != nil || id == uuid.Nil {
			redirect(c, categoriesPath(ledger), "error", httputil.ErrInvalidUUID.Error())
			return
		}
		ids = append(ids, id)
	}

	if err := models.SortCategories(ledger.ID, ids); err != nil {
		if httputil.Status(err) < http.StatusInternalServerError {
			redirect(c, categoriesPath(ledger), "error", err.Error())
			return
		}

		co.renderError(c, err)
		return
	}

	redirect(c, categoriesPath(ledger), "success", "Order saved")
}

func categoriesPath(l models.Ledger) string {
	return ledgerPath(l) + "/categories"
}

func categoryPath(l models.Ledger, cat models.Category) string {
	return fmt.Sprintf("%s/%s", categoriesPath(l), cat.ID)
}
