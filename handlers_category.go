package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gobudget/models"
	"gobudget/pkg/ledger"
)

func listCategoriesHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	var categories []models.Category
	if err := db.Where("budget_id = ?", budget.ID).Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// lookupCategoriesHandler backs the category autocomplete on the expense
// form: substring match on the name within the budget.
func lookupCategoriesHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	q := c.Query("q")
	var categories []models.Category
	if err := db.Where("budget_id = ? AND name LIKE ?", budget.ID, "%"+q+"%").
		Order("name").Limit(20).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		out = append(out, gin.H{"id": cat.ID, "name": cat.Name})
	}
	c.JSON(http.StatusOK, out)
}

func createCategoryHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, true)
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name" binding:"required"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var cnt int64
	db.Model(&models.Category{}).Where("budget_id = ? AND name = ?", budget.ID, req.Name).Count(&cnt)
	if cnt > 0 {
		fieldError(c, "name", "NAME_ALREADY_IN_USE")
		return
	}
	if req.ParentID != nil {
		if _, ok := categoryInBudget(c, budget, *req.ParentID, "parent_id"); !ok {
			return
		}
	}
	category := models.Category{Name: req.Name, BudgetID: budget.ID, ParentID: req.ParentID}
	if err := db.Create(&category).Error; err != nil {
		if isUniqueConstraintError(err) {
			fieldError(c, "name", "NAME_ALREADY_IN_USE")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": category.ID, "message": ledger.Translate(db, "CATEGORY_CREATED", langCode())})
}

// getCategoryHandler returns the category plus a rollup over the category
// and all of its descendants: their expenses, total amount and count.
func getCategoryHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	category, ok := categoryInScope(c, budget)
	if !ok {
		return
	}
	descendants, err := ledger.Descendants(db, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	ids := []uint{category.ID}
	for _, d := range descendants {
		ids = append(ids, d.ID)
	}
	var expenses []models.Expense
	if err := db.Where("category_id IN ?", ids).Order("created desc, id desc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	amount := decimal.Zero
	for _, e := range expenses {
		amount = amount.Add(e.Amount)
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          category.ID,
		"name":        category.Name,
		"parent_id":   category.ParentID,
		"descendants": descendants,
		"expenses":    expenses,
		"amount":      amount,
		"count":       len(expenses),
	})
}

func updateCategoryHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, true)
	if !ok {
		return
	}
	category, ok := categoryInScope(c, budget)
	if !ok {
		return
	}
	var req struct {
		Name     *string `json:"name"`
		ParentID *uint   `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil && *req.Name != category.Name {
		var cnt int64
		db.Model(&models.Category{}).Where("budget_id = ? AND name = ?", budget.ID, *req.Name).Count(&cnt)
		if cnt > 0 {
			fieldError(c, "name", "NAME_ALREADY_IN_USE")
			return
		}
		category.Name = *req.Name
	}
	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"parent_id": "category cannot be its own parent"}})
			return
		}
		if _, ok := categoryInBudget(c, budget, *req.ParentID, "parent_id"); !ok {
			return
		}
		category.ParentID = req.ParentID
	}
	if err := db.Save(category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ledger.Translate(db, "CATEGORY_UPDATED", langCode())})
}

func deleteCategoryHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, true)
	if !ok {
		return
	}
	category, ok := categoryInScope(c, budget)
	if !ok {
		return
	}
	if err := db.Delete(category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ledger.Translate(db, "CATEGORY_DELETED", langCode())})
}

func categoryInScope(c *gin.Context, budget *models.Budget) (*models.Category, bool) {
	id, err := strconv.Atoi(c.Param("cid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return nil, false
	}
	var category models.Category
	if err := db.Where("id = ? AND budget_id = ?", id, budget.ID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return nil, false
	}
	return &category, true
}

// categoryInBudget validates a referenced category id against the budget and
// writes a field error when it does not belong there.
func categoryInBudget(c *gin.Context, budget *models.Budget, id uint, field string) (*models.Category, bool) {
	var category models.Category
	if err := db.Where("id = ? AND budget_id = ?", id, budget.ID).First(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{field: "unknown category"}})
		return nil, false
	}
	return &category, true
}
