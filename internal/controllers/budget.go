package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kalekundert/two-cents/internal/httputil"
	"github.com/kalekundert/two-cents/internal/models"
	"github.com/kalekundert/two-cents/internal/money"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup, clock money.Clock) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	// Accrual sweep
	{
		r.OPTIONS("/accrual", httputil.OptionsPost)
		r.POST("/accrual", AccrueBudgets(clock))
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// BudgetEditable are the fields that can be set by API callers.
type BudgetEditable struct {
	Name      string `json:"name" binding:"required"`
	Balance   int64  `json:"balance"`
	Allowance string `json:"allowance"`
}

// CreateBudget creates a new budget. The balance may be seeded, and the
// accrual clock starts now.
func CreateBudget(c *gin.Context) {
	var data BudgetEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	budget := models.Budget{
		Name:      data.Name,
		Balance:   data.Balance,
		Allowance: data.Allowance,
	}

	err := models.DB.Create(&budget).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": budget})
}

// GetBudgets returns all budgets in creation order.
func GetBudgets(c *gin.Context) {
	budgets, err := models.Budgets(models.DB)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budgets})
}

// GetBudget returns a specific budget.
func GetBudget(c *gin.Context) {
	var budget models.Budget
	if !fetch(c, &budget) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    budget,
		"balance": budget.FormattedBalance(),
	})
}

// UpdateBudget updates the allowance of an existing budget. The name is
// fixed at creation because assignments reference budgets by name; the
// balance only changes through accrual and assignment.
func UpdateBudget(c *gin.Context) {
	var budget models.Budget
	if !fetch(c, &budget) {
		return
	}

	var data struct {
		Allowance *string `json:"allowance"`
	}
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	updates := map[string]any{}
	if data.Allowance != nil {
		budget.Allowance = *data.Allowance
		updates["allowance"] = *data.Allowance
	}

	err := models.DB.Model(&budget).Updates(updates).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}

// DeleteBudget deletes an existing budget. Payments assigned to it keep
// their assignment; the share that went to this budget simply cannot be
// reassigned anymore.
func DeleteBudget(c *gin.Context) {
	var budget models.Budget
	if !fetch(c, &budget) {
		return
	}

	err := models.DB.Delete(&budget).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}

// AccrueBudgets advances every budget's balance to the current time.
func AccrueBudgets(clock money.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := models.AccrueAll(models.DB, clock())
		if err != nil {
			httputil.ErrorHandler(c, err)
			return
		}

		budgets, err := models.Budgets(models.DB)
		if err != nil {
			httputil.ErrorHandler(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": budgets})
	}
}
