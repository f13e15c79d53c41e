package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kalekundert/two-cents/internal/httputil"
	"github.com/kalekundert/two-cents/internal/models"
)

// RegisterMatchRuleRoutes registers the routes for match rules with
// the RouterGroup that is passed.
func RegisterMatchRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetMatchRules)
		r.POST("", CreateMatchRule)
	}

	// Match rule with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetMatchRule)
		r.PATCH("/:id", UpdateMatchRule)
		r.DELETE("/:id", DeleteMatchRule)
	}
}

// MatchRuleEditable are the fields that can be set by API callers.
type MatchRuleEditable struct {
	Priority   uint   `json:"priority"`
	Match      string `json:"match" binding:"required"`
	Expression string `json:"expression" binding:"required"`
}

// CreateMatchRule creates a new match rule.
func CreateMatchRule(c *gin.Context) {
	var data MatchRuleEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	rule := models.MatchRule{
		Priority:   data.Priority,
		Match:      data.Match,
		Expression: data.Expression,
	}

	err := models.DB.Create(&rule).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": rule})
}

// GetMatchRules returns all match rules in priority order.
func GetMatchRules(c *gin.Context) {
	rules, err := models.MatchRules(models.DB)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rules})
}

// GetMatchRule returns a specific match rule.
func GetMatchRule(c *gin.Context) {
	var rule models.MatchRule
	if !fetch(c, &rule) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rule})
}

// UpdateMatchRule updates an existing match rule.
func UpdateMatchRule(c *gin.Context) {
	var rule models.MatchRule
	if !fetch(c, &rule) {
		return
	}

	var data struct {
		Priority   *uint   `json:"priority"`
		Match      *string `json:"match"`
		Expression *string `json:"expression"`
	}
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	updates := map[string]any{}
	if data.Priority != nil {
		rule.Priority = *data.Priority
		updates["priority"] = *data.Priority
	}
	if data.Match != nil {
		rule.Match = *data.Match
		updates["match"] = *data.Match
	}
	if data.Expression != nil {
		rule.Expression = *data.Expression
		updates["expression"] = *data.Expression
	}

	err := models.DB.Model(&rule).Updates(updates).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rule})
}

// DeleteMatchRule deletes an existing match rule.
func DeleteMatchRule(c *gin.Context) {
	var rule models.MatchRule
	if !fetch(c, &rule) {
		return
	}

	err := models.DB.Delete(&rule).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
