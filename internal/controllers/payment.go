package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kalekundert/two-cents/internal/httputil"
	"github.com/kalekundert/two-cents/internal/models"
)

// RegisterPaymentRoutes registers the routes for payments with
// the RouterGroup that is passed.
//
// Payments are created by the bank feed, never through this API, and they
// are never deleted. There is also no route to clear an assignment:
// reassigning always names a new destination.
func RegisterPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", GetPayments)
	}

	// Payment with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGet)
		r.GET("/:id", GetPayment)
		r.OPTIONS("/:id/assign", httputil.OptionsPost)
		r.POST("/:id/assign", AssignPayment)
		r.OPTIONS("/:id/ignore", httputil.OptionsPost)
		r.POST("/:id/ignore", IgnorePayment)
	}
}

// GetPayments returns payments. With ?unassigned=true only the payments
// still waiting for the user are returned, in feed order.
func GetPayments(c *gin.Context) {
	var payments []models.Payment
	var err error

	if c.Query("unassigned") == "true" {
		payments, err = models.UnassignedPayments(models.DB)
	} else {
		err = models.DB.Order("date ASC, created_at ASC").Find(&payments).Error
	}

	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

// GetPayment returns a specific payment together with the value that is
// still eligible for (re)allocation.
func GetPayment(c *gin.Context) {
	var payment models.Payment
	if !fetch(c, &payment) {
		return
	}

	assignable, err := payment.AssignableValue(models.DB)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":            payment,
		"assignableValue": assignable,
	})
}

// AssignPayment splits the payment across the budgets named in the
// expression from the request body. Reassignment reverses the previous
// allocation first; the operation is all-or-nothing.
func AssignPayment(c *gin.Context) {
	var payment models.Payment
	if !fetch(c, &payment) {
		return
	}

	var data struct {
		Expression string `json:"expression" binding:"required"`
	}
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	err := payment.Assign(models.DB, data.Expression)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payment})
}

// IgnorePayment drops an unassigned payment from the unassigned queue
// without allocating it to any budget.
func IgnorePayment(c *gin.Context) {
	var payment models.Payment
	if !fetch(c, &payment) {
		return
	}

	err := payment.Ignore(models.DB)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payment})
}
