package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kalekundert/two-cents/internal/httputil"
	"github.com/kalekundert/two-cents/internal/models"
)

var errInvalidUUID = errors.New("the specified resource ID is not a valid UUID")

// fetch loads the resource the :id path parameter points to. On failure it
// writes the error response and reports false.
func fetch[T any](c *gin.Context, resource *T) bool {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, errInvalidUUID)
		return false
	}

	err = models.DB.First(resource, "id = ?", id).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return false
	}

	return true
}
