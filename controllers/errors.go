package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FlashgoKless/vsm-restaurant/services"
	"github.com/FlashgoKless/vsm-restaurant/utils"
)

// respondServiceError maps the services error taxonomy onto HTTP codes.
// Anything unrecognized is an infrastructure failure and surfaces as 500.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var validation *services.ValidationError
	var unavailable *services.UnavailableError
	var insufficient *services.InsufficientStockError
	var transition *services.InvalidTransitionError

	switch {
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &validation):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &unavailable):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":              false,
			"message":             err.Error(),
			"missing_ingredients": insufficient.Missing,
		})
	case errors.As(err, &transition):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.ErrorLogger.Printf("internal error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
