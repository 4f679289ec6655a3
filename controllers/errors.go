package controllers

import (
	"errors"
	"log"
	"net/http"

	"orders-api/models"
	"orders-api/repositories"
	"orders-api/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the public error classes. Anything
// unrecognised is treated as a store failure: logged in full, returned as a
// generic 500.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: validationErr.Message,
			Error:   models.ErrClassValidation,
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Message: "Invalid email or password",
			Error:   models.ErrClassAuthentication,
		})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Resource not found",
			Error:   models.ErrClassNotFound,
		})
	default:
		log.Printf("request failed method=%s path=%s request_id=%s err=%v",
			c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Internal server error",
			Error:   models.ErrClassStore,
		})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request body: " + err.Error(),
		Error:   models.ErrClassValidation,
	})
}
