package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"github.com/Abdullah4Jovera/crm_backend/services"
)

// serviceError translates a service-layer error into the standard response
// envelope, mapping the error kind to an HTTP status. Store failures get a
// generic message so internals never leak to clients.
func serviceError(c echo.Context, err error) error {
	status := services.HTTPStatus(err)

	message := "internal server error"
	var de *services.DomainError
	if errors.As(err, &de) && de.Kind != services.KindStore {
		message = de.Message
	}
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	return c.JSON(status, models.Response{
		Status:  status,
		Message: message,
	})
}
