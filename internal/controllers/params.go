package controllers

import (
	"net/http"

	apperrors "hospital-maintenance/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// parseIDParam validates that the named path parameter is a UUID before it
// reaches the database.
func parseIDParam(ctx echo.Context, name string) (string, error) {
	raw := ctx.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperrors.NewHttpError(
			http.StatusBadRequest,
			"invalid identifier",
			err,
			map[string]interface{}{"param": name, "value": raw},
		)
	}
	return raw, nil
}
