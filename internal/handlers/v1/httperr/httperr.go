// Package httperr translates service and viewer errors into huma API errors.
package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

// FromError returns a 400 for validation failures, a 404 for missing records and an empty
// export, and otherwise a 500 carrying message.
func FromError(err error, message string) error {
	var viewerValidation *viewer.ValidationError
	var serviceValidation *service.ValidationError

	switch {
	case errors.As(err, &viewerValidation):
		return huma.NewError(http.StatusBadRequest, viewerValidation.Message)
	case errors.As(err, &serviceValidation):
		return huma.NewError(http.StatusBadRequest, serviceValidation.Error())
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, "not found", err)
	case errors.Is(err, viewer.ErrNothingToExport):
		return huma.NewError(http.StatusNotFound, viewer.MsgNothingToExport)
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}
