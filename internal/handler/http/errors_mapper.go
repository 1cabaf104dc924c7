package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-toggle-sync/internal/app"
	"github.com/MKhiriev/go-toggle-sync/internal/engine"
	"github.com/MKhiriev/go-toggle-sync/internal/validators"
)

type errorResponse struct {
	status  int
	message string
}

var errorResponseMap = map[error]errorResponse{
	ErrEntityNotTracked:   {http.StatusNotFound, app.MsgEntityNotTracked},
	ErrInvalidRequestBody: {http.StatusBadRequest, app.MsgInvalidDataProvided},

	validators.ErrEmptyEntityID:   {http.StatusBadRequest, app.MsgEmptyEntityID},
	validators.ErrEntityIDTooLong: {http.StatusBadRequest, app.MsgInvalidEntityID},
	validators.ErrInvalidEntityID: {http.StatusBadRequest, app.MsgInvalidEntityID},
	validators.ErrNegativeCount:   {http.StatusBadRequest, app.MsgNegativeCount},

	engine.ErrEmptyEntityID:   {http.StatusBadRequest, app.MsgEmptyEntityID},
	engine.ErrUnauthenticated: {http.StatusUnauthorized, app.MsgUnauthenticated},
	engine.ErrBlocked:         {http.StatusForbidden, app.MsgActorBlocked},
	engine.ErrRateLimited:     {http.StatusTooManyRequests, app.MsgRateLimited},
	engine.ErrEngineClosed:    {http.StatusServiceUnavailable, app.MsgEngineClosed},
}

// responseFromError returns the status code and client message for err.
// Unknown errors are reported as internal server errors without details.
func responseFromError(err error) (int, string) {
	for target, resp := range errorResponseMap {
		if errors.Is(err, target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}
