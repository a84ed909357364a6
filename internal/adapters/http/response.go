package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/ports"
)

// StatusFor maps an action outcome to its HTTP status code
func StatusFor(outcome ports.Outcome) int {
	switch outcome {
	case ports.OutcomeOK:
		return http.StatusOK
	case ports.OutcomeValidation:
		return http.StatusBadRequest
	case ports.OutcomeNotFound:
		return http.StatusNotFound
	case ports.OutcomeConflict:
		return http.StatusConflict
	case ports.OutcomeRejected:
		return http.StatusUnauthorized
	case ports.OutcomeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeResult(c echo.Context, res *ports.ActionResult) error {
	return c.JSON(StatusFor(res.Outcome), res)
}

func badRequest(c echo.Context) error {
	return writeResult(c, ports.Failed(ports.OutcomeValidation, msgInvalidRequest))
}

// lookupFailed renders a failed read as an envelope. Anything other than the
// expected not-found error is logged and hidden behind the generic message.
func lookupFailed(c echo.Context, log *logger.Logger, err, notFound error, msg string, fields ...interface{}) error {
	if errors.Is(err, notFound) {
		return writeResult(c, ports.Failed(ports.OutcomeNotFound, msg))
	}

	kv := append([]interface{}{"error", err, "path", c.Path()}, fields...)
	log.Errorw("Read failed", kv...)
	return writeResult(c, ports.Failed(ports.OutcomeStorage, ports.MsgGenericFailure))
}

func currentSubject(c echo.Context) string {
	subject, _ := c.Get(ContextKeySubject).(string)
	return subject
}

func currentRole(c echo.Context) entities.Role {
	role, _ := c.Get(ContextKeyRole).(entities.Role)
	return role
}
