package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils/apierror"
)

const (
	// ContextUserKey is where the auth middleware stores the resolved actor.
	ContextUserKey = "user"

	// ContextTokenKey holds the validated *TokenData of the request.
	ContextTokenKey = "token"
)

func GetUserFromContext(c echo.Context) (*entity.User, apierror.ErrorResponse) {
	val := c.Get(ContextUserKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil user from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	user, ok := val.(*entity.User)
	if !ok {
		log.Warnf("expected user type at '%s' context key, got %T", ContextUserKey, val)
		return nil, apierror.InternalServerError
	}
	return user, nil
}

// ParseIDParam reads a positive int64 path parameter.
func ParseIDParam(c echo.Context, name string) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.NewInvalidParamTypeError(name, "int64")
	}
	return id, nil
}
