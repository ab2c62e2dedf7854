package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/infrastructure/reporting"
	"secretaria/cmd/internal/utils"
)

// NewReportMiddleware forwards server errors to the error tracker, along with
// the route and the acting user when known.
func NewReportMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			if status < http.StatusInternalServerError {
				return nil
			}

			actor, _ := c.Get(utils.ContextUserKey).(*entity.User)
			if err == nil {
				err = fmt.Errorf("%s %s responded %d", c.Request().Method, c.Path(), status)
			}

			reporting.Error(err, map[string]any{
				"method": c.Request().Method,
				"route":  c.Path(),
				"status": status,
			}, actor)
			return nil
		}
	}
}
