package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type AlertService interface {
	ListAlerts(actor *entity.User) ([]*contract.AlertResponse, apierror.ErrorResponse)
	RunCheck(ctx context.Context, actor *entity.User) (*contract.AlertRunResponse, apierror.ErrorResponse)
}

type DefaultAlertRoute struct {
	AlertService AlertService
}

func NewAlertDefault(alertService AlertService) *DefaultAlertRoute {
	return &DefaultAlertRoute{AlertService: alertService}
}

func (a *DefaultAlertRoute) List(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	alerts, apierr := a.AlertService.ListAlerts(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"alertas": alerts}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAlertRoute) RunCheck(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	run, apierr := a.AlertService.RunCheck(c.Request().Context(), user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, run)
}
