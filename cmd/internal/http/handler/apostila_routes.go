package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type ApostilaService interface {
	List(actor *entity.User, q *contract.ApostilaQuery) (*contract.PageResponse[*contract.ApostilaResponse], apierror.ErrorResponse)
	Create(actor *entity.User, req *contract.CreateApostilaRequest) (*contract.ApostilaResponse, apierror.ErrorResponse)
	StartCorrection(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse)
	FinishCorrection(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse)
	ConfirmDelivery(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse)
	UndoStartCorrection(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse)
	UndoFinishCorrection(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse)
	UndoDelivery(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse)
}

// apostilaAction is one of the queue transitions, all shaped alike.
type apostilaAction func(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse)

type DefaultApostilaRoute struct {
	ApostilaService ApostilaService
}

func NewApostilaDefault(apostilaService ApostilaService) *DefaultApostilaRoute {
	return &DefaultApostilaRoute{ApostilaService: apostilaService}
}

func (a *DefaultApostilaRoute) List(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var q contract.ApostilaQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	page, apierr := a.ApostilaService.List(user, &q)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (a *DefaultApostilaRoute) Create(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateApostilaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	item, apierr := a.ApostilaService.Create(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, item)
}

func (a *DefaultApostilaRoute) StartCorrection(c echo.Context) error {
	return a.transition(c, a.ApostilaService.StartCorrection)
}

func (a *DefaultApostilaRoute) FinishCorrection(c echo.Context) error {
	return a.transition(c, a.ApostilaService.FinishCorrection)
}

func (a *DefaultApostilaRoute) ConfirmDelivery(c echo.Context) error {
	return a.transition(c, a.ApostilaService.ConfirmDelivery)
}

func (a *DefaultApostilaRoute) UndoStartCorrection(c echo.Context) error {
	return a.transition(c, a.ApostilaService.UndoStartCorrection)
}

func (a *DefaultApostilaRoute) UndoFinishCorrection(c echo.Context) error {
	return a.transition(c, a.ApostilaService.UndoFinishCorrection)
}

func (a *DefaultApostilaRoute) UndoDelivery(c echo.Context) error {
	return a.transition(c, a.ApostilaService.UndoDelivery)
}

func (a *DefaultApostilaRoute) transition(c echo.Context, action apostilaAction) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	item, apierr := action(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, item)
}
