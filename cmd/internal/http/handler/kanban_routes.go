package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type KanbanService interface {
	GetBoard(actor *entity.User, modo string) (*contract.BoardResponse, apierror.ErrorResponse)
	GetCard(actor *entity.User, cardID int64) (*contract.CardResponse, apierror.ErrorResponse)
	MoveCard(actor *entity.User, cardID int64, req *contract.MoveCardRequest) (*contract.CardResponse, apierror.ErrorResponse)
	UpdateCard(actor *entity.User, cardID int64, req *contract.UpdateCardRequest) (*contract.CardResponse, apierror.ErrorResponse)
	FinalizeCard(actor *entity.User, cardID int64, req *contract.FinalizeCardRequest) (*contract.CardResponse, apierror.ErrorResponse)
}

type DefaultKanbanRoute struct {
	KanbanService KanbanService
}

func NewKanbanDefault(kanbanService KanbanService) *DefaultKanbanRoute {
	return &DefaultKanbanRoute{KanbanService: kanbanService}
}

func (k *DefaultKanbanRoute) GetBoard(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var q contract.BoardQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	board, apierr := k.KanbanService.GetBoard(user, q.Modo)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, board)
}

func (k *DefaultKanbanRoute) GetCard(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	card, apierr := k.KanbanService.GetCard(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, card)
}

func (k *DefaultKanbanRoute) MoveCard(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.MoveCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	card, apierr := k.KanbanService.MoveCard(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, card)
}

func (k *DefaultKanbanRoute) UpdateCard(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.UpdateCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	card, apierr := k.KanbanService.UpdateCard(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, card)
}

func (k *DefaultKanbanRoute) FinalizeCard(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.FinalizeCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	card, apierr := k.KanbanService.FinalizeCard(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, card)
}
