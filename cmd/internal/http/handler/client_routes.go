package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type ClientService interface {
	List(actor *entity.User, q *contract.ClientQuery) (*contract.PageResponse[*contract.ClientResponse], apierror.ErrorResponse)
	Get(actor *entity.User, id int64) (*contract.ClientResponse, apierror.ErrorResponse)
	Update(actor *entity.User, id int64, req *contract.UpdateClientRequest) (*contract.ClientResponse, apierror.ErrorResponse)
	Reset(actor *entity.User, id int64) (*contract.ClientResponse, apierror.ErrorResponse)
	Delete(actor *entity.User, id int64) apierror.ErrorResponse
}

type DefaultClientRoute struct {
	ClientService ClientService
}

func NewClientDefault(clientService ClientService) *DefaultClientRoute {
	return &DefaultClientRoute{ClientService: clientService}
}

func (r *DefaultClientRoute) List(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var q contract.ClientQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	page, apierr := r.ClientService.List(user, &q)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (r *DefaultClientRoute) Get(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	client, apierr := r.ClientService.Get(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, client)
}

func (r *DefaultClientRoute) Update(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	client, apierr := r.ClientService.Update(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, client)
}

func (r *DefaultClientRoute) Reset(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	client, apierr := r.ClientService.Reset(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, client)
}

func (r *DefaultClientRoute) Delete(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr = r.ClientService.Delete(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
