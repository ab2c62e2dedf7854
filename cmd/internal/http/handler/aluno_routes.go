package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type AlunoService interface {
	List(actor *entity.User, q *contract.AlunoQuery) ([]*contract.AlunoResponse, apierror.ErrorResponse)
	Get(actor *entity.User, id int64) (*contract.AlunoResponse, apierror.ErrorResponse)
	UploadPhoto(actor *entity.User, id int64, fileHeader *multipart.FileHeader) (*contract.AlunoResponse, apierror.ErrorResponse)
	DeletePhoto(actor *entity.User, id int64) apierror.ErrorResponse
}

type TurmaService interface {
	ListTurmas(actor *entity.User) ([]*contract.TurmaResponse, apierror.ErrorResponse)
	MakeupDates(actor *entity.User, q *contract.MakeupDatesQuery) ([]*contract.MakeupDateResponse, apierror.ErrorResponse)
	CreateReposicao(actor *entity.User, alunoID int64, req *contract.CreateReposicaoRequest) (*contract.ReposicaoResponse, apierror.ErrorResponse)
}

type DefaultAlunoRoute struct {
	AlunoService AlunoService
	TurmaService TurmaService
}

func NewAlunoDefault(alunoService AlunoService, turmaService TurmaService) *DefaultAlunoRoute {
	return &DefaultAlunoRoute{
		AlunoService: alunoService,
		TurmaService: turmaService,
	}
}

func (a *DefaultAlunoRoute) List(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var q contract.AlunoQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("turma_id", "int64"))
	}

	alunos, apierr := a.AlunoService.List(user, &q)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"alunos": alunos}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAlunoRoute) Get(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	aluno, apierr := a.AlunoService.Get(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, aluno)
}

func (a *DefaultAlunoRoute) UploadPhoto(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	fileHeader, err := c.FormFile("foto")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingPhotoFileError)
	}

	aluno, apierr := a.AlunoService.UploadPhoto(user, id, fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, aluno)
}

func (a *DefaultAlunoRoute) DeletePhoto(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr = a.AlunoService.DeletePhoto(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *DefaultAlunoRoute) ListTurmas(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	turmas, apierr := a.TurmaService.ListTurmas(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"turmas": turmas}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAlunoRoute) MakeupDates(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var q contract.MakeupDatesQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("dias", "int"))
	}

	dates, apierr := a.TurmaService.MakeupDates(user, &q)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"datas": dates}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAlunoRoute) CreateReposicao(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.CreateReposicaoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	rep, apierr := a.TurmaService.CreateReposicao(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, rep)
}
