package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/policy"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
	"secretaria/cmd/internal/utils/uid"
)

type SchoolRepository interface {
	FindUnidades() ([]*entity.Unidade, error)
	FindTurmas(unidadeID int64) ([]*entity.Turma, error)
	FindTurmaByID(id int64) (*entity.Turma, error)
}

type AttendanceRepository interface {
	FindByAluno(alunoID int64) ([]*entity.Presenca, error)
	SaveReposicao(r *entity.Reposicao) error
}

type DefaultTurmaService struct {
	SchoolRepo     SchoolRepository
	AlunoRepo      AlunoRepository
	AttendanceRepo AttendanceRepository
	Validate       *validator.Validate
}

func NewTurmaService(
	schoolRepo SchoolRepository,
	alunoRepo AlunoRepository,
	attendanceRepo AttendanceRepository,
	validate *validator.Validate,
) *DefaultTurmaService {
	return &DefaultTurmaService{
		SchoolRepo:     schoolRepo,
		AlunoRepo:      alunoRepo,
		AttendanceRepo: attendanceRepo,
		Validate:       validate,
	}
}

func (t *DefaultTurmaService) ListTurmas(actor *entity.User) ([]*contract.TurmaResponse, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	turmas, err := t.SchoolRepo.FindTurmas(actor.UnidadeID)
	if err != nil {
		log.Errorf("failed to fetch turmas: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.TurmaResponse, len(turmas))
	for i, turma := range turmas {
		resp[i] = toTurmaResponse(turma)
	}
	return resp, nil
}

// MakeupDates lists the days, starting today, on which the unidade has at
// least one turma, each with the turmas meeting that day.
func (t *DefaultTurmaService) MakeupDates(actor *entity.User, q *contract.MakeupDatesQuery) ([]*contract.MakeupDateResponse, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	if valerr := t.Validate.Struct(q); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	turmas, err := t.SchoolRepo.FindTurmas(actor.UnidadeID)
	if err != nil {
		log.Errorf("failed to fetch turmas: %v", err)
		return nil, apierror.InternalServerError
	}

	days := q.Dias
	if days <= 0 {
		days = contract.DefaultMakeupWindowDays
	}
	return MakeupCalendar(turmas, utils.Today(), days), nil
}

// MakeupCalendar groups turmas by the dates of the window [from, from+days).
func MakeupCalendar(turmas []*entity.Turma, from time.Time, days int) []*contract.MakeupDateResponse {
	byWeekday := make(map[time.Weekday][]*contract.TurmaResponse)
	for _, turma := range turmas {
		wd := time.Weekday(turma.DiaSemana)
		byWeekday[wd] = append(byWeekday[wd], toTurmaResponse(turma))
	}

	dates := []*contract.MakeupDateResponse{}
	for i := range days {
		day := from.AddDate(0, 0, i)
		list, ok := byWeekday[day.Weekday()]
		if !ok {
			continue
		}

		dates = append(dates, &contract.MakeupDateResponse{
			Data:      utils.FormatDate(day),
			DiaSemana: int(day.Weekday()),
			Turmas:    list,
		})
	}
	return dates
}

// CreateReposicao books a makeup class for an aluno in a turma of the same unidade.
func (t *DefaultTurmaService) CreateReposicao(actor *entity.User, alunoID int64, req *contract.CreateReposicaoRequest) (*contract.ReposicaoResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, entity.PermissionManageAlunos); err != nil {
		return nil, err
	}

	utils.Sanitize(req)
	if valerr := t.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	aluno, err := t.AlunoRepo.FindByID(alunoID)
	if err != nil {
		log.Errorf("failed to fetch aluno %d: %v", alunoID, err)
		return nil, apierror.InternalServerError
	}

	if aluno == nil {
		return nil, apierror.NotFoundError
	}

	if apierr := policy.SameUnidade(actor, aluno.UnidadeID); apierr != nil {
		return nil, apierr
	}

	turma, err := t.SchoolRepo.FindTurmaByID(req.TurmaID)
	if err != nil {
		log.Errorf("failed to fetch turma %d: %v", req.TurmaID, err)
		return nil, apierror.InternalServerError
	}

	if turma == nil || turma.UnidadeID != aluno.UnidadeID {
		return nil, apierror.NotFoundError
	}

	if apierr := checkMakeupDate(req.Data, turma); apierr != nil {
		return nil, apierr
	}

	rep := &entity.Reposicao{
		ID:        uid.Generate(),
		UnidadeID: aluno.UnidadeID,
		AlunoID:   aluno.ID,
		TurmaID:   turma.ID,
		Data:      req.Data,
		CreatedAt: utils.NowUTC(),
	}

	if err = t.AttendanceRepo.SaveReposicao(rep); err != nil {
		log.Errorf("failed to save reposicao for aluno %d: %v", aluno.ID, err)
		return nil, apierror.InternalServerError
	}
	return toReposicaoResponse(rep), nil
}

func checkMakeupDate(data string, turma *entity.Turma) apierror.ErrorResponse {
	day, ok := utils.ParseDate(data)
	if !ok {
		return apierror.NewInvalidParamTypeError("data", "date")
	}

	if day.Before(utils.Today()) {
		return apierror.MakeupDateInPastError
	}

	if int(day.Weekday()) != turma.DiaSemana {
		return apierror.MakeupWeekdayMismatchErr
	}
	return nil
}
