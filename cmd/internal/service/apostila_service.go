package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/events"
	"secretaria/cmd/internal/domain/policy"
	"secretaria/cmd/internal/listing"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
	"secretaria/cmd/internal/utils/uid"
)

const (
	apostilaDefaultSort = "data_entrega"
	manageApostilas     = entity.PermissionManageApostilas
)

type ApostilaRepository interface {
	FindAllByUnidade(unidadeID int64) ([]*entity.ApostilaRecolhida, error)
	FindByID(id int64) (*entity.ApostilaRecolhida, error)
	Save(item *entity.ApostilaRecolhida) error
}

type AlunoRepository interface {
	FindAllByUnidade(unidadeID int64, turmaID *int64) ([]*entity.Aluno, error)
	FindActive() ([]*entity.Aluno, error)
	FindByID(id int64) (*entity.Aluno, error)
	Save(aluno *entity.Aluno) error
}

var apostilaSorts = map[string]listing.Comparator[*entity.ApostilaRecolhida]{
	"aluno":        listing.CompareStrings(func(a *entity.ApostilaRecolhida) string { return a.AlunoNome }),
	"apostila":     listing.CompareStrings(func(a *entity.ApostilaRecolhida) string { return a.Apostila }),
	"turma":        listing.CompareStrings(func(a *entity.ApostilaRecolhida) string { return a.TurmaNome }),
	"professor":    listing.CompareStrings(func(a *entity.ApostilaRecolhida) string { return a.ProfessorNome }),
	"data_entrega": listing.CompareDates(func(a *entity.ApostilaRecolhida) string { return a.DataEntrega }),
}

// apostilaStep mutates an item for one queue operation, or refuses it.
type apostilaStep func(item *entity.ApostilaRecolhida, now int64) apierror.ErrorResponse

type DefaultApostilaService struct {
	ApostilaRepo ApostilaRepository
	AlunoRepo    AlunoRepository
	Broadcaster  Broadcaster
	Validate     *validator.Validate
}

func NewApostilaService(
	repo ApostilaRepository,
	alunoRepo AlunoRepository,
	broadcaster Broadcaster,
	validate *validator.Validate,
) *DefaultApostilaService {
	return &DefaultApostilaService{
		ApostilaRepo: repo,
		AlunoRepo:    alunoRepo,
		Broadcaster:  broadcaster,
		Validate:     validate,
	}
}

func (s *DefaultApostilaService) List(actor *entity.User, q *contract.ApostilaQuery) (*contract.PageResponse[*contract.ApostilaResponse], apierror.ErrorResponse) {
	if err := policy.Require(actor, manageApostilas); err != nil {
		return nil, err
	}

	items, err := s.ApostilaRepo.FindAllByUnidade(actor.UnidadeID)
	if err != nil {
		log.Errorf("failed to fetch apostilas: %v", err)
		return nil, apierror.InternalServerError
	}

	sortKey := q.Sort
	cmp, ok := apostilaSorts[sortKey]
	if !ok {
		sortKey = apostilaDefaultSort
		cmp = apostilaSorts[sortKey]
	}
	dir := listing.ParseDirection(q.Dir, listing.Asc)

	page := listing.Apply(items, apostilaFilters(q), cmp, dir, q.Page, listing.DefaultPageSize)
	today := utils.Today()
	resp := mapPage(page, func(item *entity.ApostilaRecolhida) *contract.ApostilaResponse {
		return toApostilaResponse(item, today)
	})
	return contract.NewPageResponse(resp, sortKey, dir), nil
}

func apostilaFilters(q *contract.ApostilaQuery) []listing.Predicate[*entity.ApostilaRecolhida] {
	var turmaID, professorID *int64
	if q.TurmaID > 0 {
		turmaID = &q.TurmaID
	}
	if q.ProfessorID > 0 {
		professorID = &q.ProfessorID
	}

	return []listing.Predicate[*entity.ApostilaRecolhida]{
		listing.Contains(q.Busca,
			func(a *entity.ApostilaRecolhida) string { return a.AlunoNome },
			func(a *entity.ApostilaRecolhida) string { return a.Apostila },
			func(a *entity.ApostilaRecolhida) string { return a.TurmaNome },
			func(a *entity.ApostilaRecolhida) string { return a.ProfessorNome },
		),
		listing.Equals(turmaID, func(a *entity.ApostilaRecolhida) int64 { return derefID(a.TurmaID) }),
		listing.Equals(professorID, func(a *entity.ApostilaRecolhida) int64 { return derefID(a.ProfessorID) }),
		listing.Toggle(q.MostrarEntregues, func(a *entity.ApostilaRecolhida) bool { return a.Entregue }),
		listing.OnlyIf(q.SomenteEmCorrecao, func(a *entity.ApostilaRecolhida) bool { return a.CorrecaoIniciada }),
	}
}

// Create registers a collected workbook. Aluno, turma and professor names are
// copied from the aluno's current turma.
func (s *DefaultApostilaService) Create(actor *entity.User, req *contract.CreateApostilaRequest) (*contract.ApostilaResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, manageApostilas); err != nil {
		return nil, err
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	aluno, err := s.AlunoRepo.FindByID(req.AlunoID)
	if err != nil {
		log.Errorf("failed to fetch aluno %d: %v", req.AlunoID, err)
		return nil, apierror.InternalServerError
	}

	if aluno == nil || aluno.UnidadeID != actor.UnidadeID {
		return nil, apierror.NotFoundError
	}

	now := utils.NowUTC()
	item := NewApostilaRecolhida(aluno, req.Apostila, req.DataEntrega, now)
	if err = s.ApostilaRepo.Save(item); err != nil {
		log.Errorf("failed to save apostila: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toApostilaResponse(item, utils.Today())
	go s.dispatchUpdate(item.UnidadeID, resp)
	return resp, nil
}

// NewApostilaRecolhida builds the queue row for aluno, denormalizing names.
func NewApostilaRecolhida(aluno *entity.Aluno, apostila, dataEntrega string, now int64) *entity.ApostilaRecolhida {
	item := &entity.ApostilaRecolhida{
		ID:          uid.Generate(),
		UnidadeID:   aluno.UnidadeID,
		AlunoID:     aluno.ID,
		AlunoNome:   aluno.Nome,
		Apostila:    apostila,
		DataEntrega: dataEntrega,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if aluno.Turma != nil {
		item.TurmaID = &aluno.Turma.ID
		item.TurmaNome = aluno.Turma.Nome

		if prof := aluno.Turma.Professor; prof != nil {
			item.ProfessorID = &prof.ID
			item.ProfessorNome = prof.Nome
		}
	}
	return item
}

func (s *DefaultApostilaService) StartCorrection(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse) {
	return s.apply(actor, id, func(item *entity.ApostilaRecolhida, now int64) apierror.ErrorResponse {
		if item.Entregue {
			return apierror.AlreadyDeliveredError
		}
		if item.CorrecaoIniciada {
			return apierror.CorrectionAlreadyStartedError
		}

		item.CorrecaoIniciada = true
		item.CorrecaoIniciadaEm = now
		return nil
	})
}

func (s *DefaultApostilaService) FinishCorrection(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse) {
	return s.apply(actor, id, func(item *entity.ApostilaRecolhida, _ int64) apierror.ErrorResponse {
		if !item.CorrecaoIniciada {
			return apierror.CorrectionNotStartedError
		}

		item.CorrecaoIniciada = false
		item.CorrecaoIniciadaEm = 0
		item.TotalCorrecoes++
		return nil
	})
}

func (s *DefaultApostilaService) ConfirmDelivery(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse) {
	return s.apply(actor, id, func(item *entity.ApostilaRecolhida, _ int64) apierror.ErrorResponse {
		if item.Entregue {
			return apierror.AlreadyDeliveredError
		}
		if item.CorrecaoIniciada {
			return apierror.CorrectionInProgressError
		}

		item.Entregue = true
		return nil
	})
}

func (s *DefaultApostilaService) UndoStartCorrection(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse) {
	return s.apply(actor, id, func(item *entity.ApostilaRecolhida, _ int64) apierror.ErrorResponse {
		if !item.CorrecaoIniciada {
			return apierror.CorrectionNotStartedError
		}

		item.CorrecaoIniciada = false
		item.CorrecaoIniciadaEm = 0
		return nil
	})
}

// UndoFinishCorrection takes one correction back. The count never goes below zero.
func (s *DefaultApostilaService) UndoFinishCorrection(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse) {
	return s.apply(actor, id, func(item *entity.ApostilaRecolhida, _ int64) apierror.ErrorResponse {
		if item.TotalCorrecoes <= 0 {
			return apierror.NoCorrectionsError
		}

		item.TotalCorrecoes--
		return nil
	})
}

func (s *DefaultApostilaService) UndoDelivery(actor *entity.User, id int64) (*contract.ApostilaResponse, apierror.ErrorResponse) {
	return s.apply(actor, id, func(item *entity.ApostilaRecolhida, _ int64) apierror.ErrorResponse {
		if !item.Entregue {
			return apierror.NotDeliveredError
		}

		item.Entregue = false
		return nil
	})
}

func (s *DefaultApostilaService) apply(actor *entity.User, id int64, step apostilaStep) (*contract.ApostilaResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, manageApostilas); err != nil {
		return nil, err
	}

	item, err := s.ApostilaRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch apostila %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if item == nil {
		return nil, apierror.NotFoundError
	}

	if apierr := policy.SameUnidade(actor, item.UnidadeID); apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	if apierr := step(item, now); apierr != nil {
		return nil, apierr
	}

	item.UpdatedAt = now
	if err = s.ApostilaRepo.Save(item); err != nil {
		log.Errorf("failed to update apostila %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	resp := toApostilaResponse(item, utils.Today())
	go s.dispatchUpdate(item.UnidadeID, resp)
	return resp, nil
}

func (s *DefaultApostilaService) dispatchUpdate(unidadeID int64, resp *contract.ApostilaResponse) {
	if s.Broadcaster == nil {
		return
	}
	s.Broadcaster.BroadcastToUnidade(context.Background(), unidadeID, &events.ApostilaUpdated{ApostilaResponse: resp})
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
