package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/events"
	"secretaria/cmd/internal/domain/policy"
	"secretaria/cmd/internal/infrastructure/makewebhook"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type KanbanRepository interface {
	FindByID(id int64) (*entity.KanbanCard, error)
	FindByColumns(unidadeID int64, columns []entity.Column) ([]*entity.KanbanCard, error)
	UpdateColumn(id int64, column entity.Column, updatedAt int64) error
	Save(card *entity.KanbanCard) error
}

// RetentionNotifier delivers the retention webhook.
type RetentionNotifier interface {
	NotifyRetentionScheduled(ctx context.Context, payload *makewebhook.RetentionScheduled) error
}

type DefaultKanbanService struct {
	KanbanRepo  KanbanRepository
	Policy      *policy.KanbanPolicy
	Notifier    RetentionNotifier
	Broadcaster Broadcaster
	Validate    *validator.Validate
}

func NewKanbanService(
	repo KanbanRepository,
	notifier RetentionNotifier,
	broadcaster Broadcaster,
	validate *validator.Validate,
) *DefaultKanbanService {
	return &DefaultKanbanService{
		KanbanRepo:  repo,
		Policy:      policy.NewKanbanPolicy(),
		Notifier:    notifier,
		Broadcaster: broadcaster,
		Validate:    validate,
	}
}

func (k *DefaultKanbanService) GetBoard(actor *entity.User, modo string) (*contract.BoardResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, entity.PermissionViewBoard); err != nil {
		return nil, err
	}

	var columns []entity.Column
	switch modo {
	case "", contract.BoardModeActive:
		modo = contract.BoardModeActive
		columns = entity.ActiveColumns
	case contract.BoardModeHibernating:
		columns = entity.HibernatingColumns
	default:
		return nil, apierror.InvalidBoardModeError
	}

	cards, err := k.KanbanRepo.FindByColumns(actor.UnidadeID, columns)
	if err != nil {
		log.Errorf("failed to fetch kanban cards: %v", err)
		return nil, apierror.InternalServerError
	}

	byColumn := make(map[entity.Column]*contract.ColumnResponse, len(columns))
	board := &contract.BoardResponse{Modo: modo, Columns: make([]*contract.ColumnResponse, 0, len(columns))}
	for _, col := range columns {
		resp := &contract.ColumnResponse{ID: string(col), Title: col.Title(), Cards: []*contract.CardResponse{}}
		byColumn[col] = resp
		board.Columns = append(board.Columns, resp)
	}

	for _, card := range cards {
		if col, ok := byColumn[card.ColumnID]; ok {
			col.Cards = append(col.Cards, toCardResponse(card))
		}
	}
	return board, nil
}

func (k *DefaultKanbanService) GetCard(actor *entity.User, cardID int64) (*contract.CardResponse, apierror.ErrorResponse) {
	card, apierr := k.findCard(cardID)
	if apierr != nil {
		return nil, apierr
	}

	if apierr = k.Policy.CanSee(card, actor); apierr != nil {
		return nil, apierr
	}
	return toCardResponse(card), nil
}

// MoveCard handles a drop on the board. Rejected drops leave the card untouched.
func (k *DefaultKanbanService) MoveCard(actor *entity.User, cardID int64, req *contract.MoveCardRequest) (*contract.CardResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := k.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	card, apierr := k.findCard(cardID)
	if apierr != nil {
		return nil, apierr
	}

	target := entity.Column(req.ColumnID)
	decision, apierr := k.Policy.CanMove(card, target, actor)
	if apierr != nil {
		return nil, apierr
	}

	if decision == policy.MoveNoop {
		return toCardResponse(card), nil
	}

	from := card.ColumnID
	now := utils.NowUTC()
	if err := k.KanbanRepo.UpdateColumn(card.ID, target, now); err != nil {
		log.Errorf("failed to move card %d to %s: %v", card.ID, target, err)
		return nil, apierror.CardUpdateError
	}

	card.ColumnID = target
	card.UpdatedAt = now

	if target == entity.ColumnScheduled {
		go k.dispatchRetentionWebhook(retentionPayload(card))
	}
	go k.dispatchEvent(card.UnidadeID, &events.KanbanCardMoved{
		CardID: card.ID,
		From:   string(from),
		To:     string(target),
	})
	return toCardResponse(card), nil
}

// UpdateCard applies the fields that belong to the card's current variant.
// Fields of other variants are ignored.
func (k *DefaultKanbanService) UpdateCard(actor *entity.User, cardID int64, req *contract.UpdateCardRequest) (*contract.CardResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := k.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	card, apierr := k.findCard(cardID)
	if apierr != nil {
		return nil, apierr
	}

	if apierr = k.Policy.CanEdit(card, actor); apierr != nil {
		return nil, apierr
	}

	DetailsFor(card.Variant(), req).ApplyTo(card)
	card.UpdatedAt = utils.NowUTC()

	if err := k.KanbanRepo.Save(card); err != nil {
		log.Errorf("failed to update card %d: %v", card.ID, err)
		return nil, apierror.CardUpdateError
	}

	resp := toCardResponse(card)
	go k.dispatchEvent(card.UnidadeID, &events.KanbanCardUpdated{CardResponse: resp})
	return resp, nil
}

// FinalizeCard closes the card as evaded or retained. The card keeps its
// column, which is frozen from now on.
func (k *DefaultKanbanService) FinalizeCard(actor *entity.User, cardID int64, req *contract.FinalizeCardRequest) (*contract.CardResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := k.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	card, apierr := k.findCard(cardID)
	if apierr != nil {
		return nil, apierr
	}

	resultado := entity.Resultado(req.Resultado)
	if apierr = k.Policy.CanFinalize(card, resultado, actor); apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	card.Resultado = &resultado
	card.FinalizadoEm = now
	card.UpdatedAt = now
	DetailsFor(card.Variant(), &req.UpdateCardRequest).ApplyTo(card)

	if err := k.KanbanRepo.Save(card); err != nil {
		log.Errorf("failed to finalize card %d: %v", card.ID, err)
		return nil, apierror.CardUpdateError
	}

	resp := toCardResponse(card)
	go k.dispatchEvent(card.UnidadeID, &events.KanbanCardUpdated{CardResponse: resp})
	return resp, nil
}

// DetailsFor selects the editable fields of a variant out of the request.
func DetailsFor(variant entity.CardVariant, req *contract.UpdateCardRequest) entity.CardDetails {
	switch variant {
	case entity.VariantEvaded:
		return &entity.EvadedDetails{
			MotivoEvasao: req.MotivoEvasao,
			DataEvasao:   req.DataEvasao,
			Descricao:    req.Descricao,
		}
	case entity.VariantRetained:
		return &entity.RetainedDetails{
			AcordoRetencao:      req.AcordoRetencao,
			ObservacoesRetencao: req.ObservacoesRetencao,
			DataRetencao:        req.DataRetencao,
			Responsavel:         req.Responsavel,
		}
	default:
		return &entity.AlertDetails{
			Titulo:       req.Titulo,
			Descricao:    req.Descricao,
			Responsavel:  req.Responsavel,
			DataRetencao: req.DataRetencao,
			MotivoAlerta: req.MotivoAlerta,
			Tags:         req.Tags,
		}
	}
}

func (k *DefaultKanbanService) findCard(cardID int64) (*entity.KanbanCard, apierror.ErrorResponse) {
	card, err := k.KanbanRepo.FindByID(cardID)
	if err != nil {
		log.Errorf("failed to fetch card %d: %v", cardID, err)
		return nil, apierror.InternalServerError
	}

	if card == nil {
		return nil, apierror.NotFoundError
	}
	return card, nil
}

func (k *DefaultKanbanService) dispatchRetentionWebhook(payload *makewebhook.RetentionScheduled) {
	if k.Notifier == nil {
		return
	}

	err := k.Notifier.NotifyRetentionScheduled(context.Background(), payload)
	if err != nil {
		log.Errorf("failed to deliver retention webhook for card %d: %v", payload.CardID, err)
	}
}

func (k *DefaultKanbanService) dispatchEvent(unidadeID int64, evt events.SocketEvent) {
	if k.Broadcaster == nil {
		return
	}
	k.Broadcaster.BroadcastToUnidade(context.Background(), unidadeID, evt)
}

func retentionPayload(card *entity.KanbanCard) *makewebhook.RetentionScheduled {
	return &makewebhook.RetentionScheduled{
		CardID:       card.ID,
		Aluno:        card.AlunoNome,
		Descricao:    card.Descricao,
		DataRetencao: card.DataRetencao,
		Responsavel:  card.Responsavel,
	}
}
