package policy

import (
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils/apierror"
)

const (
	viewBoard     = entity.PermissionViewBoard
	moveCards     = entity.PermissionMoveCards
	editCards     = entity.PermissionEditCards
	finalizeCards = entity.PermissionFinalizeCards
)

// MoveDecision tells the caller what to do with an accepted drop.
type MoveDecision int

const (
	// MoveApply means the column must be persisted.
	MoveApply MoveDecision = iota

	// MoveNoop means the card was dropped on its own column.
	MoveNoop
)

// KanbanPolicy encapsulates all business rules for the pedagogical board.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type KanbanPolicy struct{}

func NewKanbanPolicy() *KanbanPolicy {
	return &KanbanPolicy{}
}

func (p *KanbanPolicy) CanSee(card *entity.KanbanCard, actor *entity.User) apierror.ErrorResponse {
	if err := Require(actor, viewBoard); err != nil {
		return err
	}
	return visible(card, actor)
}

// CanMove runs the drop guard for moving 'card' into 'target'.
//
// Rules, in order:
//
// 1. The target must be a known column.
//
// 2. Dropping on the current column changes nothing.
//
// 3. A finalized card is frozen.
//
// 4. Retention cannot be scheduled without a retention date.
func (p *KanbanPolicy) CanMove(card *entity.KanbanCard, target entity.Column, actor *entity.User) (MoveDecision, apierror.ErrorResponse) {
	if err := Require(actor, moveCards); err != nil {
		return MoveNoop, err
	}

	if err := visible(card, actor); err != nil {
		return MoveNoop, err
	}
	return CheckTransition(card, target)
}

// CheckTransition is the column guard alone, without permission checks.
func CheckTransition(card *entity.KanbanCard, target entity.Column) (MoveDecision, apierror.ErrorResponse) {
	// a finalized card rejects every drop, even onto its own column
	if card.IsFinalized() {
		return MoveNoop, apierror.CardFinalizedError
	}

	if !target.IsValid() {
		return MoveNoop, apierror.UnknownColumnError
	}

	if card.ColumnID == target {
		return MoveNoop, nil
	}

	if target == entity.ColumnScheduled && !card.HasRetentionDate() {
		return MoveNoop, apierror.RetentionDateRequiredError
	}
	return MoveApply, nil
}

func (p *KanbanPolicy) CanEdit(card *entity.KanbanCard, actor *entity.User) apierror.ErrorResponse {
	if err := Require(actor, editCards); err != nil {
		return err
	}
	return visible(card, actor)
}

func (p *KanbanPolicy) CanFinalize(card *entity.KanbanCard, resultado entity.Resultado, actor *entity.User) apierror.ErrorResponse {
	if err := Require(actor, finalizeCards); err != nil {
		return err
	}

	if err := visible(card, actor); err != nil {
		return err
	}

	if card.IsFinalized() {
		return apierror.CardAlreadyFinalizedError
	}

	if !resultado.IsValid() {
		return apierror.InvalidResultadoError
	}
	return nil
}

func visible(card *entity.KanbanCard, actor *entity.User) apierror.ErrorResponse {
	if card == nil {
		return apierror.NotFoundError
	}
	return SameUnidade(actor, card.UnidadeID)
}
