package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils/apierror"
)

func ptr[T any](v T) *T {
	return &v
}

func staff(perms entity.Permission) *entity.User {
	return &entity.User{ID: 1, UnidadeID: 7, Permissions: perms, Active: true}
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name     string
		card     entity.KanbanCard
		target   entity.Column
		decision MoveDecision
		err      apierror.ErrorResponse
	}{
		{
			name:     "moves open card between columns",
			card:     entity.KanbanCard{ColumnID: entity.ColumnCreated},
			target:   entity.ColumnNegotiating,
			decision: MoveApply,
		},
		{
			name:   "rejects finalized card",
			card:   entity.KanbanCard{ColumnID: entity.ColumnNegotiating, Resultado: ptr(entity.ResultadoRetido)},
			target: entity.ColumnDone,
			err:    apierror.CardFinalizedError,
		},
		{
			name:   "finalized check wins over missing retention date",
			card:   entity.KanbanCard{ColumnID: entity.ColumnCreated, Resultado: ptr(entity.ResultadoEvadiu)},
			target: entity.ColumnScheduled,
			err:    apierror.CardFinalizedError,
		},
		{
			name:   "requires retention date to schedule",
			card:   entity.KanbanCard{ColumnID: entity.ColumnNegotiating},
			target: entity.ColumnScheduled,
			err:    apierror.RetentionDateRequiredError,
		},
		{
			name:     "schedules with retention date",
			card:     entity.KanbanCard{ColumnID: entity.ColumnNegotiating, DataRetencao: "2025-05-02"},
			target:   entity.ColumnScheduled,
			decision: MoveApply,
		},
		{
			name:   "rejects finalized card dropped on its own column",
			card:   entity.KanbanCard{ColumnID: entity.ColumnNegotiating, Resultado: ptr(entity.ResultadoRetido)},
			target: entity.ColumnNegotiating,
			err:    apierror.CardFinalizedError,
		},
		{
			name:   "finalized check wins over unknown column",
			card:   entity.KanbanCard{ColumnID: entity.ColumnDone, Resultado: ptr(entity.ResultadoEvadiu)},
			target: entity.Column("archived"),
			err:    apierror.CardFinalizedError,
		},
		{
			name:     "same column is a no-op",
			card:     entity.KanbanCard{ColumnID: entity.ColumnNegotiating},
			target:   entity.ColumnNegotiating,
			decision: MoveNoop,
		},
		{
			name:   "unknown column",
			card:   entity.KanbanCard{ColumnID: entity.ColumnCreated},
			target: entity.Column("archived"),
			err:    apierror.UnknownColumnError,
		},
		{
			name:     "hibernating is a valid target",
			card:     entity.KanbanCard{ColumnID: entity.ColumnCreated},
			target:   entity.ColumnHibernating,
			decision: MoveApply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := CheckTransition(&tt.card, tt.target)
			if tt.err != nil {
				assert.Equal(t, tt.err, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tt.decision, decision)
		})
	}
}

func TestCheckTransition_Statuses(t *testing.T) {
	_, err := CheckTransition(&entity.KanbanCard{ColumnID: entity.ColumnCreated, Resultado: ptr(entity.ResultadoEvadiu)}, entity.ColumnDone)
	assert.Equal(t, http.StatusConflict, err.Code())

	_, err = CheckTransition(&entity.KanbanCard{ColumnID: entity.ColumnCreated}, entity.ColumnScheduled)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code())
}

func TestKanbanPolicy_CanMove(t *testing.T) {
	p := NewKanbanPolicy()
	card := &entity.KanbanCard{UnidadeID: 7, ColumnID: entity.ColumnCreated}

	_, err := p.CanMove(card, entity.ColumnNegotiating, staff(entity.PermissionViewBoard))
	assert.Equal(t, http.StatusForbidden, err.Code())

	_, err = p.CanMove(card, entity.ColumnNegotiating, &entity.User{UnidadeID: 8, Permissions: entity.PermissionAdministrator})
	assert.Equal(t, apierror.NotFoundError, err)

	decision, err := p.CanMove(card, entity.ColumnNegotiating, staff(entity.PermissionMoveCards))
	assert.Nil(t, err)
	assert.Equal(t, MoveApply, decision)

	_, err = p.CanMove(nil, entity.ColumnNegotiating, staff(entity.PermissionAdministrator))
	assert.Equal(t, apierror.NotFoundError, err)
}

func TestKanbanPolicy_CanFinalize(t *testing.T) {
	p := NewKanbanPolicy()
	actor := staff(entity.PermissionFinalizeCards)

	open := &entity.KanbanCard{UnidadeID: 7, ColumnID: entity.ColumnNegotiating}
	assert.Nil(t, p.CanFinalize(open, entity.ResultadoRetido, actor))
	assert.Equal(t, apierror.InvalidResultadoError, p.CanFinalize(open, entity.Resultado("talvez"), actor))

	closed := &entity.KanbanCard{UnidadeID: 7, ColumnID: entity.ColumnDone, Resultado: ptr(entity.ResultadoEvadiu)}
	assert.Equal(t, apierror.CardAlreadyFinalizedError, p.CanFinalize(closed, entity.ResultadoRetido, actor))

	err := p.CanFinalize(open, entity.ResultadoRetido, staff(entity.PermissionEditCards))
	assert.Equal(t, http.StatusForbidden, err.Code())
}

func TestKanbanPolicy_CanEdit(t *testing.T) {
	p := NewKanbanPolicy()
	card := &entity.KanbanCard{UnidadeID: 7}

	assert.Nil(t, p.CanEdit(card, staff(entity.PermissionEditCards)))
	assert.Nil(t, p.CanEdit(card, staff(entity.PermissionAdministrator)))
	assert.NotNil(t, p.CanEdit(card, staff(entity.PermissionViewBoard)))
}
