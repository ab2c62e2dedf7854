package repository

import (
	"errors"

	"gorm.io/gorm"

	"secretaria/cmd/internal/domain/entity"
)

type DefaultAlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *DefaultAlertRepository {
	return &DefaultAlertRepository{db: db}
}

func (a *DefaultAlertRepository) Exists(alunoID int64, tipo entity.AlertType, dataReferencia string) (bool, error) {
	var count int64
	err := a.db.Model(&entity.AlertaFalta{}).
		Where("aluno_id = ? AND tipo = ? AND data_referencia = ?", alunoID, tipo, dataReferencia).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateWithCard inserts the alert and its kanban card atomically. It
// returns false, with nothing written, when the same alert already exists.
func (a *DefaultAlertRepository) CreateWithCard(alert *entity.AlertaFalta, card *entity.KanbanCard) (bool, error) {
	err := a.db.Transaction(func(tx *gorm.DB) error {
		alert.KanbanCardID = &card.ID
		card.AlertaID = &alert.ID

		if err := tx.Create(card).Error; err != nil {
			return err
		}
		return tx.Create(alert).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (a *DefaultAlertRepository) MarkNotified(id int64) error {
	return a.db.Model(&entity.AlertaFalta{}).
		Where("id = ?", id).
		Update("notificado", true).Error
}

func (a *DefaultAlertRepository) FindAllByUnidade(unidadeID int64) ([]*entity.AlertaFalta, error) {
	var alerts []*entity.AlertaFalta
	err := a.db.
		Where("unidade_id = ?", unidadeID).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
