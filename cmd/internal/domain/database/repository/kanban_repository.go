package repository

import (
	"errors"

	"gorm.io/gorm"

	"secretaria/cmd/internal/domain/entity"
)

type DefaultKanbanRepository struct {
	db *gorm.DB
}

func NewKanbanRepository(db *gorm.DB) *DefaultKanbanRepository {
	return &DefaultKanbanRepository{db: db}
}

func (k *DefaultKanbanRepository) FindByID(id int64) (*entity.KanbanCard, error) {
	var card entity.KanbanCard
	err := k.db.First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByColumns returns the unidade cards in the given columns, oldest first.
func (k *DefaultKanbanRepository) FindByColumns(unidadeID int64, columns []entity.Column) ([]*entity.KanbanCard, error) {
	var cards []*entity.KanbanCard
	err := k.db.
		Where("unidade_id = ? AND column_id IN ?", unidadeID, columns).
		Order("created_at ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// UpdateColumn writes only the column, leaving concurrent edits to other
// fields untouched.
func (k *DefaultKanbanRepository) UpdateColumn(id int64, column entity.Column, updatedAt int64) error {
	return k.db.Model(&entity.KanbanCard{}).
		Where("id = ?", id).
		Updates(map[string]any{"column_id": column, "updated_at": updatedAt}).Error
}

func (k *DefaultKanbanRepository) Save(card *entity.KanbanCard) error {
	return k.db.Save(card).Error
}
