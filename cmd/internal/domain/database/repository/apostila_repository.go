package repository

import (
	"errors"

	"gorm.io/gorm"

	"secretaria/cmd/internal/domain/entity"
)

type DefaultApostilaRepository struct {
	db *gorm.DB
}

func NewApostilaRepository(db *gorm.DB) *DefaultApostilaRepository {
	return &DefaultApostilaRepository{db: db}
}

func (a *DefaultApostilaRepository) FindAllByUnidade(unidadeID int64) ([]*entity.ApostilaRecolhida, error) {
	var items []*entity.ApostilaRecolhida
	err := a.db.Where("unidade_id = ?", unidadeID).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (a *DefaultApostilaRepository) FindByID(id int64) (*entity.ApostilaRecolhida, error) {
	var item entity.ApostilaRecolhida
	err := a.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *DefaultApostilaRepository) Save(item *entity.ApostilaRecolhida) error {
	return a.db.Save(item).Error
}

// SaveAll inserts the batch in a single transaction.
func (a *DefaultApostilaRepository) SaveAll(items []*entity.ApostilaRecolhida) error {
	if len(items) == 0 {
		return nil
	}
	return a.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(items, 100).Error
	})
}
