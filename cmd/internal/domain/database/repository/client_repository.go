package repository

import (
	"errors"

	"gorm.io/gorm"

	"secretaria/cmd/internal/domain/entity"
)

type DefaultClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *DefaultClientRepository {
	return &DefaultClientRepository{db: db}
}

// FindAllByUnidade includes soft-deleted leads; visibility is a list filter.
func (c *DefaultClientRepository) FindAllByUnidade(unidadeID int64) ([]*entity.Client, error) {
	var clients []*entity.Client
	err := c.db.Where("unidade_id = ?", unidadeID).Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *DefaultClientRepository) FindByID(id int64) (*entity.Client, error) {
	var client entity.Client
	err := c.db.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *DefaultClientRepository) Save(client *entity.Client) error {
	return c.db.Save(client).Error
}
