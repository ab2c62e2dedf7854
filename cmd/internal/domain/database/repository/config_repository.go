package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"secretaria/cmd/internal/domain/entity"
)

type DefaultConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *DefaultConfigRepository {
	return &DefaultConfigRepository{db: db}
}

// Get returns the value stored under key, or "" when the key is absent.
func (c *DefaultConfigRepository) Get(key string) (string, error) {
	var cfg entity.Configuracao
	err := c.db.Where("chave = ?", key).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}

	if err != nil {
		return "", err
	}
	return cfg.Valor, nil
}

func (c *DefaultConfigRepository) Set(key, value string) error {
	return c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor"}),
	}).Create(&entity.Configuracao{Chave: key, Valor: value}).Error
}
