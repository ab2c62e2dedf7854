package repository

import (
	"errors"

	"gorm.io/gorm"

	"secretaria/cmd/internal/domain/entity"
)

// DefaultSchoolRepository reads the school structure: unidades, professores
// and turmas. These tables are maintained by the secretaria staff elsewhere.
type DefaultSchoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *DefaultSchoolRepository {
	return &DefaultSchoolRepository{db: db}
}

func (s *DefaultSchoolRepository) FindUnidades() ([]*entity.Unidade, error) {
	var unidades []*entity.Unidade
	err := s.db.Order("nome ASC").Find(&unidades).Error
	if err != nil {
		return nil, err
	}
	return unidades, nil
}

func (s *DefaultSchoolRepository) FindTurmas(unidadeID int64) ([]*entity.Turma, error) {
	var turmas []*entity.Turma
	err := s.db.
		Preload("Professor").
		Where("unidade_id = ?", unidadeID).
		Order("dia_semana ASC, horario ASC, nome ASC").
		Find(&turmas).Error
	if err != nil {
		return nil, err
	}
	return turmas, nil
}

func (s *DefaultSchoolRepository) FindTurmaByID(id int64) (*entity.Turma, error) {
	var turma entity.Turma
	err := s.db.Preload("Professor").First(&turma, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &turma, nil
}
