package repository

import (
	"errors"

	"gorm.io/gorm"

	"secretaria/cmd/internal/domain/entity"
)

type DefaultAlunoRepository struct {
	db *gorm.DB
}

func NewAlunoRepository(db *gorm.DB) *DefaultAlunoRepository {
	return &DefaultAlunoRepository{db: db}
}

// FindAllByUnidade lists the unidade alunos by name, optionally only the ones of a turma.
func (a *DefaultAlunoRepository) FindAllByUnidade(unidadeID int64, turmaID *int64) ([]*entity.Aluno, error) {
	query := a.db.Preload("Turma").Preload("Turma.Professor").Where("unidade_id = ?", unidadeID)
	if turmaID != nil {
		query = query.Where("turma_id = ?", *turmaID)
	}

	var alunos []*entity.Aluno
	err := query.Order("nome ASC").Find(&alunos).Error
	if err != nil {
		return nil, err
	}
	return alunos, nil
}

// FindActive returns the active alunos of every unidade.
func (a *DefaultAlunoRepository) FindActive() ([]*entity.Aluno, error) {
	var alunos []*entity.Aluno
	err := a.db.Where("ativo = ?", true).Find(&alunos).Error
	if err != nil {
		return nil, err
	}
	return alunos, nil
}

func (a *DefaultAlunoRepository) FindByID(id int64) (*entity.Aluno, error) {
	var aluno entity.Aluno
	err := a.db.Preload("Turma").Preload("Turma.Professor").First(&aluno, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &aluno, nil
}

func (a *DefaultAlunoRepository) Save(aluno *entity.Aluno) error {
	return a.db.Omit("Turma").Save(aluno).Error
}
