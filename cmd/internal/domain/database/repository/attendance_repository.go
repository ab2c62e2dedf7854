package repository

import (
	"gorm.io/gorm"

	"secretaria/cmd/internal/domain/entity"
)

// DefaultAttendanceRepository covers presencas and reposicoes.
type DefaultAttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *DefaultAttendanceRepository {
	return &DefaultAttendanceRepository{db: db}
}

// FindByAluno returns the attendance records of an aluno in chronological order.
func (a *DefaultAttendanceRepository) FindByAluno(alunoID int64) ([]*entity.Presenca, error) {
	var records []*entity.Presenca
	err := a.db.
		Where("aluno_id = ?", alunoID).
		Order("data ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *DefaultAttendanceRepository) SavePresenca(p *entity.Presenca) error {
	return a.db.Save(p).Error
}

func (a *DefaultAttendanceRepository) SaveReposicao(r *entity.Reposicao) error {
	return a.db.Save(r).Error
}

func (a *DefaultAttendanceRepository) FindReposicoes(alunoID int64) ([]*entity.Reposicao, error) {
	var reps []*entity.Reposicao
	err := a.db.
		Where("aluno_id = ?", alunoID).
		Order("data ASC").
		Find(&reps).Error
	if err != nil {
		return nil, err
	}
	return reps, nil
}
