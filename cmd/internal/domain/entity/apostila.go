package entity

// ApostilaRecolhida is a workbook collected from an aluno for the AH correction
// program. Names are copied at creation so the queue renders without joins.
//
// Rows are never deleted: the undo operations only reset the flags.
type ApostilaRecolhida struct {
	ID             int64  `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID      int64  `gorm:"not null;index"`
	AlunoID        int64  `gorm:"not null;index"`
	TurmaID        *int64 `gorm:"index"`
	ProfessorID    *int64 `gorm:"index"`
	Apostila       string `gorm:"not null"`
	DataEntrega    string `gorm:"not null;default:''"`
	Entregue       bool   `gorm:"not null;default:false"`
	TotalCorrecoes int    `gorm:"not null;default:0"`

	CorrecaoIniciada   bool  `gorm:"not null;default:false"`
	CorrecaoIniciadaEm int64 `gorm:"not null;default:0"`

	AlunoNome     string `gorm:"not null;default:''"`
	TurmaNome     string `gorm:"not null;default:''"`
	ProfessorNome string `gorm:"not null;default:''"`

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`
}
