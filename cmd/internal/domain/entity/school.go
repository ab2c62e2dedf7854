package entity

// DefaultUnidadeNome is used by the importer when a row does not name a known unidade.
const DefaultUnidadeNome = "Maringá"

type Unidade struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Nome string `gorm:"not null;uniqueIndex"`
}

type Professor struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID int64  `gorm:"not null;index"`
	Nome      string `gorm:"not null"`
}

// Turma meets once a week. DiaSemana follows time.Weekday (0 = domingo).
type Turma struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID   int64  `gorm:"not null;index"`
	Nome        string `gorm:"not null"`
	DiaSemana   int    `gorm:"not null"`
	Horario     string `gorm:"not null;default:''"`
	ProfessorID *int64 `gorm:"index"`

	Professor *Professor `gorm:"foreignKey:ProfessorID;references:ID"`
}

type Aluno struct {
	ID            int64   `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID     int64   `gorm:"not null;index;uniqueIndex:idx_aluno_unidade_codigo"`
	TurmaID       *int64  `gorm:"index"`
	Nome          string  `gorm:"not null"`
	Codigo        *string `gorm:"uniqueIndex:idx_aluno_unidade_codigo"`
	DataMatricula string  `gorm:"not null;default:''"`
	Ativo         bool    `gorm:"not null"`
	FotoKey       string  `gorm:"not null;default:''"`
	CreatedAt     int64   `gorm:"not null"`
	UpdatedAt     int64   `gorm:"not null;autoUpdateTime:false"`

	Turma *Turma `gorm:"foreignKey:TurmaID;references:ID"`
}

// Presenca is one attendance record. Absences are the rows with Presente false.
type Presenca struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID int64  `gorm:"not null;index"`
	AlunoID   int64  `gorm:"not null;index:idx_presenca_aluno_data"`
	TurmaID   int64  `gorm:"not null"`
	Data      string `gorm:"not null;index:idx_presenca_aluno_data"`
	Presente  bool   `gorm:"not null"`
}

type Reposicao struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID int64  `gorm:"not null;index"`
	AlunoID   int64  `gorm:"not null;index"`
	TurmaID   int64  `gorm:"not null"`
	Data      string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null"`
}
