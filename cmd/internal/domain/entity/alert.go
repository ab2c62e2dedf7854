package entity

import "fmt"

type AlertType string

const (
	// AlertNewStudent fires when a recently enrolled aluno misses their latest class.
	AlertNewStudent AlertType = "aluno_novo"

	// AlertConsecutiveAbsences fires when the latest N attendance records are all absences.
	AlertConsecutiveAbsences AlertType = "faltas_consecutivas"
)

// AlertaFalta records that an absence heuristic matched. The unique index keeps
// the job from alerting twice for the same absence.
type AlertaFalta struct {
	ID             int64     `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID      int64     `gorm:"not null;index"`
	AlunoID        int64     `gorm:"not null;uniqueIndex:idx_alerta_aluno_tipo_data"`
	Tipo           AlertType `gorm:"not null;type:varchar(32);uniqueIndex:idx_alerta_aluno_tipo_data"`
	DataReferencia string    `gorm:"not null;uniqueIndex:idx_alerta_aluno_tipo_data"`
	TotalFaltas    int       `gorm:"not null;default:0"`
	KanbanCardID   *int64    `gorm:"index"`
	Notificado     bool      `gorm:"not null;default:false"`
	CreatedAt      int64     `gorm:"not null"`
}

// Describe renders the reason shown on the kanban card and the Slack message.
func (a *AlertaFalta) Describe(alunoNome string) string {
	switch a.Tipo {
	case AlertNewStudent:
		return fmt.Sprintf("Aluno novo %s faltou na aula de %s", alunoNome, a.DataReferencia)
	case AlertConsecutiveAbsences:
		return fmt.Sprintf("%s faltou %d aulas consecutivas (última em %s)", alunoNome, a.TotalFaltas, a.DataReferencia)
	default:
		return fmt.Sprintf("Alerta de falta para %s", alunoNome)
	}
}
