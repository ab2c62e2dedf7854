package contract

const (
	MaxPhotoSizeBytes = 5 * 1024 * 1024

	DefaultMakeupWindowDays = 30
)

var ValidPhotoFileTypes = []string{"png", "jpg", "jpeg", "webp"}

type AlunoQuery struct {
	TurmaID int64 `query:"turma_id"`
}

type AlunoResponse struct {
	ID            int64   `json:"id"`
	Nome          string  `json:"nome"`
	Codigo        *string `json:"codigo"`
	TurmaID       *int64  `json:"turma_id"`
	TurmaNome     string  `json:"turma_nome,omitempty"`
	DataMatricula string  `json:"data_matricula"`
	Ativo         bool    `json:"ativo"`
	FotoURL       *string `json:"foto_url"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type TurmaResponse struct {
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	DiaSemana     int    `json:"dia_semana"`
	Horario       string `json:"horario"`
	ProfessorID   *int64 `json:"professor_id"`
	ProfessorNome string `json:"professor_nome,omitempty"`
}

type MakeupDatesQuery struct {
	Dias int `query:"dias" validate:"omitempty,min=1,max=90"`
}

type MakeupDateResponse struct {
	Data      string           `json:"data"`
	DiaSemana int              `json:"dia_semana"`
	Turmas    []*TurmaResponse `json:"turmas"`
}

type CreateReposicaoRequest struct {
	TurmaID int64  `json:"turma_id" validate:"required,gt=0"`
	Data    string `json:"data" validate:"required,isodate"`
}

type ReposicaoResponse struct {
	ID        int64  `json:"id"`
	AlunoID   int64  `json:"aluno_id"`
	TurmaID   int64  `json:"turma_id"`
	Data      string `json:"data"`
	CreatedAt string `json:"created_at"`
}
