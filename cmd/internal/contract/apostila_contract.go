package contract

type ApostilaQuery struct {
	Busca             string `query:"busca"`
	TurmaID           int64  `query:"turma_id"`
	ProfessorID       int64  `query:"professor_id"`
	MostrarEntregues  bool   `query:"mostrar_entregues"`
	SomenteEmCorrecao bool   `query:"somente_em_correcao"`
	Sort              string `query:"sort"`
	Dir               string `query:"dir"`
	Page              int    `query:"page"`
}

type CreateApostilaRequest struct {
	AlunoID     int64  `json:"aluno_id" validate:"required,gt=0"`
	Apostila    string `json:"apostila" validate:"required,min=1,max=120"`
	DataEntrega string `json:"data_entrega" validate:"omitempty,isodate"`
}

type ApostilaResponse struct {
	ID                 int64   `json:"id"`
	AlunoID            int64   `json:"aluno_id"`
	AlunoNome          string  `json:"aluno_nome"`
	TurmaID            *int64  `json:"turma_id"`
	TurmaNome          string  `json:"turma_nome"`
	ProfessorID        *int64  `json:"professor_id"`
	ProfessorNome      string  `json:"professor_nome"`
	Apostila           string  `json:"apostila"`
	DataEntrega        string  `json:"data_entrega"`
	Entregue           bool    `json:"entregue"`
	TotalCorrecoes     int     `json:"total_correcoes"`
	CorrecaoIniciada   bool    `json:"correcao_iniciada"`
	CorrecaoIniciadaEm *string `json:"correcao_iniciada_em"`
	DiasParaEntrega    *int    `json:"dias_para_entrega"`
	DiasDesdeCorrecao  *int    `json:"dias_desde_correcao"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}
