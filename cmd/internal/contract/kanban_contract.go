package contract

const (
	BoardModeActive      = "ativo"
	BoardModeHibernating = "hibernando"
)

type BoardQuery struct {
	Modo string `query:"modo"`
}

type MoveCardRequest struct {
	ColumnID string `json:"column_id" validate:"required,coluna"`
}

// UpdateCardRequest carries the fields of every card variant. Only the ones
// belonging to the variant of the target card are applied.
type UpdateCardRequest struct {
	// Alert variant
	Titulo       *string  `json:"titulo" validate:"omitempty,min=1,max=200"`
	MotivoAlerta *string  `json:"motivo_alerta" validate:"omitempty,max=2000"`
	Tags         []string `json:"tags" validate:"omitempty,max=20,nodupes,dive,min=1,max=40"`

	// Shared
	Descricao    *string `json:"descricao" validate:"omitempty,max=4000"`
	Responsavel  *string `json:"responsavel" validate:"omitempty,max=120"`
	DataRetencao *string `json:"data_retencao" validate:"omitempty,isodate"`

	// Evaded variant
	MotivoEvasao *string `json:"motivo_evasao" validate:"omitempty,max=2000"`
	DataEvasao   *string `json:"data_evasao" validate:"omitempty,isodate"`

	// Retained variant
	AcordoRetencao      *string `json:"acordo_retencao" validate:"omitempty,max=2000"`
	ObservacoesRetencao *string `json:"observacoes_retencao" validate:"omitempty,max=4000"`
}

type FinalizeCardRequest struct {
	Resultado string `json:"resultado" validate:"required,resultado"`
	UpdateCardRequest
}

type CardResponse struct {
	ID                  int64    `json:"id"`
	AlunoID             *int64   `json:"aluno_id"`
	AlunoNome           string   `json:"aluno_nome"`
	Titulo              string   `json:"titulo"`
	Descricao           string   `json:"descricao"`
	Tags                []string `json:"tags"`
	ColumnID            string   `json:"column_id"`
	Resultado           *string  `json:"resultado"`
	Variant             string   `json:"variant"`
	Responsavel         string   `json:"responsavel"`
	DataRetencao        string   `json:"data_retencao"`
	MotivoAlerta        string   `json:"motivo_alerta,omitempty"`
	MotivoEvasao        string   `json:"motivo_evasao,omitempty"`
	DataEvasao          string   `json:"data_evasao,omitempty"`
	AcordoRetencao      string   `json:"acordo_retencao,omitempty"`
	ObservacoesRetencao string   `json:"observacoes_retencao,omitempty"`
	AlertaID            *int64   `json:"alerta_id"`
	FinalizadoEm        *string  `json:"finalizado_em"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

type ColumnResponse struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Cards []*CardResponse `json:"cards"`
}

type BoardResponse struct {
	Modo    string            `json:"modo"`
	Columns []*ColumnResponse `json:"columns"`
}
