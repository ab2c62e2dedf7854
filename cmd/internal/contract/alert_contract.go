package contract

type AlertResponse struct {
	ID             int64  `json:"id"`
	AlunoID        int64  `json:"aluno_id"`
	Tipo           string `json:"tipo"`
	DataReferencia string `json:"data_referencia"`
	TotalFaltas    int    `json:"total_faltas"`
	KanbanCardID   *int64 `json:"kanban_card_id"`
	Notificado     bool   `json:"notificado"`
	CreatedAt      string `json:"created_at"`
}

// AlertRunResponse summarizes one pass of the absence checker.
type AlertRunResponse struct {
	Checked  int `json:"checked"`
	Created  int `json:"created"`
	Notified int `json:"notified"`
}
