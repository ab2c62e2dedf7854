package contract

type ClientQuery struct {
	Busca           string `query:"busca"`
	Status          string `query:"status"`
	Origem          string `query:"origem"`
	MostrarInativos bool   `query:"mostrar_inativos"`
	Sort            string `query:"sort"`
	Dir             string `query:"dir"`
	Page            int    `query:"page"`
}

type UpdateClientRequest struct {
	Nome     *string `json:"nome" validate:"omitempty,min=2,max=120"`
	Telefone *string `json:"telefone" validate:"omitempty,min=8,max=20,nospaces"`
	Origem   *string `json:"origem" validate:"omitempty,max=60"`
	Status   *string `json:"status" validate:"omitempty,min=1,max=40,nospaces"`
}

type ClientResponse struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Telefone  string `json:"telefone"`
	Origem    string `json:"origem"`
	Status    string `json:"status"`
	Active    bool   `json:"active"`
	DeletedAt string `json:"deleted_at,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
