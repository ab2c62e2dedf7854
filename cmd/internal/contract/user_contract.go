package contract

type UserResponse struct {
	ID          int64  `json:"id"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	UnidadeID   int64  `json:"unidade_id"`
	Permissions int64  `json:"permissions"`
	CreatedAt   string `json:"created_at"`
}
