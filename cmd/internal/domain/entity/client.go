package entity

// StatusNovoCadastro is the pipeline status a lead goes back to on reset.
const StatusNovoCadastro = "novo-cadastro"

// Client is a commercial lead. Removal is soft: DeletedAt is set and Active
// cleared, the row stays for reporting.
type Client struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID int64  `gorm:"not null;index"`
	Nome      string `gorm:"not null"`
	Telefone  string `gorm:"not null;default:''"`
	Origem    string `gorm:"not null;default:''"`
	Status    string `gorm:"not null;default:'novo-cadastro'"`
	Active    bool   `gorm:"not null"`
	DeletedAt int64  `gorm:"not null;default:0"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
