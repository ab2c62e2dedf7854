package entity

// User is a staff member of a unidade. Accounts live in the identity
// provider, this row only maps the token subject to a unidade and permissions.
type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement:false"`
	SubUUID     string     `gorm:"not null;uniqueIndex"`
	Nome        string     `gorm:"not null"`
	Email       string     `gorm:"not null"`
	UnidadeID   int64      `gorm:"not null;index"`
	Permissions Permission `gorm:"not null;type:bigint;default:0"`
	Active      bool       `gorm:"not null;default:true"`
	CreatedAt   int64      `gorm:"not null"`
	UpdatedAt   int64      `gorm:"not null;autoUpdateTime:false"`
}
