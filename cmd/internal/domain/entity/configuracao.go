package entity

// ConfigSlackAlertChannel holds the Slack channel id for absence alerts.
const ConfigSlackAlertChannel = "slack_canal_alertas"

// Configuracao is a key/value setting editable by the staff.
type Configuracao struct {
	Chave string `gorm:"primaryKey"`
	Valor string `gorm:"not null;default:''"`
}
