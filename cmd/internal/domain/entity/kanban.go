package entity

import "gorm.io/datatypes"

// Column is a stage of the dropout-risk workflow.
type Column string

const (
	ColumnCreated     Column = "created"
	ColumnNegotiating Column = "negotiating"
	ColumnScheduled   Column = "scheduled"
	ColumnDone        Column = "done"
	ColumnHibernating Column = "hibernating"
)

// ActiveColumns are shown in the default board mode, in display order.
var ActiveColumns = []Column{ColumnCreated, ColumnNegotiating, ColumnScheduled, ColumnDone}

// HibernatingColumns are shown in the "hibernando" board mode.
var HibernatingColumns = []Column{ColumnHibernating}

var columnTitles = map[Column]string{
	ColumnCreated:     "Criado",
	ColumnNegotiating: "Em negociação",
	ColumnScheduled:   "Retenção agendada",
	ColumnDone:        "Concluído",
	ColumnHibernating: "Hibernando",
}

func (c Column) IsValid() bool {
	_, ok := columnTitles[c]
	return ok
}

func (c Column) Title() string {
	return columnTitles[c]
}

// Resultado is the finalization outcome of a card.
type Resultado string

const (
	ResultadoEvadiu Resultado = "evadiu"
	ResultadoRetido Resultado = "retido"
)

func (r Resultado) IsValid() bool {
	return r == ResultadoEvadiu || r == ResultadoRetido
}

// CardVariant decides which group of fields a card exposes for editing.
type CardVariant string

const (
	VariantAlert    CardVariant = "alert"
	VariantEvaded   CardVariant = "evaded"
	VariantRetained CardVariant = "retained"
)

type KanbanCard struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	UnidadeID int64  `gorm:"not null;index"`
	AlunoID   *int64 `gorm:"index"`
	AlunoNome string `gorm:"not null;default:''"`
	Titulo    string `gorm:"not null"`
	Descricao string `gorm:"not null;default:''"`

	Tags         datatypes.JSONSlice[string] `gorm:"type:json"`
	ColumnID     Column                      `gorm:"not null;index;type:varchar(32)"`
	Resultado    *Resultado                  `gorm:"type:varchar(16)"`
	Responsavel  string                      `gorm:"not null;default:''"`
	DataRetencao string                      `gorm:"not null;default:''"`

	// Alert variant
	MotivoAlerta string `gorm:"not null;default:''"`

	// Evaded variant
	MotivoEvasao string `gorm:"not null;default:''"`
	DataEvasao   string `gorm:"not null;default:''"`

	// Retained variant
	AcordoRetencao      string `gorm:"not null;default:''"`
	ObservacoesRetencao string `gorm:"not null;default:''"`

	AlertaID     *int64 `gorm:"index"`
	FinalizadoEm int64  `gorm:"not null;default:0"`
	CreatedAt    int64  `gorm:"not null"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:false"`
}

// IsFinalized reports whether the card reached a terminal state. A finalized
// card can no longer change columns.
func (k *KanbanCard) IsFinalized() bool {
	return k.Resultado != nil
}

func (k *KanbanCard) HasRetentionDate() bool {
	return k.DataRetencao != ""
}

func (k *KanbanCard) Variant() CardVariant {
	if k.Resultado == nil {
		return VariantAlert
	}

	switch *k.Resultado {
	case ResultadoEvadiu:
		return VariantEvaded
	case ResultadoRetido:
		return VariantRetained
	default:
		return VariantAlert
	}
}

// CardDetails is the set of fields that one card variant accepts. Nil fields
// are left untouched.
type CardDetails interface {
	Variant() CardVariant
	ApplyTo(card *KanbanCard)
}

type AlertDetails struct {
	Titulo       *string
	Descricao    *string
	Responsavel  *string
	DataRetencao *string
	MotivoAlerta *string
	Tags         []string
}

func (d *AlertDetails) Variant() CardVariant {
	return VariantAlert
}

func (d *AlertDetails) ApplyTo(card *KanbanCard) {
	setIfPresent(&card.Titulo, d.Titulo)
	setIfPresent(&card.Descricao, d.Descricao)
	setIfPresent(&card.Responsavel, d.Responsavel)
	setIfPresent(&card.DataRetencao, d.DataRetencao)
	setIfPresent(&card.MotivoAlerta, d.MotivoAlerta)
	if d.Tags != nil {
		card.Tags = datatypes.NewJSONSlice(d.Tags)
	}
}

type EvadedDetails struct {
	MotivoEvasao *string
	DataEvasao   *string
	Descricao    *string
}

func (d *EvadedDetails) Variant() CardVariant {
	return VariantEvaded
}

func (d *EvadedDetails) ApplyTo(card *KanbanCard) {
	setIfPresent(&card.MotivoEvasao, d.MotivoEvasao)
	setIfPresent(&card.DataEvasao, d.DataEvasao)
	setIfPresent(&card.Descricao, d.Descricao)
}

type RetainedDetails struct {
	AcordoRetencao      *string
	ObservacoesRetencao *string
	DataRetencao        *string
	Responsavel         *string
}

func (d *RetainedDetails) Variant() CardVariant {
	return VariantRetained
}

func (d *RetainedDetails) ApplyTo(card *KanbanCard) {
	setIfPresent(&card.AcordoRetencao, d.AcordoRetencao)
	setIfPresent(&card.ObservacoesRetencao, d.ObservacoesRetencao)
	setIfPresent(&card.DataRetencao, d.DataRetencao)
	setIfPresent(&card.Responsavel, d.Responsavel)
}

func setIfPresent(dst *string, val *string) {
	if val != nil {
		*dst = *val
	}
}
