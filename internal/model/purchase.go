// /internal/model/purchase.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseCategory é o conjunto fixo de categorias de gasto.
type PurchaseCategory string

const (
	CategoriaBurbujas       PurchaseCategory = "burbujas"
	CategoriaCajaCarton     PurchaseCategory = "caja_carton"
	CategoriaBolsaEcommerce PurchaseCategory = "bolsa_ecommerce"
	CategoriaPublicidadIG   PurchaseCategory = "publicidad_instagram"
	CategoriaImagenes       PurchaseCategory = "imagenes"
	CategoriaPLARoll        PurchaseCategory = "pla_roll"
	CategoriaOtro           PurchaseCategory = "otro"
)

func (c PurchaseCategory) Valida() bool {
	switch c {
	case CategoriaBurbujas, CategoriaCajaCarton, CategoriaBolsaEcommerce,
		CategoriaPublicidadIG, CategoriaImagenes, CategoriaPLARoll, CategoriaOtro:
		return true
	}
	return false
}

// Purchase é um lançamento do livro de compras/gastos (append-only no
// painel). Para rolos de PLA o custo por grama é
// (total_cost / quantity) / grams_per_roll.
type Purchase struct {
	ID       uint             `gorm:"primaryKey" json:"id"`
	Category PurchaseCategory `gorm:"size:40;not null" json:"category"`
	Date     time.Time        `gorm:"type:date;not null" json:"date"`
	Quantity int              `gorm:"not null;default:1" json:"quantity"`
	// UnitCost explícito tem prioridade sobre total_cost/quantity.
	UnitCost  *decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_cost"`
	TotalCost decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"total_cost"`
	// Dias do período (ex.: publicidade semanal no Instagram).
	Days  *int   `json:"days"`
	Notes string `gorm:"size:500" json:"notes"`

	// Somente PLA: cor/variante, marca e gramas por rolo.
	Variant      string `gorm:"size:80" json:"variant"`
	Brand        string `gorm:"size:120" json:"brand"`
	GramsPerRoll *int   `json:"grams_per_roll"`

	CreatedAt time.Time `json:"created_at"`
}

func (Purchase) TableName() string { return "purchases" }

// PlaCostPerGram devolve o custo por grama para compras de PLA, ou nil
// quando não se aplica (outra categoria, quantity ou grams_per_roll
// zero/ausente).
func (p *Purchase) PlaCostPerGram() *decimal.Decimal {
	if p.Category != CategoriaPLARoll || p.Quantity <= 0 || p.GramsPerRoll == nil || *p.GramsPerRoll <= 0 {
		return nil
	}
	porRolo := p.TotalCost.Div(decimal.NewFromInt(int64(p.Quantity)))
	porGrama := porRolo.Div(decimal.NewFromInt(int64(*p.GramsPerRoll)))
	return &porGrama
}

// CostPerUnit devolve o custo unitário: unit_cost quando informado,
// senão total_cost/quantity. Quantity zero devolve zero.
func (p *Purchase) CostPerUnit() decimal.Decimal {
	if p.UnitCost != nil && !p.UnitCost.IsZero() {
		return *p.UnitCost
	}
	if p.Quantity <= 0 {
		return decimal.Zero
	}
	return p.TotalCost.Div(decimal.NewFromInt(int64(p.Quantity)))
}
