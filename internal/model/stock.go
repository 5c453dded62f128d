// /internal/model/stock.go
package model

// Stock é o contador de cajitas prontas por (variante, tipo de caixa).
// Existem 8 linhas fixas: 4 variantes base x 2 tipos.
type Stock struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Variant  Variant `gorm:"size:50;not null;uniqueIndex:idx_stock_variant_box" json:"variant"`
	BoxType  BoxType `gorm:"size:20;not null;default:'no_light';uniqueIndex:idx_stock_variant_box" json:"box_type"`
	Quantity int     `gorm:"not null;default:0" json:"quantity"`
}

// PackagingItemType identifica os itens de embalagem controlados.
type PackagingItemType string

const (
	PackagingCajaCarton     PackagingItemType = "caja_carton"
	PackagingBolsaEcommerce PackagingItemType = "bolsa_ecommerce"
)

// ItensEmbalagem lista os tipos na ordem em que aparecem no painel.
var ItensEmbalagem = []PackagingItemType{PackagingCajaCarton, PackagingBolsaEcommerce}

func (t PackagingItemType) Valida() bool {
	return t == PackagingCajaCarton || t == PackagingBolsaEcommerce
}

// PackagingStock é o contador de material de embalagem. Nunca fica
// negativo: o decremento automático no finalize trava em zero.
type PackagingStock struct {
	ID       uint              `gorm:"primaryKey" json:"id"`
	ItemType PackagingItemType `gorm:"size:30;not null;unique" json:"item_type"`
	Quantity int               `gorm:"not null;default:0" json:"quantity"`
}
