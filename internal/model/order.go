// /internal/model/order.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// BoxType define os dois tipos de cajita vendidos.
type BoxType string

const (
	BoxNoLight   BoxType = "no_light"
	BoxWithLight BoxType = "with_light"
)

// LedType só faz sentido quando BoxType = with_light.
type LedType string

const (
	LedWarm  LedType = "warm_led"
	LedWhite LedType = "white_led"
)

// Variant é a cor/acabamento da cajita. As variantes *_light são as
// versões com luz das quatro variantes base.
type Variant string

const (
	VariantGraphite Variant = "graphite"
	VariantWood     Variant = "wood"
	VariantBlack    Variant = "black"
	VariantMarble   Variant = "marble"

	VariantGraphiteLight Variant = "graphite_light"
	VariantWoodLight     Variant = "wood_light"
	VariantBlackLight    Variant = "black_light"
	VariantMarbleLight   Variant = "marble_light"
)

// VariantesBase são as variantes sem luz, usadas também no estoque.
var VariantesBase = []Variant{VariantGraphite, VariantWood, VariantBlack, VariantMarble}

var todasVariantes = map[Variant]bool{
	VariantGraphite: true, VariantWood: true, VariantBlack: true, VariantMarble: true,
	VariantGraphiteLight: true, VariantWoodLight: true, VariantBlackLight: true, VariantMarbleLight: true,
}

func (v Variant) Valida() bool { return todasVariantes[v] }

// VarianteBase remove o sufixo _light (graphite_light -> graphite).
func (v Variant) VarianteBase() Variant {
	const sufixo = "_light"
	s := string(v)
	if len(s) > len(sufixo) && s[len(s)-len(sufixo):] == sufixo {
		return Variant(s[:len(s)-len(sufixo)])
	}
	return v
}

type ShippingOption string

const (
	ShippingPickupUber ShippingOption = "pickup_uber"
	ShippingProvince   ShippingOption = "shipping_province"
)

// OrderStatus é o ciclo de vida do pedido:
// draft -> in_progress -> processing (finalizado) -> delivered.
type OrderStatus string

const (
	StatusDraft      OrderStatus = "draft"
	StatusInProgress OrderStatus = "in_progress"
	StatusProcessing OrderStatus = "processing"
	StatusDelivered  OrderStatus = "delivered"
)

func (s OrderStatus) Valida() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusProcessing, StatusDelivered:
		return true
	}
	return false
}

// Order é o pedido enviado pelo cliente (dados + configuração da cajita).
// CostSnapshot e PriceSnapshot ficam nulos até o pedido entrar em
// "processing"; depois disso são imutáveis, mesmo que preços e custos
// de referência mudem.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Token efêmero de sessão para associar recortes antes do envio.
	SessionKey string `gorm:"size:40;index" json:"session_key,omitempty"`
	ClientName string `gorm:"size:200;not null" json:"client_name"`
	Phone      string `gorm:"size:50" json:"phone"`

	BoxType        BoxType        `gorm:"size:20" json:"box_type"`
	LedType        LedType        `gorm:"size:20" json:"led_type"`
	Variant        Variant        `gorm:"size:50" json:"variant"`
	ShippingOption ShippingOption `gorm:"size:30" json:"shipping_option"`

	Status OrderStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	// Seña (depósito de 50%) recebida.
	Deposit bool `gorm:"not null;default:false" json:"deposit"`
	// Active = false esconde o pedido da tabela do admin sem apagar nada.
	Active bool `gorm:"not null;default:true" json:"active"`
	// Caminho do PNG com o QR que aponta para {frontend}/order/{id}.
	QRCode string `gorm:"size:500" json:"qr_code"`

	CostSnapshot  datatypes.JSONMap `gorm:"type:jsonb" json:"cost_snapshot"`
	PriceSnapshot *int              `json:"price_snapshot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ImageCrops []ImageCrop `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"image_crops,omitempty"`
}

// TotalSlots é a quantidade fixa de fotos por pedido.
const TotalSlots = 10

// ImageCrop é um dos dez recortes de foto do pedido, único por (pedido, slot).
// A imagem já é gravada recortada e redimensionada ao tamanho final.
type ImageCrop struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OrderID      uint           `gorm:"not null;uniqueIndex:idx_crop_order_slot" json:"order_id"`
	Slot         int            `gorm:"not null;uniqueIndex:idx_crop_order_slot" json:"slot"`
	DisplayOrder int            `gorm:"not null;default:0" json:"display_order"`
	Image        string         `gorm:"size:500" json:"image"`
	CropData     datatypes.JSON `gorm:"type:jsonb" json:"crop_data"`
	CreatedAt    time.Time      `json:"created_at"`
}
