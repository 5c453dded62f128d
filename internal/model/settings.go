// /internal/model/settings.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// SiteSettings é a configuração única do site: preços, seña e dados de
// transferência/contato. Só existe a linha id=1 (singleton criado sob
// demanda com os valores padrão).
type SiteSettings struct {
	ID uint `gorm:"primaryKey" json:"-"`

	PriceMercadolibre int `gorm:"not null;default:35000" json:"price_mercadolibre"`
	PriceSinLuz       int `gorm:"not null;default:24000" json:"price_sin_luz"`
	PriceConLuz       int `gorm:"not null;default:42000" json:"price_con_luz"`
	PricePilas        int `gorm:"not null;default:2500" json:"price_pilas"`
	DepositAmount     int `gorm:"not null;default:12000" json:"deposit_amount"`

	TransferAlias  string `gorm:"size:100" json:"transfer_alias"`
	TransferBank   string `gorm:"size:100" json:"transfer_bank"`
	TransferHolder string `gorm:"size:200" json:"transfer_holder"`

	ContactWhatsapp  string `gorm:"size:50" json:"contact_whatsapp"`
	ContactEmail     string `gorm:"size:254" json:"contact_email"`
	LinkMercadolibre string `gorm:"size:500" json:"link_mercadolibre"`

	// Mídia de fundo selecionada para a Home (opcional).
	HomeBackgroundID *uint `json:"home_background_id"`

	UpdatedAt time.Time `json:"updated_at"`
}

// CostSettings guarda a configuração de custos de referência em JSON
// livre (componentes da caixa com luz, gramas por variante, troquel).
// Singleton id=1, igual ao SiteSettings.
type CostSettings struct {
	ID        uint              `gorm:"primaryKey" json:"-"`
	Data      datatypes.JSONMap `gorm:"type:jsonb" json:"data"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Chaves reconhecidas dentro de CostSettings.Data.
const (
	CostKeyWithLightComponents = "with_light_components" // lista de {name, value}
	CostKeyGramsByVariant      = "grams_by_variant"      // mapa variante -> gramas
	CostKeyGramsByOrder        = "grams_by_order"        // mapa id do pedido -> gramas
	CostKeyDieCut              = "die_cut_cost"          // custo fixo do troquel
)

// BackgroundMedia é um item do catálogo de fundos (imagem ou vídeo)
// administrável pelo painel.
type BackgroundMedia struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Kind         string    `gorm:"size:20;not null;default:'image'" json:"kind"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// VariantInfo é o catálogo de variantes exibido no configurador público.
type VariantInfo struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Code         Variant `gorm:"size:50;not null;unique" json:"code"`
	Label        string  `gorm:"size:100;not null" json:"label"`
	BoxType      BoxType `gorm:"size:20;not null;default:'no_light'" json:"box_type"`
	Enabled      bool    `gorm:"not null;default:true" json:"enabled"`
	DisplayOrder int     `gorm:"not null;default:0" json:"display_order"`

	Images []VariantImage `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// VariantImage é uma foto da galeria de uma variante.
type VariantImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VariantID    uint      `gorm:"not null;index" json:"variant_id"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
