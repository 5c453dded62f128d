// /internal/store/settings.go

// Package store concentra as consultas compartilhadas entre handlers e
// serviços: singletons de configuração, contadores de estoque e buscas
// no livro de compras. Todas as funções recebem o *gorm.DB para
// funcionarem também dentro de transações.
package store

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/model"
)

// GetSiteSettings devolve a única linha de SiteSettings (id=1),
// criando com os valores padrão da loja na primeira leitura.
func GetSiteSettings(db *gorm.DB) (*model.SiteSettings, error) {
	var s model.SiteSettings
	err := db.First(&s, 1).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = model.SiteSettings{
		ID:                1,
		PriceMercadolibre: 35000,
		PriceSinLuz:       24000,
		PriceConLuz:       42000,
		PricePilas:        2500,
		DepositAmount:     12000,
		TransferBank:      "Mercado Pago",
	}
	if err := db.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetCostSettings devolve o singleton de custos de referência (id=1),
// criado vazio na primeira leitura.
func GetCostSettings(db *gorm.DB) (*model.CostSettings, error) {
	var c model.CostSettings
	err := db.First(&c, 1).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = model.CostSettings{ID: 1, Data: datatypes.JSONMap{}}
	if err := db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
