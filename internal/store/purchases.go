// /internal/store/purchases.go
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/model"
)

// LatestPurchase devolve a compra mais recente da categoria (por data,
// depois id), ou nil se nunca houve compra.
func LatestPurchase(db *gorm.DB, category model.PurchaseCategory) (*model.Purchase, error) {
	var p model.Purchase
	err := db.Where("category = ?", category).
		Order("date DESC, id DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LatestPLAPurchase devolve a compra de rolo de PLA mais recente para a
// variante (cor) informada, ou nil se não houver.
func LatestPLAPurchase(db *gorm.DB, variant model.Variant) (*model.Purchase, error) {
	var p model.Purchase
	err := db.Where("category = ? AND variant = ?", model.CategoriaPLARoll, string(variant)).
		Order("date DESC, id DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
