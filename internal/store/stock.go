// /internal/store/stock.go
package store

import (
	"log"

	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/model"
)

// EnsureStockRows cria as linhas de estoque que faltarem (4 variantes
// base x 2 tipos de caixa), com quantidade zero.
func EnsureStockRows(db *gorm.DB) error {
	for _, bt := range []model.BoxType{model.BoxNoLight, model.BoxWithLight} {
		for _, v := range model.VariantesBase {
			err := db.Where(model.Stock{Variant: v, BoxType: bt}).
				FirstOrCreate(&model.Stock{Variant: v, BoxType: bt}).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// EnsurePackagingRows cria as linhas de embalagem que faltarem.
func EnsurePackagingRows(db *gorm.DB) error {
	for _, t := range model.ItensEmbalagem {
		err := db.Where(model.PackagingStock{ItemType: t}).
			FirstOrCreate(&model.PackagingStock{ItemType: t}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// DecrementPackaging desconta 1 unidade do item de embalagem. Nunca
// deixa o contador negativo: em zero só registra no log e segue.
func DecrementPackaging(db *gorm.DB, itemType model.PackagingItemType) error {
	var stock model.PackagingStock
	err := db.Where(model.PackagingStock{ItemType: itemType}).
		FirstOrCreate(&stock).Error
	if err != nil {
		return err
	}
	if stock.Quantity <= 0 {
		log.Printf("Estoque de embalagem %s já está em zero, decremento ignorado", itemType)
		return nil
	}
	return db.Model(&stock).Update("quantity", stock.Quantity-1).Error
}

// AddPackaging soma unidades ao item de embalagem (compras de caixa ou
// bolsa incrementam automaticamente).
func AddPackaging(db *gorm.DB, itemType model.PackagingItemType, amount int) error {
	var stock model.PackagingStock
	err := db.Where(model.PackagingStock{ItemType: itemType}).
		FirstOrCreate(&stock).Error
	if err != nil {
		return err
	}
	return db.Model(&stock).Update("quantity", stock.Quantity+amount).Error
}
