// /internal/store/stock_test.go
package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/copiiworld/memory-box/internal/model"
)

func bancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("falha ao abrir o banco de teste: %v", err)
	}
	err = db.AutoMigrate(
		&model.Stock{}, &model.PackagingStock{}, &model.Purchase{},
		&model.SiteSettings{}, &model.CostSettings{},
	)
	if err != nil {
		t.Fatalf("falha ao migrar: %v", err)
	}
	return db
}

func TestEnsureStockRows(t *testing.T) {
	db := bancoDeTeste(t)

	// Duas chamadas seguidas não podem duplicar linhas.
	if err := EnsureStockRows(db); err != nil {
		t.Fatal(err)
	}
	if err := EnsureStockRows(db); err != nil {
		t.Fatal(err)
	}

	var total int64
	db.Model(&model.Stock{}).Count(&total)
	if total != 8 {
		t.Errorf("%d linhas de estoque, esperado 8", total)
	}
}

func TestDecrementPackaging(t *testing.T) {
	db := bancoDeTeste(t)
	if err := EnsurePackagingRows(db); err != nil {
		t.Fatal(err)
	}
	if err := AddPackaging(db, model.PackagingCajaCarton, 1); err != nil {
		t.Fatal(err)
	}

	t.Run("desconta até zero", func(t *testing.T) {
		if err := DecrementPackaging(db, model.PackagingCajaCarton); err != nil {
			t.Fatal(err)
		}
		conferirQuantidade(t, db, model.PackagingCajaCarton, 0)
	})

	t.Run("em zero vira no-op, nunca negativo", func(t *testing.T) {
		if err := DecrementPackaging(db, model.PackagingCajaCarton); err != nil {
			t.Fatal(err)
		}
		conferirQuantidade(t, db, model.PackagingCajaCarton, 0)
	})
}

func TestGetSiteSettingsSingleton(t *testing.T) {
	db := bancoDeTeste(t)

	s, err := GetSiteSettings(db)
	if err != nil {
		t.Fatal(err)
	}
	if s.PriceSinLuz != 24000 || s.PriceConLuz != 42000 {
		t.Errorf("padrões incorretos: %+v", s)
	}

	// Segunda leitura devolve a mesma linha, sem criar outra.
	if _, err := GetSiteSettings(db); err != nil {
		t.Fatal(err)
	}
	var total int64
	db.Model(&model.SiteSettings{}).Count(&total)
	if total != 1 {
		t.Errorf("%d linhas de SiteSettings, esperado 1", total)
	}
}

func TestLatestPurchase(t *testing.T) {
	db := bancoDeTeste(t)

	t.Run("sem compras devolve nil sem erro", func(t *testing.T) {
		p, err := LatestPurchase(db, model.CategoriaCajaCarton)
		if err != nil {
			t.Fatal(err)
		}
		if p != nil {
			t.Errorf("esperado nil, veio %+v", p)
		}
	})
}

func conferirQuantidade(t *testing.T, db *gorm.DB, itemType model.PackagingItemType, esperado int) {
	t.Helper()
	var stock model.PackagingStock
	if err := db.Where("item_type = ?", itemType).First(&stock).Error; err != nil {
		t.Fatal(err)
	}
	if stock.Quantity != esperado {
		t.Errorf("quantidade de %s = %d, esperado %d", itemType, stock.Quantity, esperado)
	}
}
