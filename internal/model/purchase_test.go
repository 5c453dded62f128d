// /internal/model/purchase_test.go
package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPlaCostPerGram(t *testing.T) {
	grams := 1000

	t.Run("calcula por rolo e por grama", func(t *testing.T) {
		p := Purchase{
			Category:     CategoriaPLARoll,
			Quantity:     2,
			TotalCost:    decimal.NewFromInt(50000),
			GramsPerRoll: &grams,
		}
		got := p.PlaCostPerGram()
		if got == nil {
			t.Fatal("esperado valor, veio nil")
		}
		// 50000 / 2 rolos / 1000g = 25 por grama.
		if !got.Equal(decimal.NewFromInt(25)) {
			t.Errorf("custo por grama = %s, esperado 25", got)
		}
	})

	t.Run("não se aplica fora de pla_roll", func(t *testing.T) {
		p := Purchase{Category: CategoriaCajaCarton, Quantity: 1, TotalCost: decimal.NewFromInt(100), GramsPerRoll: &grams}
		if p.PlaCostPerGram() != nil {
			t.Error("esperado nil para outra categoria")
		}
	})

	t.Run("sem gramas por rolo devolve nil", func(t *testing.T) {
		p := Purchase{Category: CategoriaPLARoll, Quantity: 1, TotalCost: decimal.NewFromInt(100)}
		if p.PlaCostPerGram() != nil {
			t.Error("esperado nil sem grams_per_roll")
		}
	})

	t.Run("quantidade zero devolve nil", func(t *testing.T) {
		p := Purchase{Category: CategoriaPLARoll, Quantity: 0, TotalCost: decimal.NewFromInt(100), GramsPerRoll: &grams}
		if p.PlaCostPerGram() != nil {
			t.Error("esperado nil com quantity zero")
		}
	})
}

func TestCostPerUnit(t *testing.T) {
	t.Run("unit_cost explícito tem prioridade", func(t *testing.T) {
		uc := decimal.NewFromInt(700)
		p := Purchase{Quantity: 10, TotalCost: decimal.NewFromInt(5000), UnitCost: &uc}
		if got := p.CostPerUnit(); !got.Equal(uc) {
			t.Errorf("custo unitário = %s, esperado 700", got)
		}
	})

	t.Run("deriva de total e quantidade", func(t *testing.T) {
		p := Purchase{Quantity: 10, TotalCost: decimal.NewFromInt(5000)}
		if got := p.CostPerUnit(); !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("custo unitário = %s, esperado 500", got)
		}
	})

	t.Run("quantidade zero devolve zero", func(t *testing.T) {
		p := Purchase{Quantity: 0, TotalCost: decimal.NewFromInt(5000)}
		if got := p.CostPerUnit(); !got.IsZero() {
			t.Errorf("custo unitário = %s, esperado 0", got)
		}
	})
}

func TestVarianteBase(t *testing.T) {
	casos := []struct{ entrada, esperado Variant }{
		{VariantGraphiteLight, VariantGraphite},
		{VariantWoodLight, VariantWood},
		{VariantGraphite, VariantGraphite},
	}
	for _, c := range casos {
		if got := c.entrada.VarianteBase(); got != c.esperado {
			t.Errorf("VarianteBase(%s) = %s, esperado %s", c.entrada, got, c.esperado)
		}
	}
}
