// /internal/service/costs.go

// Package service concentra a lógica de negócio que não é CRUD puro:
// cálculo de custo/preço, normalização de telefone, recorte de imagens,
// QR codes, webhooks e estatísticas.
package service

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/copiiworld/memory-box/internal/model"
)

// GramasPadrao é o peso de PLA assumido quando a configuração de custos
// não informa gramas nem para o pedido nem para a variante.
const GramasPadrao = 63

// CostInputs é tudo que o cálculo de custo lê do estado atual do
// sistema. Montado pelo caller para a função permanecer pura.
type CostInputs struct {
	// Data é o JSON livre do CostSettings.
	Data map[string]any
	// PLA é a compra de rolo mais recente para a variante base do
	// pedido (nil se nunca houve).
	PLA *model.Purchase
	// Caja e Bolsa são as compras mais recentes de embalagem.
	Caja  *model.Purchase
	Bolsa *model.Purchase
}

// CostBreakdown é o detalhamento congelado no pedido ao finalizar.
// Cada componente é arredondado para cima individualmente e o total é
// a soma dos componentes já arredondados (nunca o teto da soma crua);
// a ordem importa para bater com os snapshots históricos.
type CostBreakdown struct {
	Box       int `json:"box"`
	Filament  int `json:"filament"`
	Packaging int `json:"packaging"`
	DieCut    int `json:"die_cut"`
	Total     int `json:"total"`
}

// ToJSONMap converte o detalhamento para o formato gravado na coluna
// cost_snapshot.
func (b CostBreakdown) ToJSONMap() datatypes.JSONMap {
	return datatypes.JSONMap{
		"box":       b.Box,
		"filament":  b.Filament,
		"packaging": b.Packaging,
		"die_cut":   b.DieCut,
		"total":     b.Total,
	}
}

// CalcularCusto computa o detalhamento de custo do pedido a partir do
// estado atual de configuração e compras.
func CalcularCusto(pedido *model.Order, in CostInputs) CostBreakdown {
	var box, filament decimal.Decimal

	if pedido.BoxType == model.BoxWithLight {
		// Com luz: soma dos componentes de referência. O filamento já
		// está embutido na lista, então não entra separado.
		box = somaComponentesConLuz(in.Data)
	} else {
		// Sem luz: custo de caixa zero; o que conta é o filamento.
		filament = custoFilamento(pedido, in)
	}

	packaging := decimal.Zero
	if in.Caja != nil {
		packaging = packaging.Add(in.Caja.CostPerUnit())
	}
	if in.Bolsa != nil {
		packaging = packaging.Add(in.Bolsa.CostPerUnit())
	}

	dieCut := numeroDe(in.Data[model.CostKeyDieCut])

	b := CostBreakdown{
		Box:       tetoInt(box),
		Filament:  tetoInt(filament),
		Packaging: tetoInt(packaging),
		DieCut:    tetoInt(dieCut),
	}
	b.Total = b.Box + b.Filament + b.Packaging + b.DieCut
	return b
}

func somaComponentesConLuz(data map[string]any) decimal.Decimal {
	total := decimal.Zero
	lista, _ := data[model.CostKeyWithLightComponents].([]any)
	for _, item := range lista {
		comp, ok := item.(map[string]any)
		if !ok {
			continue
		}
		total = total.Add(numeroDe(comp["value"]))
	}
	return total
}

func custoFilamento(pedido *model.Order, in CostInputs) decimal.Decimal {
	if in.PLA == nil {
		return decimal.Zero
	}
	porGrama := in.PLA.PlaCostPerGram()
	if porGrama == nil {
		return decimal.Zero
	}
	return porGrama.Mul(gramasDoPedido(pedido, in.Data))
}

// gramasDoPedido resolve o peso em gramas: override por pedido no
// CostSettings, senão o padrão da variante, senão GramasPadrao.
func gramasDoPedido(pedido *model.Order, data map[string]any) decimal.Decimal {
	if porPedido, ok := data[model.CostKeyGramsByOrder].(map[string]any); ok {
		if g, ok := porPedido[strconv.FormatUint(uint64(pedido.ID), 10)]; ok {
			if d := numeroDe(g); d.IsPositive() {
				return d
			}
		}
	}
	if porVariante, ok := data[model.CostKeyGramsByVariant].(map[string]any); ok {
		if g, ok := porVariante[string(pedido.Variant.VarianteBase())]; ok {
			if d := numeroDe(g); d.IsPositive() {
				return d
			}
		}
	}
	return decimal.NewFromInt(GramasPadrao)
}

// numeroDe converte um valor vindo de JSON para decimal; qualquer
// coisa não numérica vale zero. O JSONMap lido do banco decodifica
// números como json.Number, então esse caso é o caminho de produção.
func numeroDe(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func tetoInt(d decimal.Decimal) int {
	return int(d.Ceil().IntPart())
}

// PrecoTotal devolve o preço de venda segundo os preços vigentes:
// com luz = caixa com luz + pilhas; sem luz = caixa sem luz.
func PrecoTotal(pedido *model.Order, s *model.SiteSettings) int {
	if pedido.BoxType == model.BoxWithLight {
		return s.PriceConLuz + s.PricePilas
	}
	return s.PriceSinLuz
}

// SaldoRestante devolve quanto falta pagar: a seña é a metade inteira
// do total (divisão inteira), o saldo é o que sobra.
func SaldoRestante(total int) int {
	return total - total/2
}
