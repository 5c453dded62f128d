// /internal/service/stats.go
package service

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/model"
	"github.com/copiiworld/memory-box/internal/store"
)

// Limites das janelas do relatório.
const (
	MaxDiasRelatorio  = 365
	MaxMesesRelatorio = 24
)

// statusVenda são os status que contam como venda concretizada.
var statusVenda = []model.OrderStatus{model.StatusProcessing, model.StatusDelivered}

type SerieDia struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type SerieMes struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

type ResumoVendas struct {
	Sales   int `json:"sales"`
	Revenue int `json:"revenue"`
	Cost    int `json:"cost"`
	Margin  int `json:"margin"`
}

type PedidoDetalhe struct {
	ID            uint              `json:"id"`
	ClientName    string            `json:"client_name"`
	Status        model.OrderStatus `json:"status"`
	BoxType       model.BoxType     `json:"box_type"`
	Variant       model.Variant     `json:"variant"`
	Price         int               `json:"price"`
	Cost          int               `json:"cost"`
	Margin        int               `json:"margin"`
	CostBreakdown datatypes.JSONMap `json:"cost_breakdown,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type Estatisticas struct {
	Days    int             `json:"days"`
	Months  int             `json:"months"`
	ByDay   []SerieDia      `json:"by_day"`
	ByMonth []SerieMes      `json:"by_month"`
	Summary ResumoVendas    `json:"summary"`
	Orders  []PedidoDetalhe `json:"orders"`
}

// GerarEstatisticas monta o relatório de vendas: séries por dia e por
// mês (preenchidas com zero onde não houve venda, terminando hoje),
// resumo e detalhe por pedido. Receita e custo saem preferencialmente
// do snapshot congelado; sem snapshot, caem para o cálculo com os
// valores vigentes.
func GerarEstatisticas(db *gorm.DB, days, months int) (*Estatisticas, error) {
	days = limitar(days, 1, MaxDiasRelatorio)
	months = limitar(months, 1, MaxMesesRelatorio)

	hoje := inicioDoDia(time.Now())
	inicioDias := hoje.AddDate(0, 0, -(days - 1))
	inicioMeses := time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, hoje.Location()).
		AddDate(0, -(months - 1), 0)

	// Uma consulta cobrindo a maior das duas janelas; o refinamento é
	// feito em memória para não depender de funções de data do banco.
	inicio := inicioDias
	if inicioMeses.Before(inicio) {
		inicio = inicioMeses
	}
	var pedidos []model.Order
	err := db.Where("status IN ?", statusVenda).
		Where("updated_at >= ?", inicio).
		Order("updated_at DESC").
		Find(&pedidos).Error
	if err != nil {
		return nil, err
	}

	est := &Estatisticas{Days: days, Months: months}

	porDia := make(map[string]int)
	porMes := make(map[string]int)
	for _, p := range pedidos {
		dia := inicioDoDia(p.UpdatedAt)
		if !dia.Before(inicioDias) {
			porDia[dia.Format("2006-01-02")]++
		}
		if !p.UpdatedAt.Before(inicioMeses) {
			porMes[p.UpdatedAt.Format("2006-01")]++
		}
	}

	for i := 0; i < days; i++ {
		d := inicioDias.AddDate(0, 0, i).Format("2006-01-02")
		est.ByDay = append(est.ByDay, SerieDia{Date: d, Count: porDia[d]})
	}
	for i := 0; i < months; i++ {
		m := inicioMeses.AddDate(0, i, 0).Format("2006-01")
		est.ByMonth = append(est.ByMonth, SerieMes{Month: m, Count: porMes[m]})
	}

	settings, err := store.GetSiteSettings(db)
	if err != nil {
		return nil, err
	}
	costSettings, err := store.GetCostSettings(db)
	if err != nil {
		return nil, err
	}

	for i := range pedidos {
		p := &pedidos[i]
		if inicioDoDia(p.UpdatedAt).Before(inicioDias) {
			continue
		}

		preco, custo, detalhamento, err := precoECusto(db, p, settings, costSettings)
		if err != nil {
			return nil, err
		}

		est.Summary.Sales++
		est.Summary.Revenue += preco
		est.Summary.Cost += custo
		est.Orders = append(est.Orders, PedidoDetalhe{
			ID:            p.ID,
			ClientName:    p.ClientName,
			Status:        p.Status,
			BoxType:       p.BoxType,
			Variant:       p.Variant,
			Price:         preco,
			Cost:          custo,
			Margin:        preco - custo,
			CostBreakdown: detalhamento,
			UpdatedAt:     p.UpdatedAt,
		})
	}
	est.Summary.Margin = est.Summary.Revenue - est.Summary.Cost
	return est, nil
}

// precoECusto devolve preço e custo do pedido, preferindo os snapshots
// congelados e caindo para o cálculo vigente quando não há snapshot.
func precoECusto(db *gorm.DB, p *model.Order, settings *model.SiteSettings, costSettings *model.CostSettings) (int, int, datatypes.JSONMap, error) {
	preco := PrecoTotal(p, settings)
	if p.PriceSnapshot != nil {
		preco = *p.PriceSnapshot
	}

	if p.CostSnapshot != nil {
		if total, ok := p.CostSnapshot["total"]; ok {
			return preco, int(numeroDe(total).IntPart()), p.CostSnapshot, nil
		}
	}

	in, err := MontarCostInputs(db, p, costSettings)
	if err != nil {
		return 0, 0, nil, err
	}
	return preco, CalcularCusto(p, in).Total, nil, nil
}

// MontarCostInputs busca no banco tudo que o cálculo de custo precisa
// para o pedido: configuração de custos e compras mais recentes.
func MontarCostInputs(db *gorm.DB, pedido *model.Order, costSettings *model.CostSettings) (CostInputs, error) {
	in := CostInputs{Data: costSettings.Data}

	var err error
	if pedido.BoxType != model.BoxWithLight {
		in.PLA, err = store.LatestPLAPurchase(db, pedido.Variant.VarianteBase())
		if err != nil {
			return in, err
		}
	}
	in.Caja, err = store.LatestPurchase(db, model.CategoriaCajaCarton)
	if err != nil {
		return in, err
	}
	in.Bolsa, err = store.LatestPurchase(db, model.CategoriaBolsaEcommerce)
	if err != nil {
		return in, err
	}
	return in, nil
}

func limitar(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func inicioDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
