// /internal/handler/purchase_handler.go
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/model"
	"github.com/copiiworld/memory-box/internal/notify"
	"github.com/copiiworld/memory-box/internal/store"
)

// PurchaseHandler é o CRUD do livro de compras/gastos do admin.
type PurchaseHandler struct {
	StockHub *notify.Hub
}

type purchaseRequest struct {
	Category     string  `json:"category"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Quantity     *int    `json:"quantity"`
	UnitCost     *string `json:"unit_cost"`
	TotalCost    *string `json:"total_cost"`
	Days         *int    `json:"days"`
	Notes        *string `json:"notes"`
	Variant      *string `json:"variant"`
	Brand        *string `json:"brand"`
	GramsPerRoll *int    `json:"grams_per_roll"`
}

func (r *purchaseRequest) validar(criando bool) (map[string]string, time.Time) {
	erros := make(map[string]string)
	var data time.Time

	if criando || r.Category != "" {
		if !model.PurchaseCategory(r.Category).Valida() {
			erros["category"] = "Categoria desconhecida."
		}
	}
	if criando || r.Date != "" {
		var err error
		data, err = time.Parse("2006-01-02", r.Date)
		if err != nil {
			erros["date"] = "Data inválida (use YYYY-MM-DD)."
		}
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		erros["quantity"] = "Não pode ser negativa."
	}
	if r.GramsPerRoll != nil && *r.GramsPerRoll < 0 {
		erros["grams_per_roll"] = "Não pode ser negativo."
	}
	if r.UnitCost != nil {
		if _, err := decimal.NewFromString(*r.UnitCost); err != nil {
			erros["unit_cost"] = "Valor inválido."
		}
	}
	if r.TotalCost != nil {
		if _, err := decimal.NewFromString(*r.TotalCost); err != nil {
			erros["total_cost"] = "Valor inválido."
		}
	}
	return erros, data
}

// ListPurchases lista as compras, opcionalmente por categoria, da mais
// recente para a mais antiga.
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	query := database.DB.Order("date DESC, id DESC")
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}
	var compras []model.Purchase
	if err := query.Find(&compras).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar as compras."})
		return
	}
	c.JSON(http.StatusOK, compras)
}

// CreatePurchase registra uma compra. Compras de caixa de papelão ou
// bolsa somam a quantidade ao estoque de embalagem na mesma transação.
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}
	erros, data := req.validar(true)
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	compra := model.Purchase{
		Category: model.PurchaseCategory(req.Category),
		Date:     data,
		Quantity: 1,
	}
	aplicarCompra(&compra, &req)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&compra).Error; err != nil {
			return err
		}
		switch compra.Category {
		case model.CategoriaCajaCarton:
			return store.AddPackaging(tx, model.PackagingCajaCarton, compra.Quantity)
		case model.CategoriaBolsaEcommerce:
			return store.AddPackaging(tx, model.PackagingBolsaEcommerce, compra.Quantity)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar a compra."})
		return
	}

	h.StockHub.Broadcast(nil)
	c.JSON(http.StatusCreated, compra)
}

// UpdatePurchase edita um lançamento. A edição não mexe no estoque de
// embalagem: o incremento automático só acontece na criação.
func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	compra, ok := buscarCompra(c)
	if !ok {
		return
	}
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}
	erros, data := req.validar(false)
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	if req.Category != "" {
		compra.Category = model.PurchaseCategory(req.Category)
	}
	if req.Date != "" {
		compra.Date = data
	}
	aplicarCompra(compra, &req)

	if err := database.DB.Save(compra).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar a compra."})
		return
	}
	c.JSON(http.StatusOK, compra)
}

func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	compra, ok := buscarCompra(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(compra).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir a compra."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func aplicarCompra(compra *model.Purchase, req *purchaseRequest) {
	if req.Quantity != nil {
		compra.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		d, _ := decimal.NewFromString(*req.UnitCost)
		compra.UnitCost = &d
	}
	if req.TotalCost != nil {
		compra.TotalCost, _ = decimal.NewFromString(*req.TotalCost)
	}
	if req.Days != nil {
		compra.Days = req.Days
	}
	if req.Notes != nil {
		compra.Notes = *req.Notes
	}
	if req.Variant != nil {
		compra.Variant = *req.Variant
	}
	if req.Brand != nil {
		compra.Brand = *req.Brand
	}
	if req.GramsPerRoll != nil {
		compra.GramsPerRoll = req.GramsPerRoll
	}
}

func buscarCompra(c *gin.Context) (*model.Purchase, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido."})
		return nil, false
	}
	var compra model.Purchase
	if err := database.DB.First(&compra, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Compra não encontrada."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a compra."})
		}
		return nil, false
	}
	return &compra, true
}
