// /internal/handler/stock_handler.go
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/model"
	"github.com/copiiworld/memory-box/internal/notify"
	"github.com/copiiworld/memory-box/internal/store"
)

// StockHandler cuida dos dois contadores: estoque de cajitas prontas
// por variante e estoque de material de embalagem.
type StockHandler struct {
	StockHub *notify.Hub
}

// ListStock devolve as 8 linhas de estoque, criando as que faltarem.
func (h *StockHandler) ListStock(c *gin.Context) {
	if err := store.EnsureStockRows(database.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao preparar o estoque."})
		return
	}
	var stock []model.Stock
	if err := database.DB.Order("box_type, variant").Find(&stock).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar o estoque."})
		return
	}
	c.JSON(http.StatusOK, stock)
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// SetStock define a quantidade absoluta de uma linha de estoque.
func (h *StockHandler) SetStock(c *gin.Context) {
	stock, ok := buscarStock(c)
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"quantity": "Obrigatório."}})
		return
	}
	if *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"quantity": "Não pode ser negativa."}})
		return
	}

	if err := database.DB.Model(stock).Update("quantity", *req.Quantity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar o estoque."})
		return
	}
	h.StockHub.Broadcast(nil)
	c.JSON(http.StatusOK, stock)
}

type addStockRequest struct {
	Variant string `json:"variant"`
	BoxType string `json:"box_type"`
	Amount  *int   `json:"amount"`
}

// AddStock soma unidades a uma linha (variante + tipo), criando a
// linha zerada se ainda não existir.
func (h *StockHandler) AddStock(c *gin.Context) {
	var req addStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}

	erros := make(map[string]string)
	variant := model.Variant(req.Variant)
	boxType := model.BoxType(req.BoxType)
	if boxType == "" {
		boxType = model.BoxNoLight
	}
	if !variant.Valida() || variant.VarianteBase() != variant {
		erros["variant"] = "Variante desconhecida."
	}
	if boxType != model.BoxNoLight && boxType != model.BoxWithLight {
		erros["box_type"] = "Valor desconhecido."
	}
	if req.Amount == nil {
		erros["amount"] = "Obrigatório."
	} else if *req.Amount < 0 {
		erros["amount"] = "Não pode ser negativo."
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	var stock model.Stock
	err := database.DB.Where(model.Stock{Variant: variant, BoxType: boxType}).
		FirstOrCreate(&stock).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a linha de estoque."})
		return
	}
	if err := database.DB.Model(&stock).Update("quantity", stock.Quantity+*req.Amount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar o estoque."})
		return
	}

	h.StockHub.Broadcast(nil)
	c.JSON(http.StatusOK, stock)
}

// ListPackaging devolve as 2 linhas de embalagem, criando se preciso.
func (h *StockHandler) ListPackaging(c *gin.Context) {
	if err := store.EnsurePackagingRows(database.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao preparar a embalagem."})
		return
	}
	var itens []model.PackagingStock
	if err := database.DB.Order("item_type").Find(&itens).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar a embalagem."})
		return
	}
	c.JSON(http.StatusOK, itens)
}

type packagingRequest struct {
	Quantity *int `json:"quantity"`
	Add      *int `json:"add"`
}

// UpdatePackaging aceita quantidade absoluta ("quantity") ou soma
// relativa ("add"); negativos são rejeitados nos dois casos.
func (h *StockHandler) UpdatePackaging(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido."})
		return
	}
	var item model.PackagingStock
	if err := database.DB.First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item de embalagem não encontrado."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a embalagem."})
		}
		return
	}

	var req packagingRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Quantity == nil && req.Add == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe quantity ou add."})
		return
	}

	nova := item.Quantity
	switch {
	case req.Quantity != nil:
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"quantity": "Não pode ser negativa."}})
			return
		}
		nova = *req.Quantity
	case req.Add != nil:
		if *req.Add < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"add": "Não pode ser negativo."}})
			return
		}
		nova = item.Quantity + *req.Add
	}

	if err := database.DB.Model(&item).Update("quantity", nova).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar a embalagem."})
		return
	}
	h.StockHub.Broadcast(nil)
	c.JSON(http.StatusOK, item)
}

func buscarStock(c *gin.Context) (*model.Stock, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido."})
		return nil, false
	}
	var stock model.Stock
	if err := database.DB.First(&stock, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Linha de estoque não encontrada."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar o estoque."})
		}
		return nil, false
	}
	return &stock, true
}
