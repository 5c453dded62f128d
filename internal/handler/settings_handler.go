// /internal/handler/settings_handler.go
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/model"
	"github.com/copiiworld/memory-box/internal/store"
)

// SettingsHandler expõe os dois singletons de configuração e o
// catálogo de mídias de fundo.
type SettingsHandler struct{}

// GetPrices devolve preços e dados de pagamento (público: a Home e o
// modal de pedido leem daqui).
func (h *SettingsHandler) GetPrices(c *gin.Context) {
	s, err := store.GetSiteSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar as configurações."})
		return
	}
	c.JSON(http.StatusOK, s)
}

type pricesRequest struct {
	PriceMercadolibre *int    `json:"price_mercadolibre"`
	PriceSinLuz       *int    `json:"price_sin_luz"`
	PriceConLuz       *int    `json:"price_con_luz"`
	PricePilas        *int    `json:"price_pilas"`
	DepositAmount     *int    `json:"deposit_amount"`
	TransferAlias     *string `json:"transfer_alias"`
	TransferBank      *string `json:"transfer_bank"`
	TransferHolder    *string `json:"transfer_holder"`
	ContactWhatsapp   *string `json:"contact_whatsapp"`
	ContactEmail      *string `json:"contact_email"`
	LinkMercadolibre  *string `json:"link_mercadolibre"`
	HomeBackgroundID  *uint   `json:"home_background_id"`
}

// UpdatePrices atualiza parcialmente o singleton de preços (admin).
func (h *SettingsHandler) UpdatePrices(c *gin.Context) {
	s, err := store.GetSiteSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar as configurações."})
		return
	}

	var req pricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}

	erros := make(map[string]string)
	for campo, v := range map[string]*int{
		"price_mercadolibre": req.PriceMercadolibre,
		"price_sin_luz":      req.PriceSinLuz,
		"price_con_luz":      req.PriceConLuz,
		"price_pilas":        req.PricePilas,
		"deposit_amount":     req.DepositAmount,
	} {
		if v != nil && *v < 0 {
			erros[campo] = "Não pode ser negativo."
		}
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	if req.PriceMercadolibre != nil {
		s.PriceMercadolibre = *req.PriceMercadolibre
	}
	if req.PriceSinLuz != nil {
		s.PriceSinLuz = *req.PriceSinLuz
	}
	if req.PriceConLuz != nil {
		s.PriceConLuz = *req.PriceConLuz
	}
	if req.PricePilas != nil {
		s.PricePilas = *req.PricePilas
	}
	if req.DepositAmount != nil {
		s.DepositAmount = *req.DepositAmount
	}
	if req.TransferAlias != nil {
		s.TransferAlias = *req.TransferAlias
	}
	if req.TransferBank != nil {
		s.TransferBank = *req.TransferBank
	}
	if req.TransferHolder != nil {
		s.TransferHolder = *req.TransferHolder
	}
	if req.ContactWhatsapp != nil {
		s.ContactWhatsapp = *req.ContactWhatsapp
	}
	if req.ContactEmail != nil {
		s.ContactEmail = *req.ContactEmail
	}
	if req.LinkMercadolibre != nil {
		s.LinkMercadolibre = *req.LinkMercadolibre
	}
	if req.HomeBackgroundID != nil {
		s.HomeBackgroundID = req.HomeBackgroundID
	}

	if err := database.DB.Save(s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar as configurações."})
		return
	}
	c.JSON(http.StatusOK, s)
}

// GetCosts devolve o JSON livre de custos de referência (admin).
func (h *SettingsHandler) GetCosts(c *gin.Context) {
	cs, err := store.GetCostSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar os custos de referência."})
		return
	}
	c.JSON(http.StatusOK, cs.Data)
}

// UpdateCosts substitui o JSON de custos de referência. O corpo
// precisa ser um objeto JSON.
func (h *SettingsHandler) UpdateCosts(c *gin.Context) {
	cs, err := store.GetCostSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar os custos de referência."})
		return
	}

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Esperado um objeto JSON."})
		return
	}

	cs.Data = data
	if err := database.DB.Save(cs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar os custos de referência."})
		return
	}
	c.JSON(http.StatusOK, cs.Data)
}

// --- mídias de fundo ---

// ListBackgroundMedia é público: a Home busca aqui o fundo ativo.
func (h *SettingsHandler) ListBackgroundMedia(c *gin.Context) {
	var itens []model.BackgroundMedia
	if err := database.DB.Order("display_order, id").Find(&itens).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar as mídias."})
		return
	}
	c.JSON(http.StatusOK, itens)
}

type backgroundMediaRequest struct {
	Kind         string `json:"kind"`
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
}

func (h *SettingsHandler) CreateBackgroundMedia(c *gin.Context) {
	var req backgroundMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}

	erros := make(map[string]string)
	if req.Kind == "" {
		req.Kind = "image"
	}
	if req.Kind != "image" && req.Kind != "video" {
		erros["kind"] = "Use image ou video."
	}
	if req.URL == "" {
		erros["url"] = "Obrigatória."
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	item := model.BackgroundMedia{Kind: req.Kind, URL: req.URL, DisplayOrder: req.DisplayOrder}
	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar a mídia."})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *SettingsHandler) DeleteBackgroundMedia(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido."})
		return
	}
	var item model.BackgroundMedia
	if err := database.DB.First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mídia não encontrada."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a mídia."})
		}
		return
	}
	if err := database.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir a mídia."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
