// /internal/handler/variant_handler.go
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/model"
)

// VariantHandler administra o catálogo de variantes e suas galerias.
type VariantHandler struct{}

// ListPublicVariants devolve só as variantes habilitadas, com a
// galeria, para o configurador público.
func (h *VariantHandler) ListPublicVariants(c *gin.Context) {
	var variantes []model.VariantInfo
	err := database.DB.Where("enabled = ?", true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order, id")
		}).
		Order("display_order, id").
		Find(&variantes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar as variantes."})
		return
	}
	c.JSON(http.StatusOK, variantes)
}

// ListVariants lista o catálogo completo para o painel admin.
func (h *VariantHandler) ListVariants(c *gin.Context) {
	var variantes []model.VariantInfo
	err := database.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order, id")
		}).
		Order("display_order, id").
		Find(&variantes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar as variantes."})
		return
	}
	c.JSON(http.StatusOK, variantes)
}

type variantRequest struct {
	Code         *string `json:"code"`
	Label        *string `json:"label"`
	BoxType      *string `json:"box_type"`
	Enabled      *bool   `json:"enabled"`
	DisplayOrder *int    `json:"display_order"`
}

func (h *VariantHandler) CreateVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}

	erros := make(map[string]string)
	if req.Code == nil || !model.Variant(*req.Code).Valida() {
		erros["code"] = "Variante desconhecida."
	}
	if req.Label == nil || *req.Label == "" {
		erros["label"] = "Obrigatório."
	}
	boxType := model.BoxNoLight
	if req.BoxType != nil {
		boxType = model.BoxType(*req.BoxType)
		if boxType != model.BoxNoLight && boxType != model.BoxWithLight {
			erros["box_type"] = "Valor desconhecido."
		}
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	variante := model.VariantInfo{
		Code:    model.Variant(*req.Code),
		Label:   *req.Label,
		BoxType: boxType,
		Enabled: true,
	}
	if req.Enabled != nil {
		variante.Enabled = *req.Enabled
	}
	if req.DisplayOrder != nil {
		variante.DisplayOrder = *req.DisplayOrder
	}

	if err := database.DB.Create(&variante).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar a variante."})
		return
	}
	c.JSON(http.StatusCreated, variante)
}

func (h *VariantHandler) UpdateVariant(c *gin.Context) {
	variante, ok := buscarVariante(c)
	if !ok {
		return
	}
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}

	erros := make(map[string]string)
	if req.Code != nil && !model.Variant(*req.Code).Valida() {
		erros["code"] = "Variante desconhecida."
	}
	if req.Label != nil && *req.Label == "" {
		erros["label"] = "Obrigatório."
	}
	if req.BoxType != nil {
		bt := model.BoxType(*req.BoxType)
		if bt != model.BoxNoLight && bt != model.BoxWithLight {
			erros["box_type"] = "Valor desconhecido."
		}
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	if req.Code != nil {
		variante.Code = model.Variant(*req.Code)
	}
	if req.Label != nil {
		variante.Label = *req.Label
	}
	if req.BoxType != nil {
		variante.BoxType = model.BoxType(*req.BoxType)
	}
	if req.Enabled != nil {
		variante.Enabled = *req.Enabled
	}
	if req.DisplayOrder != nil {
		variante.DisplayOrder = *req.DisplayOrder
	}

	if err := database.DB.Save(variante).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar a variante."})
		return
	}
	c.JSON(http.StatusOK, variante)
}

// DeleteVariant remove a variante e, em cascata, a galeria.
func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	variante, ok := buscarVariante(c)
	if !ok {
		return
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", variante.ID).Delete(&model.VariantImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(variante).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir a variante."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type variantImageRequest struct {
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
}

func (h *VariantHandler) AddVariantImage(c *gin.Context) {
	variante, ok := buscarVariante(c)
	if !ok {
		return
	}
	var req variantImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"url": "Obrigatória."}})
		return
	}

	img := model.VariantImage{
		VariantID:    variante.ID,
		URL:          req.URL,
		DisplayOrder: req.DisplayOrder,
	}
	if err := database.DB.Create(&img).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao adicionar a imagem."})
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (h *VariantHandler) DeleteVariantImage(c *gin.Context) {
	imgID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido."})
		return
	}
	var img model.VariantImage
	if err := database.DB.First(&img, uint(imgID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Imagem não encontrada."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a imagem."})
		}
		return
	}
	if err := database.DB.Delete(&img).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir a imagem."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func buscarVariante(c *gin.Context) (*model.VariantInfo, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido."})
		return nil, false
	}
	var variante model.VariantInfo
	if err := database.DB.First(&variante, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variante não encontrada."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a variante."})
		}
		return nil, false
	}
	return &variante, true
}
