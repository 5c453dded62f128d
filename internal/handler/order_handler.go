// /internal/handler/order_handler.go
package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/config"
	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/model"
	"github.com/copiiworld/memory-box/internal/notify"
	"github.com/copiiworld/memory-box/internal/service"
	"github.com/copiiworld/memory-box/internal/store"
)

const sessionName = "memory-box-session"

// OrderHandler agrupa os handlers do ciclo de vida do pedido: fluxo
// público (criar, enviar, subir fotos) e fluxo admin (tabela, status,
// finalização com snapshot e baixa de embalagem).
type OrderHandler struct {
	Cfg       *config.Config
	OrdersHub *notify.Hub
	StockHub  *notify.Hub
	Webhooks  *service.WebhookClient
	Sessions  *sessions.CookieStore
}

type orderRequest struct {
	ClientName     *string `json:"client_name"`
	Phone          *string `json:"phone"`
	BoxType        *string `json:"box_type"`
	LedType        *string `json:"led_type"`
	Variant        *string `json:"variant"`
	ShippingOption *string `json:"shipping_option"`
	Status         *string `json:"status"`
	Deposit        *bool   `json:"deposit"`
	Active         *bool   `json:"active"`
}

// validarOpcoes confere os campos de enumeração e devolve erros por
// campo (vazio é permitido: o cliente preenche aos poucos).
func (r *orderRequest) validarOpcoes() map[string]string {
	erros := make(map[string]string)
	if r.BoxType != nil && *r.BoxType != "" {
		if bt := model.BoxType(*r.BoxType); bt != model.BoxNoLight && bt != model.BoxWithLight {
			erros["box_type"] = "Valor desconhecido."
		}
	}
	if r.LedType != nil && *r.LedType != "" {
		if lt := model.LedType(*r.LedType); lt != model.LedWarm && lt != model.LedWhite {
			erros["led_type"] = "Valor desconhecido."
		}
	}
	if r.Variant != nil && *r.Variant != "" && !model.Variant(*r.Variant).Valida() {
		erros["variant"] = "Variante desconhecida."
	}
	if r.ShippingOption != nil && *r.ShippingOption != "" {
		if so := model.ShippingOption(*r.ShippingOption); so != model.ShippingPickupUber && so != model.ShippingProvince {
			erros["shipping_option"] = "Valor desconhecido."
		}
	}
	return erros
}

// CreateOrder cria um pedido em draft no fluxo público. Só o nome do
// cliente é obrigatório; o resto pode vir depois.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}

	erros := req.validarOpcoes()
	if req.ClientName == nil || *req.ClientName == "" {
		erros["client_name"] = "Obrigatório."
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	pedido := model.Order{
		SessionKey: h.sessionKey(c),
		ClientName: *req.ClientName,
		Status:     model.StatusDraft,
		Active:     true,
	}
	aplicarCampos(&pedido, &req)

	if err := database.DB.Create(&pedido).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar o pedido."})
		return
	}

	h.OrdersHub.Broadcast(map[string]any{"order_id": pedido.ID, "client_name": pedido.ClientName})
	c.JSON(http.StatusCreated, pedido)
}

// GetOrder devolve um pedido com seus recortes (público: o cliente
// reabre o pedido pelo link do QR).
func (h *OrderHandler) GetOrder(c *gin.Context) {
	pedido, ok := h.buscarPedido(c)
	if !ok {
		return
	}
	database.DB.Where("order_id = ?", pedido.ID).
		Order("display_order, slot").
		Find(&pedido.ImageCrops)
	c.JSON(http.StatusOK, pedido)
}

// ListOrders lista os pedidos para a tabela do admin. Por padrão só os
// ativos; ?all=1 inclui os escondidos.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	query := database.DB.Order("created_at DESC")
	if c.Query("all") != "1" {
		query = query.Where("active = ?", true)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var pedidos []model.Order
	if err := query.Find(&pedidos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar pedidos."})
		return
	}
	c.JSON(http.StatusOK, pedidos)
}

// UpdateOrder aplica alterações do admin. A transição para
// "processing" é especial: congela os snapshots e dá baixa na
// embalagem uma única vez.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	pedido, ok := h.buscarPedido(c)
	if !ok {
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido."})
		return
	}
	erros := req.validarOpcoes()
	if req.Status != nil && !model.OrderStatus(*req.Status).Valida() {
		erros["status"] = "Status desconhecido."
	}
	if req.ClientName != nil && *req.ClientName == "" {
		erros["client_name"] = "Obrigatório."
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	aplicarCampos(pedido, &req)
	if req.Deposit != nil {
		pedido.Deposit = *req.Deposit
	}
	if req.Active != nil {
		pedido.Active = *req.Active
	}

	finalizando := req.Status != nil &&
		model.OrderStatus(*req.Status) == model.StatusProcessing &&
		pedido.Status != model.StatusProcessing
	if req.Status != nil && !finalizando {
		pedido.Status = model.OrderStatus(*req.Status)
	}

	if err := salvarCampos(database.DB, pedido); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar o pedido."})
		return
	}

	if finalizando {
		if err := h.finalizarPedido(pedido); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao finalizar o pedido."})
			return
		}
	}

	database.DB.First(pedido, pedido.ID)
	h.OrdersHub.Broadcast(map[string]any{"order_id": pedido.ID})
	c.JSON(http.StatusOK, pedido)
}

// finalizarPedido congela custo e preço, dá baixa de uma caixa e uma
// bolsa e dispara o webhook de cobrança. O congelamento é um
// compare-and-set no banco: duas requisições simultâneas não
// descontam embalagem duas vezes.
func (h *OrderHandler) finalizarPedido(pedido *model.Order) error {
	congelou := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		costSettings, err := store.GetCostSettings(tx)
		if err != nil {
			return err
		}
		settings, err := store.GetSiteSettings(tx)
		if err != nil {
			return err
		}
		in, err := service.MontarCostInputs(tx, pedido, costSettings)
		if err != nil {
			return err
		}

		custo := service.CalcularCusto(pedido, in)
		preco := service.PrecoTotal(pedido, settings)

		// A condição de congelamento é o price_snapshot: é a única
		// coluna de snapshot que fica NULL de verdade até a primeira
		// finalização (o JSONMap grava o texto "null", não NULL).
		res := tx.Model(&model.Order{}).
			Where("id = ? AND price_snapshot IS NULL", pedido.ID).
			Updates(map[string]any{
				"status":         model.StatusProcessing,
				"cost_snapshot":  custo.ToJSONMap(),
				"price_snapshot": preco,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Já finalizado antes (corrida ou re-clique): garante o
			// status e não repete os efeitos colaterais.
			log.Printf("Pedido %d já tinha snapshot, finalização tratada como no-op", pedido.ID)
			return tx.Model(&model.Order{}).Where("id = ?", pedido.ID).
				Update("status", model.StatusProcessing).Error
		}
		congelou = true

		if err := store.DecrementPackaging(tx, model.PackagingCajaCarton); err != nil {
			return err
		}
		return store.DecrementPackaging(tx, model.PackagingBolsaEcommerce)
	})
	if err != nil {
		return err
	}

	if congelou {
		h.StockHub.Broadcast(nil)
		// Saldo calculado contra os preços vigentes, não o snapshot.
		settings, err := store.GetSiteSettings(database.DB)
		if err == nil {
			total := service.PrecoTotal(pedido, settings)
			h.Webhooks.NotificarPedidoFinalizado(h.Cfg.WebhookFinalizadoURL, pedido, service.SaldoRestante(total))
		}
	}
	return nil
}

// DeleteOrder apaga de verdade (ação explícita do admin; para apenas
// esconder da tabela existe o PATCH com active=false).
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	pedido, ok := h.buscarPedido(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", pedido.ID).Delete(&model.ImageCrop{}).Error; err != nil {
			return err
		}
		return tx.Delete(pedido).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir o pedido."})
		return
	}

	h.OrdersHub.Broadcast(nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendOrder avança o pedido para in_progress: gera o QR com o deep
// link do pedido e avisa o webhook de novo pedido, se configurado.
func (h *OrderHandler) SendOrder(c *gin.Context) {
	pedido, ok := h.buscarPedido(c)
	if !ok {
		return
	}
	if h.Cfg.FrontendURL == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FRONTEND_URL não configurada."})
		return
	}

	var total int64
	database.DB.Model(&model.ImageCrop{}).Where("order_id = ?", pedido.ID).Count(&total)
	if total != model.TotalSlots {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("O pedido precisa das %d fotos antes do envio (tem %d).", model.TotalSlots, total),
		})
		return
	}

	qr, err := service.GerarQRPedido(h.Cfg.FrontendURL, pedido.ID, h.Cfg.MediaDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar o QR code."})
		return
	}

	pedido.QRCode = qr
	pedido.Status = model.StatusInProgress
	if err := salvarCampos(database.DB, pedido); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar o pedido."})
		return
	}

	h.Webhooks.NotificarPedidoEnviado(h.Cfg.WebhookPedidoURL, pedido)
	h.OrdersHub.Broadcast(map[string]any{"order_id": pedido.ID, "client_name": pedido.ClientName})
	c.JSON(http.StatusOK, pedido)
}

// SubmitImages recebe as dez fotos + retângulos num único multipart.
// A validação é toda feita antes de gravar qualquer coisa: faltou uma
// foto ou um crop não parseia, nada é criado.
func (h *OrderHandler) SubmitImages(c *gin.Context) {
	pedido, ok := h.buscarPedido(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulário multipart inválido."})
		return
	}

	type entrada struct {
		rect service.CropRect
		raw  string
		jpg  []byte
	}
	entradas := make([]entrada, model.TotalSlots)
	erros := make(map[string]string)

	for slot := 0; slot < model.TotalSlots; slot++ {
		campoImg := fmt.Sprintf("image_%d", slot)
		campoCrop := fmt.Sprintf("crop_data_%d", slot)

		files := form.File[campoImg]
		if len(files) == 0 {
			erros[campoImg] = "Foto ausente."
		}
		valores := form.Value[campoCrop]
		if len(valores) == 0 {
			erros[campoCrop] = "Dados de recorte ausentes."
			continue
		}
		rect, err := service.ParseCropRect([]byte(valores[0]))
		if err != nil {
			erros[campoCrop] = err.Error()
			continue
		}
		entradas[slot] = entrada{rect: rect, raw: valores[0]}
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	// Segunda passada: decodifica e recorta tudo em memória.
	for slot := 0; slot < model.TotalSlots; slot++ {
		campoImg := fmt.Sprintf("image_%d", slot)
		file, err := form.File[campoImg][0].Open()
		if err != nil {
			erros[campoImg] = "Não foi possível ler a foto."
			continue
		}
		jpg, err := service.GerarImagemRecortada(file, entradas[slot].rect)
		file.Close()
		if err != nil {
			erros[campoImg] = "Imagem inválida."
			continue
		}
		entradas[slot].jpg = jpg
	}
	if len(erros) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": erros})
		return
	}

	dir := filepath.Join(h.Cfg.MediaDir, "recortes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao preparar o diretório de mídia."})
		return
	}

	var crops []model.ImageCrop
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for slot := 0; slot < model.TotalSlots; slot++ {
			rel := filepath.Join("recortes", fmt.Sprintf("pedido_%d_slot_%d.jpg", pedido.ID, slot))
			if err := os.WriteFile(filepath.Join(h.Cfg.MediaDir, rel), entradas[slot].jpg, 0o644); err != nil {
				return err
			}

			crop := model.ImageCrop{OrderID: pedido.ID, Slot: slot}
			err := tx.Where("order_id = ? AND slot = ?", pedido.ID, slot).
				Assign(map[string]any{
					"display_order": slot,
					"image":         rel,
					"crop_data":     datatypes.JSON(entradas[slot].raw),
				}).
				FirstOrCreate(&crop).Error
			if err != nil {
				return err
			}
			crops = append(crops, crop)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar os recortes."})
		return
	}

	h.OrdersHub.Broadcast(map[string]any{"order_id": pedido.ID})
	c.JSON(http.StatusCreated, crops)
}

// ListImages devolve os recortes do pedido (admin).
func (h *OrderHandler) ListImages(c *gin.Context) {
	pedido, ok := h.buscarPedido(c)
	if !ok {
		return
	}
	var crops []model.ImageCrop
	database.DB.Where("order_id = ?", pedido.ID).
		Order("display_order, slot").
		Find(&crops)
	c.JSON(http.StatusOK, crops)
}

// --- auxiliares ---

// salvarCampos persiste só os campos editáveis do pedido. Os snapshots
// nunca entram no UPDATE: uma gravação feita com um struct defasado
// (lido antes de outra requisição finalizar) não pode zerá-los e
// reabrir o congelamento.
func salvarCampos(db *gorm.DB, pedido *model.Order) error {
	return db.Model(pedido).
		Select("client_name", "phone", "box_type", "led_type", "variant",
			"shipping_option", "status", "deposit", "active", "qr_code").
		Updates(pedido).Error
}

func (h *OrderHandler) buscarPedido(c *gin.Context) (*model.Order, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pedido inválido."})
		return nil, false
	}
	var pedido model.Order
	if err := database.DB.First(&pedido, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar o pedido."})
		}
		return nil, false
	}
	return &pedido, true
}

// sessionKey devolve o token da sessão pública, criando um novo uuid
// na primeira visita (associa os recortes feitos antes do envio).
func (h *OrderHandler) sessionKey(c *gin.Context) string {
	session, _ := h.Sessions.Get(c.Request, sessionName)
	if key, ok := session.Values["session_key"].(string); ok && key != "" {
		return key
	}
	key := uuid.NewString()
	session.Values["session_key"] = key
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Printf("Falha ao salvar a sessão pública: %v", err)
	}
	return key
}

func aplicarCampos(pedido *model.Order, req *orderRequest) {
	if req.ClientName != nil && *req.ClientName != "" {
		pedido.ClientName = *req.ClientName
	}
	if req.Phone != nil {
		pedido.Phone = *req.Phone
	}
	if req.BoxType != nil {
		pedido.BoxType = model.BoxType(*req.BoxType)
	}
	if req.LedType != nil {
		pedido.LedType = model.LedType(*req.LedType)
	}
	if req.Variant != nil {
		pedido.Variant = model.Variant(*req.Variant)
	}
	if req.ShippingOption != nil {
		pedido.ShippingOption = model.ShippingOption(*req.ShippingOption)
	}
}
