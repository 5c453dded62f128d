// /internal/service/webhook.go
package service

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/copiiworld/memory-box/internal/model"
)

// WebhookClient envia notificações JSON aos fluxos do n8n. Tudo aqui é
// best-effort: erro de rede, timeout ou status não-2xx são registrados
// no log e engolidos, nunca derrubam a requisição do admin.
type WebhookClient struct {
	http *http.Client
}

func NewWebhookClient() *WebhookClient {
	return &WebhookClient{
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// NotificarPedidoEnviado avisa o fluxo de "novo pedido" (Telegram +
// WhatsApp) com os dados de contato e a configuração escolhida.
// URL vazia significa webhook não configurado: não é erro, só no-op.
func (w *WebhookClient) NotificarPedidoEnviado(url string, pedido *model.Order) {
	if url == "" {
		return
	}
	w.enviar(url, map[string]any{
		"order_id":        pedido.ID,
		"client_name":     pedido.ClientName,
		"phone":           pedido.Phone,
		"box_type":        pedido.BoxType,
		"led_type":        pedido.LedType,
		"variant":         pedido.Variant,
		"shipping_option": pedido.ShippingOption,
	})
}

// NotificarPedidoFinalizado avisa o fluxo de cobrança do saldo com o
// primeiro nome, telefone normalizado e saldo restante. Telefone vazio
// pula a notificação inteira.
func (w *WebhookClient) NotificarPedidoFinalizado(url string, pedido *model.Order, saldo int) {
	if url == "" {
		return
	}
	telefone := NormalizarTelefone(pedido.Phone)
	if telefone == "" {
		log.Printf("Pedido %d sem telefone, webhook de finalização ignorado", pedido.ID)
		return
	}
	w.enviar(url, map[string]any{
		"first_name":  primeiroNome(pedido.ClientName),
		"phone":       telefone,
		"balance_due": saldo,
	})
}

func (w *WebhookClient) enviar(url string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Webhook %s: falha ao serializar payload: %v", url, err)
		return
	}
	resp, err := w.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("Webhook %s: %v", url, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Webhook %s respondeu %d", url, resp.StatusCode)
	}
}

func primeiroNome(nome string) string {
	partes := strings.Fields(nome)
	if len(partes) == 0 {
		return ""
	}
	return partes[0]
}
