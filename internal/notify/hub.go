// /internal/notify/hub.go

// Package notify implementa o canal de notificações do painel: dois
// grupos websocket ("orders" e "stock") que recebem um aviso de
// "algo mudou" e recarregam os dados. Entrega é best-effort, sem fila
// e sem replay; o dashboard também faz polling por conta própria.
package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// O painel roda em outra origem (React dev server); CORS já é
	// liberado no router, aqui seguimos o mesmo critério.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub é um grupo de conexões interessadas num tipo de evento.
type Hub struct {
	evento string

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewHub cria um hub cujo broadcast envia {"type": "<evento>_update"}.
func NewHub(evento string) *Hub {
	return &Hub{
		evento: evento,
		conns:  make(map[*websocket.Conn]bool),
	}
}

// Handler registra a conexão e a mantém aberta até o cliente fechar.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Websocket %s: upgrade falhou: %v", h.evento, err)
			return
		}

		h.mu.Lock()
		h.conns[conn] = true
		h.mu.Unlock()

		// Só lemos para detectar o fechamento; o canal é unidirecional.
		go func() {
			defer h.remover(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// Broadcast envia o evento a todos os conectados. Conexão que falhar é
// descartada; o erro nunca chega ao caller.
func (h *Hub) Broadcast(data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	msg, err := json.Marshal(map[string]any{
		"type": h.evento + "_update",
		"data": data,
	})
	if err != nil {
		log.Printf("Websocket %s: falha ao serializar evento: %v", h.evento, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) remover(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}
