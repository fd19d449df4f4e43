package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"reversa_back_end/internal/database"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autorizar todas as origens (ajustar em produção)
		return true
	},
}

// StatusWebSocket mantém o painel do lojista atualizado em tempo real:
// toda transição de status publicada no Redis é empurrada pela conexão.
func StatusWebSocket(c *gin.Context) {
	lojaID := c.GetString("loja_id")
	if lojaID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Usuário não vinculado a nenhuma loja"})
		return
	}

	// Upgrade para WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erro no upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// Assinar o canal Redis da loja
	pubsub := database.Redis.Subscribe(ctx, "status:"+lojaID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	// Mensagem de conexão
	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Feed de status ativado",
	})

	// Loop de escuta
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			response := map[string]interface{}{
				"type":    "status_updated",
				"payload": msg.Payload,
			}

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erro ao enviar pelo WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping para manter a conexão viva
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
