package pedidos

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"reversa_back_end/internal/cache"
	"reversa_back_end/internal/database"
	"reversa_back_end/internal/elegibilidade"
	"reversa_back_end/internal/models"
	"reversa_back_end/internal/utils"
)

// IngestPedido recebe o webhook da vitrine com o snapshot do pedido.
// O pedido é somente leitura aqui: uma vez gravado, nunca muda.
func IngestPedido(c *gin.Context) {
	secret := os.Getenv("WEBHOOK_SECRET")
	if secret == "" || c.GetHeader("X-Webhook-Secret") != secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Webhook não autorizado"})
		return
	}

	var input struct {
		LojaID        string              `json:"loja_id" binding:"required"`
		NumeroExterno string              `json:"numero_externo" binding:"required"`
		ClienteNome   string              `json:"cliente_nome" binding:"required"`
		ClienteEmail  string              `json:"cliente_email" binding:"required,email"`
		ClienteFone     string              `json:"cliente_fone"`
		PaymentIntentID string              `json:"payment_intent_id"`
		Itens           []models.ItemPedido `json:"itens" binding:"required"`
		ValorTotal    float64             `json:"valor_total" binding:"required"`
		DataPedido    time.Time           `json:"data_pedido" binding:"required"`
		DataEntrega   *time.Time          `json:"data_entrega"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lojaUUID, err := gocql.ParseUUID(input.LojaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "loja_id inválido"})
		return
	}

	session, err := database.GetSolicitacoesSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	itensJSON, err := json.Marshal(input.Itens)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Itens inválidos"})
		return
	}

	pedidoID := gocql.TimeUUID()
	now := time.Now()

	// Dedupe por loja + número externo: a vitrine pode reenviar o webhook
	var existingID gocql.UUID
	err = session.Query(`SELECT pedido_id FROM pedidos_by_numero WHERE loja_id = ? AND numero_externo = ?`,
		lojaUUID, input.NumeroExterno).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Pedido já registrado",
			"pedido_id": existingID.String(),
		})
		return
	}
	if err != gocql.ErrNotFound {
		log.Printf("❌ Erro ao consultar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao consultar pedido"})
		return
	}

	err = session.Query(`INSERT INTO pedidos (pedido_id, loja_id, numero_externo, cliente_nome, cliente_email, cliente_fone,
		payment_intent_id, itens_json, valor_total, data_pedido, data_entrega, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pedidoID, lojaUUID, input.NumeroExterno, input.ClienteNome, input.ClienteEmail, input.ClienteFone,
		input.PaymentIntentID, string(itensJSON), input.ValorTotal, input.DataPedido, input.DataEntrega, now).Exec()
	if err != nil {
		log.Printf("❌ Erro ao gravar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar o pedido"})
		return
	}

	if err := session.Query(`INSERT INTO pedidos_by_numero (loja_id, numero_externo, pedido_id) VALUES (?, ?, ?)`,
		lojaUUID, input.NumeroExterno, pedidoID).Exec(); err != nil {
		log.Printf("⚠️ Erro ao gravar índice pedidos_by_numero: %v", err)
	}

	utils.LogAction(c, utils.ACTION_PEDIDO_INGEST, utils.RESOURCE_PEDIDO, pedidoID.String(), nil,
		map[string]interface{}{"numero_externo": input.NumeroExterno, "loja_id": input.LojaID})

	log.Printf("✅ Pedido ingerido: %s (loja %s)", input.NumeroExterno, input.LojaID)
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Pedido registrado",
		"pedido_id": pedidoID.String(),
	})
}

// GetPedido devolve o snapshot de um pedido
func GetPedido(c *gin.Context) {
	pedidoUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pedido inválido"})
		return
	}

	pedido, err := LoadPedido(pedidoUUID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	if err != nil {
		log.Printf("❌ Erro ao carregar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar o pedido"})
		return
	}

	c.JSON(http.StatusOK, pedido)
}

// VerificarElegibilidade roda o avaliador de elegibilidade sobre um pedido
// sem abrir solicitação. Usado pelo portal para mostrar ao cliente se vale
// a pena prosseguir.
func VerificarElegibilidade(c *gin.Context) {
	pedidoUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pedido inválido"})
		return
	}

	var input struct {
		Tipo     string `json:"tipo" binding:"required"`
		Motivo   string `json:"motivo" binding:"required"`
		TemFotos bool   `json:"tem_fotos"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Tipo != elegibilidade.TipoTroca && input.Tipo != elegibilidade.TipoDevolucao {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo deve ser 'troca' ou 'devolucao'"})
		return
	}

	pedido, err := LoadPedido(pedidoUUID)
	if err == gocql.ErrNotFound {
		// Pedido inexistente também passa pelo avaliador: o resultado sai
		// inelegível com o motivo registrado, nunca um erro opaco.
		pedido = nil
	} else if err != nil {
		log.Printf("❌ Erro ao carregar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar o pedido"})
		return
	}

	var regras *models.RegrasElegibilidade
	if pedido != nil {
		regras, err = cache.GetRegrasFromCache(pedido.LojaID)
		if err != nil {
			log.Printf("❌ Erro ao carregar regras da loja: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar as regras da loja"})
			return
		}
	} else {
		regras = &models.RegrasElegibilidade{}
	}

	resultado := elegibilidade.Avaliar(pedido, *regras, input.Tipo, input.Motivo, input.TemFotos)
	c.JSON(http.StatusOK, resultado)
}

// LoadPedido carrega um pedido com os itens desserializados.
// Compartilhado com os handlers de devoluções e reembolsos.
func LoadPedido(pedidoID gocql.UUID) (*models.Pedido, error) {
	session, err := database.GetSolicitacoesSession()
	if err != nil {
		return nil, err
	}

	var (
		lojaID                                                gocql.UUID
		numeroExterno, clienteNome, clienteEmail, clienteFone string
		paymentIntentID, itensJSON                            string
		valorTotal                                            float64
		dataPedido, createdAt                                 time.Time
		dataEntrega                                           *time.Time
	)

	err = session.Query(`SELECT loja_id, numero_externo, cliente_nome, cliente_email, cliente_fone,
		payment_intent_id, itens_json, valor_total, data_pedido, data_entrega, created_at
		FROM pedidos WHERE pedido_id = ?`, pedidoID).Scan(
		&lojaID, &numeroExterno, &clienteNome, &clienteEmail, &clienteFone,
		&paymentIntentID, &itensJSON, &valorTotal, &dataPedido, &dataEntrega, &createdAt)
	if err != nil {
		return nil, err
	}

	var itens []models.ItemPedido
	if itensJSON != "" {
		if err := json.Unmarshal([]byte(itensJSON), &itens); err != nil {
			log.Printf("⚠️ Itens corrompidos no pedido %s: %v", pedidoID, err)
		}
	}

	return &models.Pedido{
		ID:              pedidoID,
		LojaID:          lojaID,
		NumeroExterno:   numeroExterno,
		ClienteNome:     clienteNome,
		ClienteEmail:    clienteEmail,
		ClienteFone:     clienteFone,
		PaymentIntentID: paymentIntentID,
		Itens:           itens,
		ValorTotal:      valorTotal,
		DataPedido:      dataPedido,
		DataEntrega:     dataEntrega,
		CreatedAt:       createdAt,
	}, nil
}
