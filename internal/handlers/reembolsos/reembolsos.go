package reembolsos

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"reversa_back_end/internal/cache"
	"reversa_back_end/internal/database"
	"reversa_back_end/internal/handlers/pedidos"
	"reversa_back_end/internal/models"
	"reversa_back_end/internal/reembolso"
	"reversa_back_end/internal/services"
	"reversa_back_end/internal/utils"
)

// CreateReembolso abre um pedido de reembolso. O método de estorno vem do
// resolvedor sobre a configuração da loja; valor até o teto de aprovação
// automática já nasce aprovado.
func CreateReembolso(c *gin.Context) {
	var input struct {
		PedidoID        string  `json:"pedido_id" binding:"required"`
		Motivo          string  `json:"motivo" binding:"required"`
		Observacao      string  `json:"observacao"`
		ValorSolicitado float64 `json:"valor_solicitado"`
		Metodo          string  `json:"metodo" binding:"required"`
		ChavePix        string  `json:"chave_pix"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pedidoUID, err := uuid.Parse(input.PedidoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pedido_id inválido"})
		return
	}
	pedidoUUID := gocql.UUID(pedidoUID)

	pedido, err := pedidos.LoadPedido(pedidoUUID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	if err != nil {
		log.Printf("❌ Erro ao carregar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar o pedido"})
		return
	}

	config, err := cache.GetConfigReembolsoFromCache(pedido.LojaID)
	if err != nil {
		log.Printf("❌ Erro ao carregar configuração de reembolso: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar a configuração da loja"})
		return
	}

	metodos := reembolso.ResolverMetodos(*config)
	if len(metodos) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "A loja não tem nenhum método de estorno habilitado"})
		return
	}

	metodo := reembolso.Metodo(input.Metodo)
	oferecido := false
	for _, m := range metodos {
		if m == metodo {
			oferecido = true
			break
		}
	}
	if !oferecido {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":              "Método de estorno não oferecido por esta loja",
			"metodos_oferecidos": metodos,
		})
		return
	}

	if metodo == reembolso.MetodoPix && input.ChavePix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chave_pix é obrigatória para estorno via PIX"})
		return
	}

	valor := input.ValorSolicitado
	if valor <= 0 {
		valor = pedido.ValorTotal
	}
	if valor > pedido.ValorTotal {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Valor solicitado maior que o valor do pedido"})
		return
	}

	session, err := database.GetSolicitacoesSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	r := models.Reembolso{
		ID:              gocql.TimeUUID(),
		LojaID:          pedido.LojaID,
		PedidoID:        pedidoUUID,
		ClienteNome:     pedido.ClienteNome,
		ClienteEmail:    pedido.ClienteEmail,
		Motivo:          input.Motivo,
		Observacao:      input.Observacao,
		ValorSolicitado: valor,
		Moeda:           "BRL",
		Metodo:          string(metodo),
		ChavePix:        input.ChavePix,
		Status:          string(reembolso.StatusSolicitado),
		CreatedAt:       time.Now(),
	}

	err = session.Query(`INSERT INTO reembolsos (reembolso_id, loja_id, pedido_id, cliente_nome, cliente_email,
		motivo, observacao, valor_solicitado, valor_final, moeda, metodo, chave_pix, status,
		motivo_recusa, transacao_id, codigo_voucher, stripe_refund_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.LojaID, r.PedidoID, r.ClienteNome, r.ClienteEmail,
		r.Motivo, r.Observacao, r.ValorSolicitado, 0.0, r.Moeda, r.Metodo, r.ChavePix, r.Status,
		"", "", "", "", r.CreatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erro ao criar reembolso: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar o reembolso"})
		return
	}

	insertTimeline(r.ID, "criado", "Reembolso registrado", "cliente", "", r.Status)

	// Valor até o teto entra direto em aprovado, com timeline completa
	if config.TetoAutoAprovacao > 0 && valor <= config.TetoAutoAprovacao {
		status := reembolso.Status(r.Status)
		ctx := reembolso.Contexto{ValorSolicitado: valor, ValorFinal: valor, Ator: "system"}
		for _, acao := range []reembolso.Acao{reembolso.AcaoIniciarAnalise, reembolso.AcaoAprovar} {
			res, err := reembolso.Transicionar(status, acao, ctx)
			if err != nil {
				log.Printf("⚠️ Falha na aprovação automática do reembolso %s: %v", r.ID, err)
				break
			}
			insertTimeline(r.ID, string(res.Evento.Acao), res.Evento.Descricao, res.Evento.Ator,
				string(res.Evento.DeStatus), string(res.Evento.ParaStatus))
			status = res.ProximoStatus
		}

		if status != reembolso.Status(r.Status) {
			if err := session.Query(`UPDATE reembolsos SET status = ?, valor_final = ?, updated_at = ? WHERE reembolso_id = ?`,
				string(status), valor, time.Now(), r.ID).Exec(); err != nil {
				log.Printf("❌ Erro ao gravar aprovação automática: %v", err)
			} else {
				r.Status = string(status)
				r.ValorFinal = valor
				log.Printf("✅ Reembolso %s aprovado automaticamente (R$ %.2f ≤ teto R$ %.2f)",
					r.ID, valor, config.TetoAutoAprovacao)
			}
		}
	}

	services.IndexReembolso(r)
	cache.PublishStatusUpdate(r.LojaID.String(), r.ID.String(), r.Status)
	go utils.SendReembolsoStatusEmail(r.ClienteEmail, r.ClienteNome, r.ID.String(), r.Status)

	utils.LogAction(c, utils.ACTION_REEMBOLSO_CREATE, utils.RESOURCE_REEMBOLSO, r.ID.String(), nil,
		map[string]interface{}{"metodo": r.Metodo, "valor": r.ValorSolicitado, "status": r.Status})

	response := gin.H{"reembolso": r}
	if metodo == reembolso.MetodoVoucher {
		response["valor_voucher"] = reembolso.AplicarBonusVoucher(valor, *config)
	}
	c.JSON(http.StatusCreated, response)
}

// PreviewMetodos devolve os métodos de estorno da loja na ordem de
// exibição, com o valor em voucher já com bônus aplicado.
func PreviewMetodos(c *gin.Context) {
	lojaUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "loja_id inválido"})
		return
	}

	config, err := cache.GetConfigReembolsoFromCache(gocql.UUID(lojaUID))
	if err != nil {
		log.Printf("❌ Erro ao carregar configuração de reembolso: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar a configuração da loja"})
		return
	}

	metodos := reembolso.ResolverMetodos(*config)

	response := gin.H{
		"metodos":        metodos,
		"tipo_chave_pix": config.TipoChavePix,
	}

	if v := c.Query("valor"); v != "" {
		if valor, err := strconv.ParseFloat(v, 64); err == nil && valor > 0 {
			for _, m := range metodos {
				if m == reembolso.MetodoVoucher {
					response["valor_voucher"] = reembolso.AplicarBonusVoucher(valor, *config)
					response["bonus_voucher"] = config.BonusVoucher
					break
				}
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

// ListReembolsos lista os reembolsos da loja do lojista autenticado
func ListReembolsos(c *gin.Context) {
	lojaID := c.GetString("loja_id")
	if lojaID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Usuário não vinculado a nenhuma loja"})
		return
	}

	lojaUUID, err := gocql.ParseUUID(lojaID)
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

	statusFilter := c.Query("status")

	var results []models.Reembolso
	iter := session.Query(`SELECT reembolso_id, loja_id, pedido_id, cliente_nome, cliente_email,
		motivo, observacao, valor_solicitado, valor_final, moeda, metodo, chave_pix, status,
		motivo_recusa, transacao_id, codigo_voucher, stripe_refund_id, created_at, updated_at
		FROM reembolsos WHERE loja_id = ? ALLOW FILTERING`, lojaUUID).Iter()

	var r models.Reembolso
	for scanReembolso(iter, &r) {
		if statusFilter != "" && r.Status != statusFilter {
			continue
		}
		results = append(results, r)
	}
	if err := iter.Close(); err != nil {
		log.Printf("⚠️ Erro ao fechar iterador: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"reembolsos": results, "total": len(results)})
}

// ListMeusReembolsos lista os reembolsos do cliente autenticado
func ListMeusReembolsos(c *gin.Context) {
	email, _ := c.Get("email")
	clienteEmail, _ := email.(string)
	if clienteEmail == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não autenticado"})
		return
	}

	session, err := database.GetSolicitacoesSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	var results []models.Reembolso
	iter := session.Query(`SELECT reembolso_id, loja_id, pedido_id, cliente_nome, cliente_email,
		motivo, observacao, valor_solicitado, valor_final, moeda, metodo, chave_pix, status,
		motivo_recusa, transacao_id, codigo_voucher, stripe_refund_id, created_at, updated_at
		FROM reembolsos WHERE cliente_email = ? ALLOW FILTERING`, clienteEmail).Iter()

	var r models.Reembolso
	for scanReembolso(iter, &r) {
		results = append(results, r)
	}
	if err := iter.Close(); err != nil {
		log.Printf("⚠️ Erro ao fechar iterador: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"reembolsos": results, "total": len(results)})
}

// GetReembolso devolve o reembolso com timeline e ações possíveis
func GetReembolso(c *gin.Context) {
	r, ok := loadReembolsoFromParam(c)
	if !ok {
		return
	}

	timeline := loadTimeline(r.ID)
	acoes := reembolso.AcoesDisponiveis(reembolso.Status(r.Status))

	c.JSON(http.StatusOK, gin.H{
		"reembolso":       r,
		"timeline":        timeline,
		"acoes_possiveis": acoes,
		"status_terminal": reembolso.Terminal(reembolso.Status(r.Status)),
	})
}
