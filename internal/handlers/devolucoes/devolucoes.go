package devolucoes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"reversa_back_end/internal/cache"
	"reversa_back_end/internal/database"
	"reversa_back_end/internal/devolucao"
	"reversa_back_end/internal/elegibilidade"
	"reversa_back_end/internal/handlers/pedidos"
	"reversa_back_end/internal/models"
	"reversa_back_end/internal/services"
	"reversa_back_end/internal/utils"
)

// CreateDevolucao abre uma solicitação de troca/devolução. O avaliador de
// elegibilidade roda antes de qualquer gravação: solicitação inelegível
// não é criada. Quando o avaliador recomenda aprovação automática, a
// solicitação já nasce aprovada, com a cadeia de transições na timeline.
func CreateDevolucao(c *gin.Context) {
	var input struct {
		PedidoID        string  `json:"pedido_id" binding:"required"`
		Tipo            string  `json:"tipo" binding:"required"`
		Motivo          string  `json:"motivo" binding:"required"`
		Observacao      string  `json:"observacao"`
		ValorSolicitado float64 `json:"valor_solicitado"`
		TemFotos        bool    `json:"tem_fotos"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Tipo != elegibilidade.TipoTroca && input.Tipo != elegibilidade.TipoDevolucao {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo deve ser 'troca' ou 'devolucao'"})
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

	regras, err := cache.GetRegrasFromCache(pedido.LojaID)
	if err != nil {
		log.Printf("❌ Erro ao carregar regras da loja: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar as regras da loja"})
		return
	}

	resultado := elegibilidade.Avaliar(pedido, *regras, input.Tipo, input.Motivo, input.TemFotos)
	if !resultado.Elegivel {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Solicitação inelegível",
			"motivos": resultado.Motivos,
		})
		return
	}

	valor := input.ValorSolicitado
	if valor <= 0 {
		valor = pedido.ValorTotal
	}

	session, err := database.GetSolicitacoesSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	d := models.Devolucao{
		ID:              gocql.TimeUUID(),
		LojaID:          pedido.LojaID,
		PedidoID:        pedidoUUID,
		ClienteNome:     pedido.ClienteNome,
		ClienteEmail:    pedido.ClienteEmail,
		ClienteFone:     pedido.ClienteFone,
		Tipo:            input.Tipo,
		Motivo:          input.Motivo,
		Observacao:      input.Observacao,
		ValorSolicitado: valor,
		Moeda:           "BRL",
		Status:          string(devolucao.StatusNova),
		CreatedAt:       time.Now(),
	}

	err = session.Query(`INSERT INTO devolucoes (devolucao_id, loja_id, pedido_id, cliente_nome, cliente_email, cliente_fone,
		tipo, motivo, observacao, valor_solicitado, moeda, anexos, status, codigo_rastreio, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.LojaID, d.PedidoID, d.ClienteNome, d.ClienteEmail, d.ClienteFone,
		d.Tipo, d.Motivo, d.Observacao, d.ValorSolicitado, d.Moeda, d.Anexos, d.Status, "", d.CreatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erro ao criar devolução: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar a solicitação"})
		return
	}

	insertTimeline(d.ID, "criada", "Solicitação registrada", "cliente", "", d.Status)

	// Aprovação automática recomendada: encadeia as transições pelo motor
	if resultado.AprovacaoAutomatica {
		status := devolucao.Status(d.Status)
		for _, acao := range []devolucao.Acao{devolucao.AcaoIniciarAnalise, devolucao.AcaoAprovar} {
			res, err := devolucao.Transicionar(status, acao, devolucao.Contexto{Ator: "system"})
			if err != nil {
				log.Printf("⚠️ Falha na aprovação automática da devolução %s: %v", d.ID, err)
				break
			}
			insertTimeline(d.ID, string(res.Evento.Acao), res.Evento.Descricao, res.Evento.Ator,
				string(res.Evento.DeStatus), string(res.Evento.ParaStatus))
			status = res.ProximoStatus
		}

		if status != devolucao.Status(d.Status) {
			if err := session.Query(`UPDATE devolucoes SET status = ?, updated_at = ? WHERE devolucao_id = ?`,
				string(status), time.Now(), d.ID).Exec(); err != nil {
				log.Printf("❌ Erro ao gravar aprovação automática: %v", err)
			} else {
				d.Status = string(status)
				log.Printf("✅ Devolução %s aprovada automaticamente", d.ID)
			}
		}
	}

	services.IndexDevolucao(d)
	cache.PublishStatusUpdate(d.LojaID.String(), d.ID.String(), d.Status)
	go utils.SendDevolucaoStatusEmail(d.ClienteEmail, d.ClienteNome, d.ID.String(), d.Status)

	utils.LogAction(c, utils.ACTION_DEVOLUCAO_CREATE, utils.RESOURCE_DEVOLUCAO, d.ID.String(), nil,
		map[string]interface{}{"tipo": d.Tipo, "motivo": d.Motivo, "status": d.Status})

	c.JSON(http.StatusCreated, gin.H{
		"devolucao": d,
		"avisos":    resultado.Avisos,
	})
}

// ListDevolucoes lista as solicitações da loja do lojista autenticado,
// com filtro opcional por status.
func ListDevolucoes(c *gin.Context) {
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

	var results []models.Devolucao
	iter := session.Query(`SELECT devolucao_id, loja_id, pedido_id, cliente_nome, cliente_email, cliente_fone,
		tipo, motivo, observacao, valor_solicitado, moeda, anexos, status, codigo_rastreio, created_at, updated_at
		FROM devolucoes WHERE loja_id = ? ALLOW FILTERING`, lojaUUID).Iter()

	var d models.Devolucao
	for scanDevolucao(iter, &d) {
		if statusFilter != "" && d.Status != statusFilter {
			continue
		}
		results = append(results, d)
	}
	if err := iter.Close(); err != nil {
		log.Printf("⚠️ Erro ao fechar iterador: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"devolucoes": results, "total": len(results)})
}

// ListMinhasDevolucoes lista as solicitações do cliente autenticado
func ListMinhasDevolucoes(c *gin.Context) {
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

	var results []models.Devolucao
	iter := session.Query(`SELECT devolucao_id, loja_id, pedido_id, cliente_nome, cliente_email, cliente_fone,
		tipo, motivo, observacao, valor_solicitado, moeda, anexos, status, codigo_rastreio, created_at, updated_at
		FROM devolucoes WHERE cliente_email = ? ALLOW FILTERING`, clienteEmail).Iter()

	var d models.Devolucao
	for scanDevolucao(iter, &d) {
		results = append(results, d)
	}
	if err := iter.Close(); err != nil {
		log.Printf("⚠️ Erro ao fechar iterador: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"devolucoes": results, "total": len(results)})
}

// GetDevolucao devolve a solicitação com timeline e ações possíveis
func GetDevolucao(c *gin.Context) {
	d, ok := loadDevolucaoFromParam(c)
	if !ok {
		return
	}

	timeline := loadTimeline(d.ID)
	acoes := devolucao.AcoesDisponiveis(devolucao.Status(d.Status))

	c.JSON(http.StatusOK, gin.H{
		"devolucao":        d,
		"timeline":         timeline,
		"acoes_possiveis":  acoes,
		"status_terminal":  devolucao.Terminal(devolucao.Status(d.Status)),
	})
}

// --- helpers ---

func scanDevolucao(iter *gocql.Iter, d *models.Devolucao) bool {
	*d = models.Devolucao{}
	return iter.Scan(&d.ID, &d.LojaID, &d.PedidoID, &d.ClienteNome, &d.ClienteEmail, &d.ClienteFone,
		&d.Tipo, &d.Motivo, &d.Observacao, &d.ValorSolicitado, &d.Moeda, &d.Anexos, &d.Status,
		&d.CodigoRastreio, &d.CreatedAt, &d.UpdatedAt)
}

func loadDevolucao(id gocql.UUID) (*models.Devolucao, error) {
	session, err := database.GetSolicitacoesSession()
	if err != nil {
		return nil, err
	}

	var d models.Devolucao
	err = session.Query(`SELECT devolucao_id, loja_id, pedido_id, cliente_nome, cliente_email, cliente_fone,
		tipo, motivo, observacao, valor_solicitado, moeda, anexos, status, codigo_rastreio, created_at, updated_at
		FROM devolucoes WHERE devolucao_id = ?`, id).Scan(
		&d.ID, &d.LojaID, &d.PedidoID, &d.ClienteNome, &d.ClienteEmail, &d.ClienteFone,
		&d.Tipo, &d.Motivo, &d.Observacao, &d.ValorSolicitado, &d.Moeda, &d.Anexos, &d.Status,
		&d.CodigoRastreio, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// loadDevolucaoFromParam carrega a devolução do :id e aplica o isolamento
// multi-tenant: lojista só enxerga a própria loja, cliente só enxerga as
// próprias solicitações.
func loadDevolucaoFromParam(c *gin.Context) (*models.Devolucao, bool) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de devolução inválido"})
		return nil, false
	}

	d, err := loadDevolucao(gocql.UUID(uid))
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devolução não encontrada"})
		return nil, false
	}
	if err != nil {
		log.Printf("❌ Erro ao carregar devolução: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar a solicitação"})
		return nil, false
	}

	role := c.GetString("role")
	switch role {
	case "admin":
	case "lojista":
		if c.GetString("loja_id") != d.LojaID.String() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Solicitação pertence a outra loja"})
			return nil, false
		}
	default:
		email, _ := c.Get("email")
		if clienteEmail, _ := email.(string); clienteEmail != d.ClienteEmail {
			c.JSON(http.StatusForbidden, gin.H{"error": "Solicitação pertence a outro cliente"})
			return nil, false
		}
	}

	return d, true
}

func loadTimeline(solicitacaoID gocql.UUID) []models.TimelineEvent {
	session, err := database.GetSolicitacoesSession()
	if err != nil {
		return nil
	}

	var events []models.TimelineEvent
	iter := session.Query(`SELECT solicitacao_id, evento_id, acao, descricao, ator, de_status, para_status, created_at
		FROM timeline_events WHERE solicitacao_id = ?`, solicitacaoID).Iter()

	var e models.TimelineEvent
	for iter.Scan(&e.SolicitacaoID, &e.EventoID, &e.Acao, &e.Descricao, &e.Ator, &e.DeStatus, &e.ParaStatus, &e.CreatedAt) {
		events = append(events, e)
		e = models.TimelineEvent{}
	}
	if err := iter.Close(); err != nil {
		log.Printf("⚠️ Erro ao carregar timeline: %v", err)
	}
	return events
}

func insertTimeline(solicitacaoID gocql.UUID, acao, descricao, ator, deStatus, paraStatus string) {
	stmt := database.GetPreparedInsertTimeline()
	if stmt == nil {
		log.Println("⚠️ Prepared statement de timeline indisponível")
		return
	}
	if err := stmt.Bind(solicitacaoID, gocql.TimeUUID(), acao, descricao, ator, deStatus, paraStatus, time.Now()).Exec(); err != nil {
		log.Printf("❌ Erro ao gravar evento de timeline: %v", err)
	}
}
