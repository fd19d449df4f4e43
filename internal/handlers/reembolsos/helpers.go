package reembolsos

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/models"
)

func scanReembolso(iter *gocql.Iter, r *models.Reembolso) bool {
	*r = models.Reembolso{}
	return iter.Scan(&r.ID, &r.LojaID, &r.PedidoID, &r.ClienteNome, &r.ClienteEmail,
		&r.Motivo, &r.Observacao, &r.ValorSolicitado, &r.ValorFinal, &r.Moeda, &r.Metodo, &r.ChavePix, &r.Status,
		&r.MotivoRecusa, &r.TransacaoID, &r.CodigoVoucher, &r.StripeRefundID, &r.CreatedAt, &r.UpdatedAt)
}

func loadReembolso(id gocql.UUID) (*models.Reembolso, error) {
	session, err := database.GetSolicitacoesSession()
	if err != nil {
		return nil, err
	}

	var r models.Reembolso
	err = session.Query(`SELECT reembolso_id, loja_id, pedido_id, cliente_nome, cliente_email,
		motivo, observacao, valor_solicitado, valor_final, moeda, metodo, chave_pix, status,
		motivo_recusa, transacao_id, codigo_voucher, stripe_refund_id, created_at, updated_at
		FROM reembolsos WHERE reembolso_id = ?`, id).Scan(
		&r.ID, &r.LojaID, &r.PedidoID, &r.ClienteNome, &r.ClienteEmail,
		&r.Motivo, &r.Observacao, &r.ValorSolicitado, &r.ValorFinal, &r.Moeda, &r.Metodo, &r.ChavePix, &r.Status,
		&r.MotivoRecusa, &r.TransacaoID, &r.CodigoVoucher, &r.StripeRefundID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// loadReembolsoFromParam carrega o reembolso do :id e aplica o isolamento
// multi-tenant (mesma regra das devoluções).
func loadReembolsoFromParam(c *gin.Context) (*models.Reembolso, bool) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de reembolso inválido"})
		return nil, false
	}

	r, err := loadReembolso(gocql.UUID(uid))
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reembolso não encontrado"})
		return nil, false
	}
	if err != nil {
		log.Printf("❌ Erro ao carregar reembolso: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar o reembolso"})
		return nil, false
	}

	role := c.GetString("role")
	switch role {
	case "admin":
	case "lojista":
		if c.GetString("loja_id") != r.LojaID.String() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Reembolso pertence a outra loja"})
			return nil, false
		}
	default:
		email, _ := c.Get("email")
		if clienteEmail, _ := email.(string); clienteEmail != r.ClienteEmail {
			c.JSON(http.StatusForbidden, gin.H{"error": "Reembolso pertence a outro cliente"})
			return nil, false
		}
	}

	return r, true
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
