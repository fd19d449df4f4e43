package devolucoes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reversa_back_end/internal/cache"
	"reversa_back_end/internal/database"
	"reversa_back_end/internal/devolucao"
	"reversa_back_end/internal/services"
	"reversa_back_end/internal/utils"
)

// TransitionDevolucao executa uma ação do fluxo de devolução. A gravação
// usa compare-and-set (LWT) sobre o status lido: se outro agente transitou
// a mesma solicitação no meio tempo, a requisição volta 409 sem efeito.
func TransitionDevolucao(c *gin.Context) {
	d, ok := loadDevolucaoFromParam(c)
	if !ok {
		return
	}

	var input struct {
		Acao           string `json:"acao" binding:"required"`
		MotivoRecusa   string `json:"motivo_recusa"`
		CodigoRastreio string `json:"codigo_rastreio"`
		Descricao      string `json:"descricao"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ator := "agente"
	if role := c.GetString("role"); role != "admin" && role != "lojista" {
		ator = "cliente"
	}

	rastreio := input.CodigoRastreio
	if rastreio == "" {
		// Etiqueta emitida antes já registrou o rastreio
		rastreio = d.CodigoRastreio
	}

	ctx := devolucao.Contexto{
		MotivoRecusa:   input.MotivoRecusa,
		CodigoRastreio: rastreio,
		Ator:           ator,
		Descricao:      input.Descricao,
	}

	res, err := devolucao.Transicionar(devolucao.Status(d.Status), devolucao.Acao(input.Acao), ctx)
	if err != nil {
		var transicao *devolucao.ErroTransicaoInvalida
		var evidencia *devolucao.ErroEvidenciaAusente
		switch {
		case errors.As(err, &transicao):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.As(err, &evidencia):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	session, err := database.GetSolicitacoesSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	novoRastreio := rastreio
	if novoRastreio == "" {
		novoRastreio = d.CodigoRastreio
	}

	// CAS sobre o status lido
	var statusAtual string
	applied, err := session.Query(`UPDATE devolucoes SET status = ?, codigo_rastreio = ?, updated_at = ?
		WHERE devolucao_id = ? IF status = ?`,
		string(res.ProximoStatus), novoRastreio, time.Now(), d.ID, d.Status).ScanCAS(&statusAtual)
	if err != nil {
		log.Printf("❌ Erro ao gravar transição: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar a transição"})
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "Solicitação alterada por outra operação, recarregue e tente de novo"})
		return
	}

	insertTimeline(d.ID, string(res.Evento.Acao), res.Evento.Descricao, res.Evento.Ator,
		string(res.Evento.DeStatus), string(res.Evento.ParaStatus))

	d.Status = string(res.ProximoStatus)
	d.CodigoRastreio = novoRastreio
	services.IndexDevolucao(*d)
	cache.PublishStatusUpdate(d.LojaID.String(), d.ID.String(), d.Status)
	go utils.SendDevolucaoStatusEmail(d.ClienteEmail, d.ClienteNome, d.ID.String(), d.Status)

	utils.LogAction(c, utils.ACTION_DEVOLUCAO_TRANSITION, utils.RESOURCE_DEVOLUCAO, d.ID.String(),
		map[string]interface{}{"status": string(res.Evento.DeStatus)},
		map[string]interface{}{"status": d.Status, "acao": input.Acao})

	log.Printf("✅ Devolução %s: %s → %s (%s)", d.ID, res.Evento.DeStatus, res.ProximoStatus, input.Acao)

	c.JSON(http.StatusOK, gin.H{
		"devolucao":       d,
		"evento":          res.Evento,
		"acoes_possiveis": devolucao.AcoesDisponiveis(res.ProximoStatus),
	})
}
