package reembolsos

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/refund"

	"reversa_back_end/internal/cache"
	"reversa_back_end/internal/database"
	"reversa_back_end/internal/handlers/pedidos"
	"reversa_back_end/internal/reembolso"
	"reversa_back_end/internal/services"
	"reversa_back_end/internal/utils"
)

// TransitionReembolso executa uma ação do fluxo de reembolso. Como nas
// devoluções, a gravação é compare-and-set sobre o status lido.
// marcar_pago liquida conforme o método: estorno Stripe para cartão,
// código gerado para voucher, comprovante manual para PIX e boleto.
func TransitionReembolso(c *gin.Context) {
	r, ok := loadReembolsoFromParam(c)
	if !ok {
		return
	}

	var input struct {
		Acao          string  `json:"acao" binding:"required"`
		ValorFinal    float64 `json:"valor_final"`
		MotivoRecusa  string  `json:"motivo_recusa"`
		TransacaoID   string  `json:"transacao_id"`
		CodigoVoucher string  `json:"codigo_voucher"`
		Descricao     string  `json:"descricao"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acao := reembolso.Acao(input.Acao)
	metodo := reembolso.Metodo(r.Metodo)

	ator := "agente"
	if role := c.GetString("role"); role != "admin" && role != "lojista" {
		ator = "cliente"
	}

	valorFinal := input.ValorFinal
	if acao == reembolso.AcaoAprovar && valorFinal == 0 {
		// Sem valor explícito, aprova integral
		valorFinal = r.ValorSolicitado
	}
	if acao != reembolso.AcaoAprovar {
		valorFinal = r.ValorFinal
	}

	transacaoID := input.TransacaoID
	codigoVoucher := input.CodigoVoucher
	stripeRefundID := r.StripeRefundID

	// Liquidação antes da transição: marcar_pago só passa no motor com a
	// prova em mãos (transacao_id ou codigo_voucher)
	if acao == reembolso.AcaoMarcarPago {
		switch metodo {
		case reembolso.MetodoCartao:
			pedido, err := pedidos.LoadPedido(r.PedidoID)
			if err != nil || pedido.PaymentIntentID == "" {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Pedido sem payment intent para estorno no cartão"})
				return
			}

			params := &stripe.RefundParams{
				PaymentIntent: stripe.String(pedido.PaymentIntentID),
				Amount:        stripe.Int64(int64(r.ValorFinal * 100)),
				Reason:        stripe.String("requested_by_customer"),
			}

			stripeRefund, err := refund.New(params)
			if err != nil {
				log.Printf("❌ Erro no estorno Stripe: %v", err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao processar o estorno no cartão", "details": err.Error()})
				return
			}

			stripeRefundID = stripeRefund.ID
			transacaoID = stripeRefund.ID
			log.Printf("💰 Estorno Stripe criado: %s (R$ %.2f)", stripeRefund.ID, r.ValorFinal)

		case reembolso.MetodoVoucher:
			if codigoVoucher == "" {
				codigoVoucher = gerarCodigoVoucher()
			}
		}
	}

	ctx := reembolso.Contexto{
		ValorSolicitado: r.ValorSolicitado,
		ValorFinal:      valorFinal,
		MotivoRecusa:    input.MotivoRecusa,
		Metodo:          metodo,
		TransacaoID:     transacaoID,
		CodigoVoucher:   codigoVoucher,
		Ator:            ator,
		Descricao:       input.Descricao,
	}

	res, err := reembolso.Transicionar(reembolso.Status(r.Status), acao, ctx)
	if err != nil {
		var transicao *reembolso.ErroTransicaoInvalida
		var valorErr *reembolso.ErroValorInvalido
		var evidencia *reembolso.ErroEvidenciaAusente
		switch {
		case errors.As(err, &transicao):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.As(err, &valorErr):
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

	// CAS sobre o status lido
	var statusAtual string
	applied, err := session.Query(`UPDATE reembolsos SET status = ?, valor_final = ?, motivo_recusa = ?,
		transacao_id = ?, codigo_voucher = ?, stripe_refund_id = ?, updated_at = ?
		WHERE reembolso_id = ? IF status = ?`,
		string(res.ProximoStatus), valorFinal, input.MotivoRecusa,
		transacaoID, codigoVoucher, stripeRefundID, time.Now(),
		r.ID, r.Status).ScanCAS(&statusAtual)
	if err != nil {
		log.Printf("❌ Erro ao gravar transição: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar a transição"})
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "Reembolso alterado por outra operação, recarregue e tente de novo"})
		return
	}

	insertTimeline(r.ID, string(res.Evento.Acao), res.Evento.Descricao, res.Evento.Ator,
		string(res.Evento.DeStatus), string(res.Evento.ParaStatus))

	r.Status = string(res.ProximoStatus)
	r.ValorFinal = valorFinal
	r.MotivoRecusa = input.MotivoRecusa
	r.TransacaoID = transacaoID
	r.CodigoVoucher = codigoVoucher
	r.StripeRefundID = stripeRefundID

	services.IndexReembolso(*r)
	cache.PublishStatusUpdate(r.LojaID.String(), r.ID.String(), r.Status)
	go utils.SendReembolsoStatusEmail(r.ClienteEmail, r.ClienteNome, r.ID.String(), r.Status)

	// O valor solicitado original interessa ao audit de valor alterado
	c.Set("audit_valor_solicitado", r.ValorSolicitado)
	utils.LogAction(c, utils.ACTION_REEMBOLSO_TRANSITION, utils.RESOURCE_REEMBOLSO, r.ID.String(),
		map[string]interface{}{"status": string(res.Evento.DeStatus)},
		map[string]interface{}{"status": r.Status, "acao": input.Acao})

	log.Printf("✅ Reembolso %s: %s → %s (%s)", r.ID, res.Evento.DeStatus, res.ProximoStatus, input.Acao)

	response := gin.H{
		"reembolso":       r,
		"evento":          res.Evento,
		"acoes_possiveis": reembolso.AcoesDisponiveis(res.ProximoStatus),
	}
	if acao == reembolso.AcaoMarcarPago && metodo == reembolso.MetodoVoucher {
		response["codigo_voucher"] = codigoVoucher
	}
	c.JSON(http.StatusOK, response)
}

// GetPixQR gera o QR BR Code para o lojista liquidar um reembolso PIX em
// processamento. O payload copia-e-cola vem junto.
func GetPixQR(c *gin.Context) {
	r, ok := loadReembolsoFromParam(c)
	if !ok {
		return
	}

	if reembolso.Metodo(r.Metodo) != reembolso.MetodoPix {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Reembolso não é via PIX"})
		return
	}
	if reembolso.Status(r.Status) != reembolso.StatusProcessando {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("QR PIX só está disponível em %s (status atual: %s)",
				reembolso.StatusProcessando, r.Status),
		})
		return
	}

	nomeRecebedor := r.ClienteNome
	cidade := os.Getenv("PIX_CIDADE")
	if cidade == "" {
		cidade = "SAO PAULO"
	}

	txid := strings.ReplaceAll(r.ID.String(), "-", "")[:25]

	qr, err := utils.GeneratePixQR(r.ChavePix, nomeRecebedor, cidade, txid, r.ValorFinal)
	if err != nil {
		log.Printf("❌ Erro ao gerar QR PIX: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar o QR PIX"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qr_base64":    qr,
		"copia_e_cola": utils.BuildPixPayload(r.ChavePix, nomeRecebedor, cidade, txid, r.ValorFinal),
		"valor":        r.ValorFinal,
		"chave_pix":    r.ChavePix,
		"txid":         txid,
	})
}

// gerarCodigoVoucher cria um código legível no formato RV-XXXX-XXXX
func gerarCodigoVoucher() string {
	b := make([]byte, 4)
	rand.Read(b)
	code := strings.ToUpper(hex.EncodeToString(b))
	return fmt.Sprintf("RV-%s-%s", code[:4], code[4:])
}
