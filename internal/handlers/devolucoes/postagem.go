package devolucoes

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/devolucao"
	"reversa_back_end/internal/models"
	"reversa_back_end/internal/utils"
)

// Opções de logística reversa oferecidas hoje. Preço zero quando a loja
// assume o frete (por_conta_loja) ou quando o pedido passa do teto.
var opcoesPostagem = []models.OpcaoPostagem{
	{ID: "pac_reverso", Nome: "PAC Reverso", Descricao: "Postagem em agência dos Correios", Preco: 19.90, PrazoDias: 9, PorContaLoja: false},
	{ID: "sedex_reverso", Nome: "SEDEX Reverso", Descricao: "Postagem expressa em agência dos Correios", Preco: 34.90, PrazoDias: 4, PorContaLoja: false},
	{ID: "coleta", Nome: "Coleta domiciliar", Descricao: "Coleta no endereço do cliente", Preco: 0, PrazoDias: 7, PorContaLoja: true},
}

// CalcularPostagem devolve as opções de logística reversa para a solicitação
func CalcularPostagem(c *gin.Context) {
	d, ok := loadDevolucaoFromParam(c)
	if !ok {
		return
	}

	teto := 150.0
	if v := os.Getenv("TETO_POSTAGEM_GRATUITA"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			teto = parsed
		}
	}

	gratuita := d.ValorSolicitado >= teto

	opcoes := make([]models.OpcaoPostagem, len(opcoesPostagem))
	copy(opcoes, opcoesPostagem)
	if gratuita {
		for i := range opcoes {
			opcoes[i].Preco = 0
			opcoes[i].PorContaLoja = true
		}
	}

	c.JSON(http.StatusOK, models.CalculoPostagem{
		Opcoes:       opcoes,
		TetoGratuito: teto,
		ValorPedido:  d.ValorSolicitado,
		Gratuita:     gratuita,
	})
}

// EmitirEtiqueta gera a etiqueta de postagem em PDF (Chrome headless) e
// envia por e-mail ao cliente. Só faz sentido com a solicitação em
// "Aguardando postagem".
func EmitirEtiqueta(c *gin.Context) {
	d, ok := loadDevolucaoFromParam(c)
	if !ok {
		return
	}

	if devolucao.Status(d.Status) != devolucao.StatusAguardandoPostagem {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("Etiqueta só pode ser emitida em '%s' (status atual: %s)",
				devolucao.StatusAguardandoPostagem, d.Status),
		})
		return
	}

	var input struct {
		CodigoRastreio string `json:"codigo_rastreio"`
	}
	// Body opcional: sem rastreio novo, usa o já registrado
	_ = c.ShouldBindJSON(&input)

	rastreio := d.CodigoRastreio
	if input.CodigoRastreio != "" {
		rastreio = input.CodigoRastreio
	}
	if rastreio == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum código de rastreio informado"})
		return
	}

	if rastreio != d.CodigoRastreio {
		session, err := database.GetSolicitacoesSession()
		if err != nil {
			log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
			return
		}
		if err := session.Query(`UPDATE devolucoes SET codigo_rastreio = ?, updated_at = ? WHERE devolucao_id = ?`,
			rastreio, time.Now(), d.ID).Exec(); err != nil {
			log.Printf("❌ Erro ao gravar código de rastreio: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar o código de rastreio"})
			return
		}
	}

	etiquetaURL := os.Getenv("ETIQUETA_URL")
	if etiquetaURL == "" {
		etiquetaURL = "http://localhost:3000/etiqueta"
	}

	pdf, err := utils.RenderEtiquetaPDF(etiquetaURL, d.ID.String(), rastreio)
	if err != nil {
		log.Printf("❌ Erro ao renderizar etiqueta: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar a etiqueta em PDF"})
		return
	}

	subject := "📦 Sua etiqueta de postagem - Reversa"
	html := fmt.Sprintf(`<p>Olá, %s!</p>
<p>Sua etiqueta de postagem está em anexo. Imprima, cole na embalagem e leve a uma agência dos Correios.</p>
<p>Código de rastreio: <strong>%s</strong></p>`, d.ClienteNome, rastreio)

	go func() {
		if err := utils.SendEmail(d.ClienteEmail, subject, html, pdf, "etiqueta-postagem.pdf"); err != nil {
			log.Printf("❌ Erro ao enviar etiqueta por e-mail: %v", err)
		}
	}()

	log.Printf("📦 Etiqueta emitida para a devolução %s (rastreio %s)", d.ID, rastreio)
	c.JSON(http.StatusOK, gin.H{
		"message":         "Etiqueta gerada e enviada por e-mail",
		"codigo_rastreio": rastreio,
	})
}
