package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/services"
)

// GetDashboard agrega contagens e valores por status para a loja
func GetDashboard(c *gin.Context) {
	lojaUUID, ok := lojaFromParam(c)
	if !ok {
		return
	}

	session, err := database.GetSolicitacoesSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	// Devoluções por status
	devolucoesPorStatus := map[string]int{}
	var totalDevolucoes int
	var valorDevolucoes float64
	{
		iter := session.Query(`SELECT status, valor_solicitado FROM devolucoes WHERE loja_id = ? ALLOW FILTERING`,
			lojaUUID).Iter()
		var status string
		var valor float64
		for iter.Scan(&status, &valor) {
			devolucoesPorStatus[status]++
			totalDevolucoes++
			valorDevolucoes += valor
		}
		if err := iter.Close(); err != nil {
			log.Printf("⚠️ Erro ao agregar devoluções: %v", err)
		}
	}

	// Reembolsos por status
	reembolsosPorStatus := map[string]int{}
	var totalReembolsos int
	var valorSolicitadoTotal, valorPagoTotal float64
	{
		iter := session.Query(`SELECT status, valor_solicitado, valor_final FROM reembolsos WHERE loja_id = ? ALLOW FILTERING`,
			lojaUUID).Iter()
		var status string
		var solicitado, final float64
		for iter.Scan(&status, &solicitado, &final) {
			reembolsosPorStatus[status]++
			totalReembolsos++
			valorSolicitadoTotal += solicitado
			if status == "CONCLUIDO" {
				valorPagoTotal += final
			}
		}
		if err := iter.Close(); err != nil {
			log.Printf("⚠️ Erro ao agregar reembolsos: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"devolucoes": gin.H{
			"total":      totalDevolucoes,
			"por_status": devolucoesPorStatus,
			"valor":      valorDevolucoes,
		},
		"reembolsos": gin.H{
			"total":            totalReembolsos,
			"por_status":       reembolsosPorStatus,
			"valor_solicitado": valorSolicitadoTotal,
			"valor_pago":       valorPagoTotal,
		},
	})
}

// SearchSolicitacoes busca solicitações da loja no Elasticsearch
func SearchSolicitacoes(c *gin.Context) {
	lojaUUID, ok := lojaFromParam(c)
	if !ok {
		return
	}

	query := c.Query("q")
	status := c.Query("status")
	if query == "" && status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe ao menos 'q' ou 'status'"})
		return
	}

	hits, err := services.SearchSolicitacoes(lojaUUID.String(), query, status)
	if err != nil {
		log.Printf("❌ Erro na busca Elasticsearch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro na busca"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resultados": hits, "total": len(hits)})
}
