package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"reversa_back_end/internal/cache"
	"reversa_back_end/internal/database"
	"reversa_back_end/internal/models"
	"reversa_back_end/internal/reembolso"
	"reversa_back_end/internal/utils"
)

// ListLojas lista todas as lojas da plataforma (admin)
func ListLojas(c *gin.Context) {
	session, err := database.GetLojasSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	var lojas []models.Loja
	iter := session.Query(`SELECT loja_id, nome, dominio, email, ativa, created_at, updated_at FROM lojas`).Iter()

	var l models.Loja
	for iter.Scan(&l.ID, &l.Nome, &l.Dominio, &l.Email, &l.Ativa, &l.CreatedAt, &l.UpdatedAt) {
		lojas = append(lojas, l)
		l = models.Loja{}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erro ao listar lojas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar as lojas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lojas": lojas, "total": len(lojas)})
}

// CreateLoja cadastra uma loja com regras e configuração padrão
func CreateLoja(c *gin.Context) {
	var input struct {
		Nome    string `json:"nome" binding:"required"`
		Dominio string `json:"dominio"`
		Email   string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetLojasSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	loja := models.Loja{
		ID:        gocql.TimeUUID(),
		Nome:      input.Nome,
		Dominio:   input.Dominio,
		Email:     input.Email,
		Ativa:     true,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`INSERT INTO lojas (loja_id, nome, dominio, email, ativa, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		loja.ID, loja.Nome, loja.Dominio, loja.Email, loja.Ativa, loja.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erro ao criar loja: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar a loja"})
		return
	}

	// Regras e configuração de estorno padrão: CDC brasileiro (7 dias de
	// arrependimento, 30 para defeito), sem aprovação automática
	if err := session.Query(`INSERT INTO regras_elegibilidade (loja_id, prazo_arrependimento_dias, prazo_defeito_dias,
		valor_minimo, categorias_bloqueadas, fotos_obrigatorias_defeito, aprovacao_automatica)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		loja.ID, 7, 30, 0.0, []string{}, true, false).Exec(); err != nil {
		log.Printf("⚠️ Erro ao gravar regras padrão: %v", err)
	}

	if err := session.Query(`INSERT INTO config_reembolso (loja_id, teto_auto_aprovacao, priorizar_voucher, bonus_voucher,
		cartao_habilitado, pix_habilitado, boleto_habilitado, voucher_habilitado, tipo_chave_pix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loja.ID, 0.0, false, 0.0, true, true, false, true, "any").Exec(); err != nil {
		log.Printf("⚠️ Erro ao gravar configuração padrão: %v", err)
	}

	utils.LogAction(c, utils.ACTION_LOJA_CREATE, utils.RESOURCE_LOJA, loja.ID.String(), nil,
		map[string]interface{}{"nome": loja.Nome, "email": loja.Email})

	log.Printf("✅ Loja criada: %s (%s)", loja.Nome, loja.ID)
	c.JSON(http.StatusCreated, gin.H{"loja": loja})
}

// GetLoja devolve uma loja com regras e configuração
func GetLoja(c *gin.Context) {
	lojaUUID, ok := lojaFromParam(c)
	if !ok {
		return
	}

	session, err := database.GetLojasSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	var l models.Loja
	err = session.Query(`SELECT loja_id, nome, dominio, email, ativa, created_at, updated_at
		FROM lojas WHERE loja_id = ?`, lojaUUID).Scan(
		&l.ID, &l.Nome, &l.Dominio, &l.Email, &l.Ativa, &l.CreatedAt, &l.UpdatedAt)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loja não encontrada"})
		return
	}
	if err != nil {
		log.Printf("❌ Erro ao carregar loja: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar a loja"})
		return
	}

	regras, _ := cache.GetRegrasFromCache(lojaUUID)
	config, _ := cache.GetConfigReembolsoFromCache(lojaUUID)

	c.JSON(http.StatusOK, gin.H{
		"loja":             l,
		"regras":           regras,
		"config_reembolso": config,
	})
}

// UpdateLoja altera os dados cadastrais da loja
func UpdateLoja(c *gin.Context) {
	lojaUUID, ok := lojaFromParam(c)
	if !ok {
		return
	}

	var input struct {
		Nome    string `json:"nome"`
		Dominio string `json:"dominio"`
		Email   string `json:"email"`
		Ativa   *bool  `json:"ativa"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetLojasSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	var l models.Loja
	err = session.Query(`SELECT loja_id, nome, dominio, email, ativa, created_at, updated_at
		FROM lojas WHERE loja_id = ?`, lojaUUID).Scan(
		&l.ID, &l.Nome, &l.Dominio, &l.Email, &l.Ativa, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loja não encontrada"})
		return
	}

	if input.Nome != "" {
		l.Nome = input.Nome
	}
	if input.Dominio != "" {
		l.Dominio = input.Dominio
	}
	if input.Email != "" {
		l.Email = input.Email
	}
	if input.Ativa != nil {
		l.Ativa = *input.Ativa
	}

	if err := session.Query(`UPDATE lojas SET nome = ?, dominio = ?, email = ?, ativa = ?, updated_at = ?
		WHERE loja_id = ?`,
		l.Nome, l.Dominio, l.Email, l.Ativa, time.Now(), lojaUUID).Exec(); err != nil {
		log.Printf("❌ Erro ao atualizar loja: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar a loja"})
		return
	}

	utils.LogAction(c, utils.ACTION_LOJA_UPDATE, utils.RESOURCE_LOJA, lojaUUID.String(), nil, input)
	c.JSON(http.StatusOK, gin.H{"loja": l})
}

// UpdateRegras altera as regras de elegibilidade da loja e invalida o cache
func UpdateRegras(c *gin.Context) {
	lojaUUID, ok := lojaFromParam(c)
	if !ok {
		return
	}

	var input struct {
		PrazoArrependimentoDias  int      `json:"prazo_arrependimento_dias" binding:"required,min=0"`
		PrazoDefeitoDias         int      `json:"prazo_defeito_dias" binding:"required,min=0"`
		ValorMinimo              float64  `json:"valor_minimo"`
		CategoriasBloqueadas     []string `json:"categorias_bloqueadas"`
		FotosObrigatoriasDefeito bool     `json:"fotos_obrigatorias_defeito"`
		AprovacaoAutomatica      bool     `json:"aprovacao_automatica"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.ValorMinimo < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valor_minimo não pode ser negativo"})
		return
	}

	session, err := database.GetLojasSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	anterior, _ := cache.GetRegrasFromCache(lojaUUID)

	if err := session.Query(`INSERT INTO regras_elegibilidade (loja_id, prazo_arrependimento_dias, prazo_defeito_dias,
		valor_minimo, categorias_bloqueadas, fotos_obrigatorias_defeito, aprovacao_automatica)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lojaUUID, input.PrazoArrependimentoDias, input.PrazoDefeitoDias,
		input.ValorMinimo, input.CategoriasBloqueadas, input.FotosObrigatoriasDefeito,
		input.AprovacaoAutomatica).Exec(); err != nil {
		log.Printf("❌ Erro ao gravar regras: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar as regras"})
		return
	}

	cache.InvalidateLojaCache(lojaUUID)
	utils.LogAction(c, utils.ACTION_REGRAS_UPDATE, utils.RESOURCE_LOJA, lojaUUID.String(), anterior, input)

	log.Printf("✅ Regras de elegibilidade atualizadas: loja %s", lojaUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Regras atualizadas", "regras": input})
}

// UpdateConfigReembolso altera a configuração de estorno da loja
func UpdateConfigReembolso(c *gin.Context) {
	lojaUUID, ok := lojaFromParam(c)
	if !ok {
		return
	}

	var input struct {
		TetoAutoAprovacao float64 `json:"teto_auto_aprovacao"`
		PriorizarVoucher  bool    `json:"priorizar_voucher"`
		BonusVoucher      float64 `json:"bonus_voucher"`
		CartaoHabilitado  bool    `json:"cartao_habilitado"`
		PixHabilitado     bool    `json:"pix_habilitado"`
		BoletoHabilitado  bool    `json:"boleto_habilitado"`
		VoucherHabilitado bool    `json:"voucher_habilitado"`
		TipoChavePix      string  `json:"tipo_chave_pix"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.TipoChavePix == "" {
		input.TipoChavePix = "any"
	}
	if !reembolso.TipoChavePixValido(input.TipoChavePix) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tipo_chave_pix inválido (any, cpf, cnpj, email, phone)"})
		return
	}
	if input.BonusVoucher < 0 || input.TetoAutoAprovacao < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valores não podem ser negativos"})
		return
	}

	session, err := database.GetLojasSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	anterior, _ := cache.GetConfigReembolsoFromCache(lojaUUID)

	if err := session.Query(`INSERT INTO config_reembolso (loja_id, teto_auto_aprovacao, priorizar_voucher, bonus_voucher,
		cartao_habilitado, pix_habilitado, boleto_habilitado, voucher_habilitado, tipo_chave_pix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lojaUUID, input.TetoAutoAprovacao, input.PriorizarVoucher, input.BonusVoucher,
		input.CartaoHabilitado, input.PixHabilitado, input.BoletoHabilitado,
		input.VoucherHabilitado, input.TipoChavePix).Exec(); err != nil {
		log.Printf("❌ Erro ao gravar configuração: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar a configuração"})
		return
	}

	cache.InvalidateLojaCache(lojaUUID)
	utils.LogAction(c, utils.ACTION_CONFIG_REEMBOLSO_UPDATE, utils.RESOURCE_LOJA, lojaUUID.String(), anterior, input)

	log.Printf("✅ Configuração de reembolso atualizada: loja %s", lojaUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Configuração atualizada", "config_reembolso": input})
}

// lojaFromParam resolve o :id e aplica o isolamento: lojista só acessa a
// própria loja, admin acessa qualquer uma.
func lojaFromParam(c *gin.Context) (gocql.UUID, bool) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de loja inválido"})
		return gocql.UUID{}, false
	}
	lojaUUID := gocql.UUID(uid)

	if c.GetString("role") != "admin" && c.GetString("loja_id") != lojaUUID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso restrito à própria loja"})
		return gocql.UUID{}, false
	}

	return lojaUUID, true
}
