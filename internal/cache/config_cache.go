package cache

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gocql/gocql"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/models"
)

const (
	RegrasCacheTTL = 5 * time.Minute
	ConfigCacheTTL = 5 * time.Minute
)

// GetRegrasFromCache busca as regras de elegibilidade da loja no Redis,
// com fallback para o ScyllaDB.
func GetRegrasFromCache(lojaID gocql.UUID) (*models.RegrasElegibilidade, error) {
	key := "regras:" + lojaID.String()

	// 1. Tenta o cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var regras models.RegrasElegibilidade
		if json.Unmarshal([]byte(data), &regras) == nil {
			return &regras, nil
		}
	}

	// 2. Busca no ScyllaDB
	var regras models.RegrasElegibilidade
	regras.LojaID = lojaID

	err = database.GetPreparedGetRegrasByLoja().Bind(lojaID).Scan(
		&regras.PrazoArrependimentoDias,
		&regras.PrazoDefeitoDias,
		&regras.ValorMinimo,
		&regras.CategoriasBloqueadas,
		&regras.FotosObrigatoriasDefeito,
		&regras.AprovacaoAutomatica,
	)
	if err != nil {
		return nil, err
	}

	// 3. Guarda no cache
	jsonData, _ := json.Marshal(regras)
	database.Redis.Set(ctx, key, jsonData, RegrasCacheTTL)

	return &regras, nil
}

// GetConfigReembolsoFromCache busca a configuração de reembolso da loja
// no Redis, com fallback para o ScyllaDB.
func GetConfigReembolsoFromCache(lojaID gocql.UUID) (*models.ConfigReembolso, error) {
	key := "config_reembolso:" + lojaID.String()

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var config models.ConfigReembolso
		if json.Unmarshal([]byte(data), &config) == nil {
			return &config, nil
		}
	}

	var config models.ConfigReembolso
	config.LojaID = lojaID

	err = database.GetPreparedGetConfigReembolso().Bind(lojaID).Scan(
		&config.TetoAutoAprovacao,
		&config.PriorizarVoucher,
		&config.BonusVoucher,
		&config.CartaoHabilitado,
		&config.PixHabilitado,
		&config.BoletoHabilitado,
		&config.VoucherHabilitado,
		&config.TipoChavePix,
	)
	if err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(config)
	database.Redis.Set(ctx, key, jsonData, ConfigCacheTTL)

	return &config, nil
}

// InvalidateLojaCache derruba o cache de regras e configuração de uma loja.
// Chamado sempre que o painel admin altera a política.
func InvalidateLojaCache(lojaID gocql.UUID) {
	keys := []string{
		"regras:" + lojaID.String(),
		"config_reembolso:" + lojaID.String(),
	}
	if err := database.Redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ Erro ao invalidar cache da loja %s: %v", lojaID, err)
	}
}
