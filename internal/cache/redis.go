package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"reversa_back_end/internal/database"
)

var ctx = context.Background()

// --- Cache genérico ---

// SetCache guarda um valor no cache
func SetCache(key string, value interface{}, duration time.Duration) error {
	return database.Redis.Set(ctx, key, value, duration).Err()
}

// GetCache recupera um valor do cache
func GetCache(key string) (string, error) {
	return database.Redis.Get(ctx, key).Result()
}

// DeleteCache remove uma chave do cache
func DeleteCache(key string) error {
	return database.Redis.Del(ctx, key).Err()
}

// --- Rate Limiting ---

// IncrementRateLimit incrementa o contador de rate limit dentro da janela
func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// GetRateLimit consulta o contador de rate limit
func GetRateLimit(key string) (int64, error) {
	val, err := database.Redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

// --- Pub/Sub de status ---

// PublishStatusUpdate avisa os assinantes (feed WebSocket do painel) que
// uma solicitação mudou de status.
func PublishStatusUpdate(lojaID, solicitacaoID, novoStatus string) {
	channel := fmt.Sprintf("status:%s", lojaID)
	payload := fmt.Sprintf(`{"solicitacao_id":"%s","status":"%s"}`, solicitacaoID, novoStatus)
	if err := database.Redis.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("⚠️ Erro ao publicar atualização de status: %v", err)
	}
}
