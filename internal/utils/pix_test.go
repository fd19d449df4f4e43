package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPixPayload_CamposObrigatorios(t *testing.T) {
	payload := BuildPixPayload("loja@reversa.com.br", "Loja Exemplo", "SAO PAULO", "TX123", 149.90)

	assert.Contains(t, payload, "br.gov.bcb.pix")
	assert.Contains(t, payload, "loja@reversa.com.br")
	assert.Contains(t, payload, "Loja Exemplo")
	assert.Contains(t, payload, "SAO PAULO")
	assert.Contains(t, payload, "149.90")
	assert.Contains(t, payload, "5303986") // moeda BRL
}

func TestBuildPixPayload_CRCValido(t *testing.T) {
	payload := BuildPixPayload("11999990000", "Loja Exemplo", "RECIFE", "TX1", 10.00)

	// O CRC são os 4 últimos caracteres e cobre tudo até o "6304" inclusive
	require.Greater(t, len(payload), 8)
	base := payload[:len(payload)-4]
	crc := payload[len(payload)-4:]

	assert.True(t, strings.HasSuffix(base, "6304"))
	assert.Equal(t, crc16CCITT(base), crc)
}

func TestBuildPixPayload_TruncaNomeECidade(t *testing.T) {
	nome := strings.Repeat("A", 40)
	cidade := strings.Repeat("B", 30)
	payload := BuildPixPayload("chave", nome, cidade, "TX1", 1.00)

	assert.NotContains(t, payload, nome)
	assert.Contains(t, payload, strings.Repeat("A", 25))
	assert.NotContains(t, payload, cidade)
	assert.Contains(t, payload, strings.Repeat("B", 15))
}

func TestBuildPixPayload_TxidPadrao(t *testing.T) {
	payload := BuildPixPayload("chave", "Loja", "NATAL", "", 5.00)
	assert.Contains(t, payload, "***")
}

func TestGeneratePixQR_RetornaDataURL(t *testing.T) {
	qr, err := GeneratePixQR("chave@pix.com", "Loja", "CURITIBA", "TX9", 33.50)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
}
