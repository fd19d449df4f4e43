package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// GeneratePixQR monta o payload BR Code (EMV) de um PIX copia-e-cola com
// valor definido e devolve o QR em base64, pronto para <img src="...">.
// Usado no caminho de estorno via PIX.
func GeneratePixQR(chave, nomeRecebedor, cidade, txid string, valor float64) (string, error) {
	payload := buildPixPayload(chave, nomeRecebedor, cidade, txid, valor)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// BuildPixPayload expõe o payload copia-e-cola (sem o QR) para a UI.
func BuildPixPayload(chave, nomeRecebedor, cidade, txid string, valor float64) string {
	return buildPixPayload(chave, nomeRecebedor, cidade, txid, valor)
}

func buildPixPayload(chave, nomeRecebedor, cidade, txid string, valor float64) string {
	// Limites do padrão BR Code
	if len(nomeRecebedor) > 25 {
		nomeRecebedor = nomeRecebedor[:25]
	}
	if len(cidade) > 15 {
		cidade = cidade[:15]
	}
	if txid == "" {
		txid = "***"
	}

	merchantAccount := emvField("00", "br.gov.bcb.pix") + emvField("01", chave)

	var b strings.Builder
	b.WriteString(emvField("00", "01"))                       // payload format
	b.WriteString(emvField("26", merchantAccount))            // merchant account info (PIX)
	b.WriteString(emvField("52", "0000"))                     // merchant category code
	b.WriteString(emvField("53", "986"))                      // moeda: BRL
	b.WriteString(emvField("54", fmt.Sprintf("%.2f", valor))) // valor
	b.WriteString(emvField("58", "BR"))
	b.WriteString(emvField("59", nomeRecebedor))
	b.WriteString(emvField("60", cidade))
	b.WriteString(emvField("62", emvField("05", txid)))

	payload := b.String() + "6304"
	return payload + crc16CCITT(payload)
}

func emvField(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// crc16CCITT calcula o CRC-16/CCITT-FALSE exigido pelo campo 63 do BR Code
func crc16CCITT(data string) string {
	crc := uint16(0xFFFF)
	for _, c := range []byte(data) {
		crc ^= uint16(c) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return fmt.Sprintf("%04X", crc)
}
