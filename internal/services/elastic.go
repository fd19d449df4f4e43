package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/models"
)

//
// --- INDEXAÇÃO NO ELASTICSEARCH ---
//

// IndexDevolucao indexa uma solicitação de devolução para busca no painel
func IndexDevolucao(d models.Devolucao) {
	indexDocument("devolucoes", d.ID.String(), d)
}

// IndexReembolso indexa uma solicitação de reembolso
func IndexReembolso(r models.Reembolso) {
	indexDocument("reembolsos", r.ID.String(), r)
}

func indexDocument(index, id string, doc interface{}) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic não inicializado, não foi possível indexar:", id)
		return
	}

	data, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
		Refresh:    "true", // torna o documento visível de imediato
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erro ao enviar para o Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic retornou erro para %s: %s", id, res.String())
	} else {
		log.Printf("✅ Documento indexado no Elasticsearch: %s/%s", index, id)
	}
}

//
// --- BUSCA NO ELASTICSEARCH ---
//

// SearchSolicitacoes busca devoluções e reembolsos da loja por texto livre
// (nome/email do cliente, motivo, observação) com filtro opcional de status.
func SearchSolicitacoes(lojaID, query, status string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("cliente Elasticsearch não inicializado")
	}

	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"cliente_nome", "cliente_email", "motivo", "observacao"},
			},
		},
		{
			"term": map[string]interface{}{
				"loja_id.keyword": lojaID,
			},
		},
	}
	if status != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{
				"status.keyword": status,
			},
		})
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": must,
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erro ao codificar a consulta: %v", err)
	}

	res, err := database.Elastic.Search(
		database.Elastic.Search.WithContext(context.Background()),
		database.Elastic.Search.WithIndex("devolucoes", "reembolsos"),
		database.Elastic.Search.WithBody(&buf),
		database.Elastic.Search.WithSize(50),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("erro na busca: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %v", err)
	}

	resultados := make([]map[string]interface{}, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		resultados = append(resultados, hit.Source)
	}
	return resultados, nil
}
