package models

// OpcaoPostagem é uma opção de logística reversa oferecida ao cliente
// quando a devolução entra em "Aguardando postagem".
type OpcaoPostagem struct {
	ID            string  `json:"id"`
	Nome          string  `json:"nome"`
	Descricao     string  `json:"descricao"`
	Preco         float64 `json:"preco"`
	PrazoDias     int     `json:"prazo_dias"`
	PorContaLoja  bool    `json:"por_conta_loja"`
}

type CalculoPostagem struct {
	Opcoes       []OpcaoPostagem `json:"opcoes"`
	TetoGratuito float64         `json:"teto_gratuito"`
	ValorPedido  float64         `json:"valor_pedido"`
	Gratuita     bool            `json:"gratuita"`
}
