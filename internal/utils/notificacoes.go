package utils

import (
	"fmt"
	"log"
)

// SendDevolucaoStatusEmail avisa o cliente que a solicitação de
// troca/devolução mudou de status.
func SendDevolucaoStatusEmail(clienteEmail, clienteNome, solicitacaoID, novoStatus string) error {
	subject := getDevolucaoEmailSubject(novoStatus)
	html := generateStatusEmailHTML(clienteNome, "Solicitação de devolução", solicitacaoID, novoStatus, getDevolucaoStatusMessage(novoStatus))

	if err := SendEmail(clienteEmail, subject, html, nil, ""); err != nil {
		log.Printf("❌ Erro ao enviar e-mail de status: %v", err)
		return err
	}

	log.Printf("📧 E-mail de status enviado: %s → %s", novoStatus, clienteEmail)
	return nil
}

// SendReembolsoStatusEmail avisa o cliente que o reembolso mudou de status.
func SendReembolsoStatusEmail(clienteEmail, clienteNome, solicitacaoID, novoStatus string) error {
	subject := getReembolsoEmailSubject(novoStatus)
	html := generateStatusEmailHTML(clienteNome, "Solicitação de reembolso", solicitacaoID, novoStatus, getReembolsoStatusMessage(novoStatus))

	if err := SendEmail(clienteEmail, subject, html, nil, ""); err != nil {
		log.Printf("❌ Erro ao enviar e-mail de status: %v", err)
		return err
	}

	log.Printf("📧 E-mail de status enviado: %s → %s", novoStatus, clienteEmail)
	return nil
}

func getDevolucaoEmailSubject(status string) string {
	switch status {
	case "Em análise":
		return "🔎 Sua solicitação está em análise - Reversa"
	case "Aprovada":
		return "✅ Solicitação aprovada - Reversa"
	case "Aguardando postagem":
		return "📦 Poste seu produto - Reversa"
	case "Recebida em CD":
		return "🏭 Produto recebido no centro de distribuição - Reversa"
	case "Concluída":
		return "🎉 Solicitação concluída - Reversa"
	case "Recusada":
		return "❌ Solicitação recusada - Reversa"
	default:
		return "📋 Atualização da sua solicitação - Reversa"
	}
}

func getDevolucaoStatusMessage(status string) string {
	switch status {
	case "Em análise":
		return "Nossa equipe está analisando a sua solicitação. Você receberá uma resposta em breve."
	case "Aprovada":
		return "Boa notícia! Sua solicitação foi aprovada. Em instantes você receberá as instruções de postagem."
	case "Aguardando postagem":
		return "Sua etiqueta de postagem está pronta. Leve o produto embalado a uma agência dos Correios."
	case "Recebida em CD":
		return "Recebemos o seu produto no nosso centro de distribuição e ele está em conferência."
	case "Concluída":
		return "Sua solicitação foi concluída. Obrigado pela confiança!"
	case "Recusada":
		return "Infelizmente a sua solicitação não pôde ser aprovada. Confira os detalhes no portal."
	default:
		return "O status da sua solicitação foi atualizado."
	}
}

func getReembolsoEmailSubject(status string) string {
	switch status {
	case "EM_ANALISE":
		return "🔎 Reembolso em análise - Reversa"
	case "APROVADO":
		return "✅ Reembolso aprovado - Reversa"
	case "PROCESSANDO":
		return "⏳ Reembolso em processamento - Reversa"
	case "CONCLUIDO":
		return "💰 Reembolso efetuado - Reversa"
	case "RECUSADO":
		return "❌ Reembolso recusado - Reversa"
	default:
		return "📋 Atualização do seu reembolso - Reversa"
	}
}

func getReembolsoStatusMessage(status string) string {
	switch status {
	case "EM_ANALISE":
		return "Nossa equipe está analisando o seu pedido de reembolso."
	case "APROVADO":
		return "Seu reembolso foi aprovado e logo entrará em processamento."
	case "PROCESSANDO":
		return "Seu reembolso está sendo processado junto ao meio de pagamento."
	case "CONCLUIDO":
		return "Seu reembolso foi efetuado. O prazo de compensação depende do método escolhido."
	case "RECUSADO":
		return "Infelizmente o seu pedido de reembolso não pôde ser aprovado. Confira os detalhes no portal."
	default:
		return "O status do seu reembolso foi atualizado."
	}
}

func generateStatusEmailHTML(clienteNome, titulo, solicitacaoID, status, mensagem string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f5f5f5;">
    <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f5f5f5;">
        <tr>
            <td style="padding: 40px 20px;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #0ea5e9 0%%, #6366f1 100%%); padding: 40px 30px; text-align: center; border-radius: 12px 12px 0 0;">
                            <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">Reversa</h1>
                            <p style="margin: 10px 0 0 0; color: #ffffff; font-size: 16px; opacity: 0.9;">%s</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px 30px 0 30px; text-align: center;">
                            <div style="display: inline-block; padding: 12px 24px; background-color: #0ea5e9; color: #ffffff; border-radius: 25px; font-weight: 600; font-size: 14px; text-transform: uppercase; letter-spacing: 0.5px;">%s</div>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            <p style="margin: 0 0 20px 0; color: #333333; font-size: 16px; line-height: 1.6;">Olá, %s!</p>
                            <p style="margin: 0 0 20px 0; color: #333333; font-size: 16px; line-height: 1.6;">%s</p>
                            <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f8f9fa; border-radius: 8px; margin: 20px 0;">
                                <tr>
                                    <td style="padding: 20px;">
                                        <p style="margin: 0; color: #666666; font-size: 14px;">Número da solicitação</p>
                                        <p style="margin: 5px 0 0 0; color: #333333; font-size: 16px; font-weight: 600;">%s</p>
                                    </td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 0 30px 30px 30px; text-align: center;">
                            <p style="margin: 0; color: #999999; font-size: 13px;">Este é um e-mail automático, não responda.</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`, titulo, titulo, status, clienteNome, mensagem, solicitacaoID)
}
