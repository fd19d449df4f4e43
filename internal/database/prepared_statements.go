package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements das consultas mais quentes
	stmtGetUserByEmail     *gocql.Query
	stmtGetUserByID        *gocql.Query
	stmtInsertUser         *gocql.Query
	stmtInsertUserByEmail  *gocql.Query
	stmtGetRegrasByLoja    *gocql.Query
	stmtGetConfigReembolso *gocql.Query
	stmtInsertTimeline     *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements inicializa os prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		usersSession, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Não foi possível inicializar os prepared statements de usuários: %v", err)
			return
		}

		stmtGetUserByEmail = usersSession.Query("SELECT user_id FROM users_by_email WHERE email = ?")

		stmtGetUserByID = usersSession.Query(`SELECT email, password, name, role, provider, loja_id, loja_nome, is_lojista
			FROM users WHERE user_id = ?`)

		stmtInsertUser = usersSession.Query(`INSERT INTO users (user_id, email, password, name, role, provider, loja_id, loja_nome, is_lojista, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		stmtInsertUserByEmail = usersSession.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)")

		lojasSession, err := GetLojasSession()
		if err != nil {
			log.Printf("⚠️ Não foi possível inicializar os prepared statements de lojas: %v", err)
			return
		}

		stmtGetRegrasByLoja = lojasSession.Query(`SELECT prazo_arrependimento_dias, prazo_defeito_dias, valor_minimo,
			categorias_bloqueadas, fotos_obrigatorias_defeito, aprovacao_automatica
			FROM regras_elegibilidade WHERE loja_id = ?`)

		stmtGetConfigReembolso = lojasSession.Query(`SELECT teto_auto_aprovacao, priorizar_voucher, bonus_voucher,
			cartao_habilitado, pix_habilitado, boleto_habilitado, voucher_habilitado, tipo_chave_pix
			FROM config_reembolso WHERE loja_id = ?`)

		solicitacoesSession, err := GetSolicitacoesSession()
		if err != nil {
			log.Printf("⚠️ Não foi possível inicializar os prepared statements de solicitações: %v", err)
			return
		}

		// Timeline é append-only: só existe INSERT
		stmtInsertTimeline = solicitacoesSession.Query(`INSERT INTO timeline_events (solicitacao_id, evento_id, acao, descricao, ator, de_status, para_status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

		log.Println("✅ Prepared statements inicializados")
	})
}

func GetPreparedGetUserByEmail() *gocql.Query {
	return stmtGetUserByEmail
}

func GetPreparedGetUserByID() *gocql.Query {
	return stmtGetUserByID
}

func GetPreparedInsertUser() *gocql.Query {
	return stmtInsertUser
}

func GetPreparedInsertUserByEmail() *gocql.Query {
	return stmtInsertUserByEmail
}

func GetPreparedGetRegrasByLoja() *gocql.Query {
	return stmtGetRegrasByLoja
}

func GetPreparedGetConfigReembolso() *gocql.Query {
	return stmtGetConfigReembolso
}

func GetPreparedInsertTimeline() *gocql.Query {
	return stmtInsertTimeline
}
