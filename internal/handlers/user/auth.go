package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/models"
	"reversa_back_end/internal/utils"
)

// ================== AUTH LOCAL ==================

func CreateUser(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=8"`
		IsLojista   bool   `json:"is_lojista"`
		LojaNome    string `json:"loja_nome"`
		LojaDominio string `json:"loja_dominio"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// E-mail já cadastrado?
	var existingID string
	err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe uma conta com este e-mail"})
		return
	}
	if err != gocql.ErrNotFound {
		log.Printf("❌ Erro ao consultar e-mail: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao processar a senha"})
		return
	}

	// Cria a loja se a conta for de lojista
	var lojaID *string
	if input.IsLojista {
		if input.LojaNome == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "loja_nome é obrigatório para contas de lojista"})
			return
		}

		lojasSession, err := database.GetLojasSession()
		if err != nil {
			log.Printf("❌ Erro de sessão ScyllaDB lojas: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
			return
		}

		newLojaID := gocql.TimeUUID()
		err = lojasSession.Query(`INSERT INTO lojas (loja_id, nome, dominio, email, ativa, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			newLojaID, input.LojaNome, input.LojaDominio, input.Email, true, time.Now()).Exec()
		if err != nil {
			log.Printf("❌ Erro ao criar loja: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar a loja"})
			return
		}

		h := newLojaID.String()
		lojaID = &h
		log.Printf("✅ Loja criada: %s (%s)", input.LojaNome, h)
	}

	// Papel definido no cadastro conforme o tipo de conta
	role := "cliente"
	if input.IsLojista {
		role = "lojista"
	}

	id := gocql.TimeUUID().String()
	isLojista := input.IsLojista
	user := models.User{
		ID:        id,
		Email:     input.Email,
		Password:  hashedPassword,
		Name:      input.Name,
		Role:      role,
		Provider:  "local",
		LojaID:    lojaID,
		LojaNome:  input.LojaNome,
		IsLojista: &isLojista,
		CreatedAt: time.Now(),
	}

	var lojaIDStr string
	if lojaID != nil {
		lojaIDStr = *lojaID
	}

	if err := database.GetPreparedInsertUser().Bind(
		user.ID, user.Email, user.Password, user.Name, user.Role, user.Provider,
		lojaIDStr, user.LojaNome, isLojista, user.CreatedAt, user.CreatedAt,
	).Exec(); err != nil {
		log.Printf("❌ Erro ao criar usuário: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar o usuário"})
		return
	}

	if err := database.GetPreparedInsertUserByEmail().Bind(user.Email, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Erro ao gravar índice users_by_email: %v", err)
	}

	utils.LogAction(c, utils.ACTION_USER_CREATE, utils.RESOURCE_USER, user.ID, nil,
		map[string]interface{}{"email": user.Email, "role": user.Role})

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"is_lojista": isLojista,
		"loja_id":    user.LojaID,
		"loja_nome":  user.LojaNome,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := findUserByEmail(input.Email)
	if err != nil {
		utils.LogFailedAction(c, utils.ACTION_LOGIN_FAILED, utils.RESOURCE_AUTH, input.Email, "usuário não encontrado")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha incorretos"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		utils.LogFailedAction(c, utils.ACTION_LOGIN_FAILED, utils.RESOURCE_AUTH, user.ID, "senha incorreta")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha incorretos"})
		return
	}

	// Migração transparente: contas antigas com bcrypt passam para Argon2id
	if !utils.IsArgon2Hash(user.Password) {
		if newHash, err := utils.HashPassword(input.Password); err == nil {
			if usersSession, err := database.GetUsersSession(); err == nil {
				_ = usersSession.Query("UPDATE users SET password = ?, updated_at = ? WHERE user_id = ?",
					newHash, time.Now(), user.ID).Exec()
				log.Printf("🔒 Hash migrado para Argon2id: %s", user.Email)
			}
		}
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar token"})
		return
	}

	utils.LogAction(c, utils.ACTION_LOGIN_SUCCESS, utils.RESOURCE_AUTH, user.ID, nil, nil)

	isLojista := false
	if user.IsLojista != nil {
		isLojista = *user.IsLojista
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"is_lojista": isLojista,
		"loja_id":    user.LojaID,
		"loja_nome":  user.LojaNome,
	})
}

func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não autenticado"})
		return
	}

	user, err := findUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":    user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"is_lojista": user.IsLojista,
		"loja_id":    user.LojaID,
		"loja_nome":  user.LojaNome,
		"provider":   user.Provider,
	})
}

// ================== UTILITÁRIOS ==================

func findUserByEmail(email string) (*models.User, error) {
	var userID string
	if err := database.GetPreparedGetUserByEmail().Bind(email).Scan(&userID); err != nil {
		return nil, err
	}
	return findUserByID(userID)
}

func findUserByID(userID string) (*models.User, error) {
	var (
		email, password, name, role, provider, lojaID, lojaNome string
		isLojista                                               bool
	)
	err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&email, &password, &name, &role, &provider, &lojaID, &lojaNome, &isLojista)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:        userID,
		Email:     email,
		Password:  password,
		Name:      name,
		Role:      role,
		Provider:  provider,
		LojaNome:  lojaNome,
		IsLojista: &isLojista,
	}
	if lojaID != "" {
		user.LojaID = &lojaID
	}
	return &user, nil
}
