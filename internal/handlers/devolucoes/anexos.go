package devolucoes

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/services"
)

// UploadAnexos recebe fotos de evidência (multipart) e guarda no MinIO.
// O nome do objeto fica na lista anexos da solicitação.
func UploadAnexos(c *gin.Context) {
	d, ok := loadDevolucaoFromParam(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulário multipart inválido"})
		return
	}

	files := form.File["anexos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum arquivo enviado no campo 'anexos'"})
		return
	}

	var uploaded []string
	for _, file := range files {
		objectName, err := services.UploadAnexo(d.ID, file)
		if err != nil {
			log.Printf("❌ Erro no upload do anexo %s: %v", file.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao enviar o arquivo " + file.Filename})
			return
		}
		uploaded = append(uploaded, objectName)
	}

	session, err := database.GetSolicitacoesSession()
	if err != nil {
		log.Printf("❌ Erro de sessão ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro de conexão com o banco de dados"})
		return
	}

	anexos := append(d.Anexos, uploaded...)
	if err := session.Query(`UPDATE devolucoes SET anexos = ?, updated_at = ? WHERE devolucao_id = ?`,
		anexos, time.Now(), d.ID).Exec(); err != nil {
		log.Printf("❌ Erro ao gravar anexos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar os anexos"})
		return
	}

	log.Printf("🪣 %d anexo(s) enviados para a devolução %s", len(uploaded), d.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Anexos enviados",
		"anexos":  anexos,
	})
}

// GetAnexoURL devolve uma URL assinada temporária para visualizar um anexo
func GetAnexoURL(c *gin.Context) {
	d, ok := loadDevolucaoFromParam(c)
	if !ok {
		return
	}

	objectName := c.Query("objeto")
	found := false
	for _, a := range d.Anexos {
		if a == objectName {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Anexo não pertence a esta solicitação"})
		return
	}

	url, err := services.GenerateSignedURL(context.Background(), objectName, 15*time.Minute)
	if err != nil {
		log.Printf("❌ Erro ao gerar URL assinada: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar a URL do anexo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "expira_em_segundos": 900})
}
