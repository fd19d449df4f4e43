package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"

	"reversa_back_end/internal/database"
)

// UploadAnexo sobe um anexo (foto de defeito, comprovante) para o bucket
// da plataforma, sob o prefixo da solicitação.
func UploadAnexo(solicitacaoID gocql.UUID, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO não inicializado")
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := path.Join(solicitacaoID.String(), file.Filename)

	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return objectName, nil
}
