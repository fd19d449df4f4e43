package services

import (
	"context"
	"net/url"
	"os"
	"time"

	"reversa_back_end/internal/database"
)

// GenerateSignedURL gera uma URL assinada com expiração para um anexo.
// O painel nunca expõe o bucket diretamente.
func GenerateSignedURL(ctx context.Context, objectName string, duration time.Duration) (string, error) {
	reqParams := make(url.Values)

	presignedURL, err := database.MinIO.PresignedGetObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		objectName,
		duration,
		reqParams,
	)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
