package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"strconv"

	"github.com/minio/minio-go/v7"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/database"
)

// UploadSweetImage stores an uploaded image under sweets/<id>/<filename> and
// returns the object URL to persist on the sweet.
func UploadSweetImage(ctx context.Context, sweetID int, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("minio not configured")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "sweet-images"
	}
	object := path.Join("sweets", strconv.Itoa(sweetID), file.Filename)

	_, err = database.MinIO.PutObject(ctx, bucket, object, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, object), nil
}
