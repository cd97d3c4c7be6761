// Package database wires the side services the API leans on: Redis for
// caching and rate limiting, Elasticsearch for sweet search, MinIO for sweet
// images. Each one is optional — when unconfigured its client stays nil and
// the features degrade gracefully. The PostgreSQL pool is NOT kept here: it
// is opened by main and handed to the stores that own it.
package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

var (
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
)

// Connect brings up every configured side service. Missing configuration is
// logged and skipped, never fatal.
func Connect() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connectRedis(ctx)
	connectElastic()
	connectMinIO(ctx)
}

func connectRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		log.Println("⚠️ REDIS_HOST not set — caching and rate limiting disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("❌ Redis connection failed:", err)
		return
	}
	Redis = client
	log.Println("✅ Connected to Redis")
}

func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL not set — search falls back to SQL filters")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	})
	if err != nil {
		log.Println("❌ Elasticsearch client creation failed:", err)
		return
	}
	res, err := client.Info()
	if err != nil {
		log.Println("❌ Elasticsearch connection failed:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connected to Elasticsearch")
}

func connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT not set — image uploads disabled")
		return
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(
			os.Getenv("MINIO_ACCESS_KEY"),
			os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		log.Println("❌ MinIO connection failed:", err)
		return
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "sweet-images"
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Println("❌ MinIO bucket check failed:", err)
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("❌ MinIO bucket creation failed:", err)
			return
		}
		log.Println("🪣 Bucket created:", bucket)
	}

	MinIO = client
	log.Println("✅ Connected to MinIO:", endpoint)
}
