package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	v1 "redactor/internal/controller/http/v1"
	"redactor/internal/domain/usecase"
	"redactor/internal/redaction"
	"redactor/internal/repository/inference"
	queueRepo "redactor/internal/repository/redis"
	s3Repo "redactor/internal/repository/s3"
	"redactor/internal/repository/webhook"
	redisGo "redactor/pkg/client/redis"
	s3ClientGo "redactor/pkg/client/s3"
)

type Config struct {
	RedisAddr string
	RedisDB   int

	QueueName  string
	PopTimeout time.Duration
	Backoff    time.Duration

	S3Host      string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool

	WebhookURL     string
	WebhookTimeout time.Duration

	InferenceURL     string
	InferenceTimeout time.Duration

	HTTPAddr string

	Marker         string
	ImagePIILabels []string
	AudioPIILabels []string

	LogLevel string
}

func loadConfig(log *logrus.Logger) Config {
	if err := godotenv.Load("./.env.local"); err != nil {
		log.Println("No .env file found. Falling back to OS environment variables.")
	}
	mustGetEnv := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			log.Fatalf("Environment variable %s is not set", key)
		}
		return val
	}
	getEnv := func(key, fallback string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return fallback
	}
	getDuration := func(key, fallback string) time.Duration {
		d, err := time.ParseDuration(getEnv(key, fallback))
		if err != nil {
			log.Fatalf("Invalid %s value: %v", key, err)
		}
		return d
	}

	// REDIS
	redisHost := mustGetEnv("REDIS_HOST")
	redisPort := mustGetEnv("REDIS_PORT")
	redisDBStr := getEnv("REDIS_DB", "0")
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		log.Fatalf("Invalid REDIS_DB value: %v", err)
	}

	return Config{
		RedisAddr: redisHost + ":" + redisPort,
		RedisDB:   redisDB,

		QueueName:  getEnv("REDACTION_QUEUE", "redaction-jobs"),
		PopTimeout: getDuration("QUEUE_POP_TIMEOUT", "10s"),
		Backoff:    getDuration("LOOP_BACKOFF", "5s"),

		S3Host:      mustGetEnv("S3_HOST") + ":" + mustGetEnv("S3_PORT"),
		S3Bucket:    mustGetEnv("S3_BUCKET"),
		S3AccessKey: mustGetEnv("S3_ACCESS_KEY"),
		S3SecretKey: mustGetEnv("S3_SECRET_KEY"),
		S3UseSSL:    getEnv("S3_USE_SSL", "false") == "true",

		WebhookURL:     mustGetEnv("WEBHOOK_URL"),
		WebhookTimeout: getDuration("WEBHOOK_TIMEOUT", "30s"),

		InferenceURL:     mustGetEnv("INFERENCE_URL"),
		InferenceTimeout: getDuration("INFERENCE_TIMEOUT", "2m"),

		HTTPAddr: getEnv("HTTP_ADDR", ":8001"),

		Marker:         getEnv("REDACTION_MARKER", redaction.DefaultMarker),
		ImagePIILabels: strings.Split(getEnv("IMAGE_PII_LABELS", "PERSON,ORG,GPE,PHONE,EMAIL,SSN,CREDIT_CARD"), ","),
		AudioPIILabels: strings.Split(getEnv("AUDIO_PII_LABELS", "PERSON,ORG,GPE,PHONE,EMAIL"), ","),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func main() {
	log := logrus.New()
	cfg := loadConfig(log)

	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	redisClient, err := redisGo.NewRedisClient(ctx, redisGo.Config{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	s3Client, err := s3ClientGo.NewS3Client(cfg.S3Host, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
	if err != nil {
		log.Fatalf("failed to init s3 client: %v", err)
	}
	storage := s3Repo.NewS3Repo(s3Client)

	models := inference.NewClient(cfg.InferenceURL, cfg.InferenceTimeout)

	imageStage := redaction.NewImageRedactor(models, models, models,
		redaction.NewLabels(cfg.ImagePIILabels...), cfg.Marker)
	audioStage := redaction.NewAudioRedactor(models, models,
		redaction.NewLabels(cfg.AudioPIILabels...), cfg.Marker, "")

	uc := usecase.NewRedactionUseCase(storage, imageStage, audioStage, log)

	queue := queueRepo.NewJobQueue(redisClient, cfg.QueueName)
	publisher := webhook.NewPublisher(cfg.WebhookURL, cfg.WebhookTimeout)
	consumer := queueRepo.NewConsumer(queue, uc, publisher, cfg.PopTimeout, cfg.Backoff, log)

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Fatalf("consumer stopped with error: %v", err)
		}
	}()

	handler := v1.NewWorkerHandler(uc, queue)

	r := gin.Default()
	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/process", handler.Process)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	log.Info("Redaction worker started")
	<-sigCh
	log.Info("Shutting down redaction worker...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
	time.Sleep(time.Second)
}
