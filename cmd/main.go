package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/medi_translate/internal/ai"
	"github.com/Vovarama1992/medi_translate/internal/delivery"
	"github.com/Vovarama1992/medi_translate/internal/domain"
	"github.com/Vovarama1992/medi_translate/internal/error_notificator"
	"github.com/Vovarama1992/medi_translate/internal/infra"
	"github.com/Vovarama1992/medi_translate/internal/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / DB INIT
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dsn := mustEnv("DATABASE_URL")
	groqKey := mustEnv("GROQ_API_KEY")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping failed: %v", err)
	}
	defer db.Close()

	if err := infra.Migrate(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	s3Client, err := infra.NewS3Client(infra.S3Config{
		Endpoint:  mustEnv("S3_ENDPOINT"),
		AccessKey: mustEnv("S3_ACCESS_KEY"),
		SecretKey: mustEnv("S3_SECRET_KEY"),
		Bucket:    mustEnv("S3_BUCKET"),
		Region:    os.Getenv("S3_REGION"),
		Secure:    os.Getenv("S3_SECURE") != "false",
	})
	if err != nil {
		log.Fatalf("failed to init s3: %v", err)
	}

	// =========================================================================
	// REPOSITORIES
	// =========================================================================

	conversationRepo := infra.NewConversationRepo(db)
	messageRepo := infra.NewMessageRepo(db)

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var alertBot *tgbotapi.BotAPI
	var alertChat int64
	if token := os.Getenv("TELEGRAM_ALERT_TOKEN"); token != "" {
		alertBot, err = tgbotapi.NewBotAPI(token)
		if err != nil {
			log.Fatalf("failed to init alert bot: %v", err)
		}
		alertChat, _ = strconv.ParseInt(os.Getenv("TELEGRAM_ALERT_CHAT"), 10, 64)
	}

	errInfra := error_notificator.NewInfra(alertBot, alertChat)
	errService := error_notificator.NewService(errInfra)

	// =========================================================================
	// CLIENTS (AI / STT)
	// =========================================================================

	groqClient := ai.NewGroqClient(groqKey, os.Getenv("GROQ_BASE_URL"))

	var sttClient speech.Client = groqClient
	if os.Getenv("STT_PROVIDER") == "deepgram" {
		sttClient = ai.NewDeepgramClient(mustEnv("DEEPGRAM_API_KEY"))
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	s3Service := domain.NewS3Service(s3Client, envSeconds("S3_TIMEOUT_SEC", 30))

	speechService := speech.NewService(sttClient, envSeconds("TRANSCRIBE_TIMEOUT_SEC", 60))

	translateService := ai.NewTranslateService(groqClient, errService, envSeconds("TRANSLATE_TIMEOUT_SEC", 30))

	summaryService := ai.NewSummaryService(
		groqClient,
		conversationRepo,
		messageRepo,
		errService,
		envSeconds("SUMMARY_TIMEOUT_SEC", 60),
	)

	conversationService := domain.NewConversationService(
		conversationRepo,
		messageRepo,
		s3Service,
		translateService,
		errService,
	)

	pipelineService := domain.NewPipelineService(
		conversationRepo,
		messageRepo,
		s3Service,
		speechService,
		translateService,
		errService,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// HANDLERS
	translateHandler := delivery.NewTranslateHandler(translateService, zl)
	audioHandler := delivery.NewAudioHandler(speechService, pipelineService, s3Service, conversationService, zl)
	conversationHandler := delivery.NewConversationHandler(conversationService, pipelineService, summaryService, zl)

	// ROUTES
	delivery.RegisterRoutes(
		r,
		translateHandler,
		audioHandler,
		conversationHandler,
	)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "medi_translate",
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("%s is not set", key)
	}
	return v
}

func envSeconds(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}
