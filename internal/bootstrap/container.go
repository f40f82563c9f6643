package bootstrap

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"commerce-agent-be/internal/config"
	"commerce-agent-be/internal/controller"
	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/internal/repository/memory"
	"commerce-agent-be/internal/service"
	"commerce-agent-be/pkg/cart"
	"commerce-agent-be/pkg/llm/factory"
	"commerce-agent-be/pkg/rag/contextbuilder"
	"commerce-agent-be/pkg/rag/gate"
	"commerce-agent-be/pkg/rag/response"
	"commerce-agent-be/pkg/vectordb"
)

type Container struct {
	SystemController controller.ISystemController
	ChatController   controller.IChatController
	CartController   controller.ICartController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Collaborator Clients
	vdbClient, err := vectordb.NewClient(vectordb.Config{
		Host:         cfg.Weaviate.Host,
		Scheme:       cfg.Weaviate.Scheme,
		APIKey:       cfg.Weaviate.APIKey,
		CohereAPIKey: cfg.Weaviate.CohereAPIKey,
		ClassName:    cfg.Weaviate.ClassName,
		TargetVector: cfg.Weaviate.TargetVector,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Weaviate client: %v", err)
	}

	llmProvider, err := factory.NewLLMProvider("groq", cfg.Groq.Model, cfg.Groq.BaseURL, cfg.Groq.APIKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: groq (%s)", cfg.Groq.Model)

	// 3. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Chat.SessionTTLMinutes) * time.Minute)

	// 4. Domain Components
	llmLogger := initLLMLogger()
	retrievalGate := gate.New(llmProvider, llmLogger)
	answerGenerator := response.NewGenerator(llmProvider, llmLogger)
	cartResolver := cart.NewResolver(vdbClient)

	// 5. Services
	chatService := service.NewChatService(
		retrievalGate,
		vdbClient,
		answerGenerator,
		contextbuilder.Build,
		sessionRepo,
		sysLogger,
		cfg.Chat.MemoryTurns,
		cfg.Chat.SearchLimit,
		cfg.Chat.MaxReviewsChars,
	)
	cartService := service.NewCartService(cartResolver, sessionRepo, sysLogger, cfg.Chat.MemoryTurns)

	return &Container{
		SystemController: controller.NewSystemController(vdbClient),
		ChatController:   controller.NewChatController(chatService),
		CartController:   controller.NewCartController(cartService),
		Logger:           sysLogger,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_commerce.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
