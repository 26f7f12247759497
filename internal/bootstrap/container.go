package bootstrap

import (
	"context"
	"log"

	"reliefconnect-ai-be/internal/config"
	"reliefconnect-ai-be/internal/controller"
	"reliefconnect-ai-be/internal/handler"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/internal/pkg/mailer"
	"reliefconnect-ai-be/internal/repository/contract"
	"reliefconnect-ai-be/internal/repository/implementation"
	"reliefconnect-ai-be/internal/repository/memory"
	"reliefconnect-ai-be/internal/repository/redisstore"
	"reliefconnect-ai-be/internal/service"
	"reliefconnect-ai-be/internal/websocket"
	"reliefconnect-ai-be/pkg/ai/pipeline"
	"reliefconnect-ai-be/pkg/embedding"
	"reliefconnect-ai-be/pkg/llm/factory"
	"reliefconnect-ai-be/pkg/search"
	"reliefconnect-ai-be/pkg/search/chroma"
	"reliefconnect-ai-be/pkg/search/pgvec"

	pktNats "reliefconnect-ai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ChatController    controller.IChatController
	OrderController   controller.IOrderController
	ProductController controller.IProductController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	AlertHandler *handler.AlertHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Repositories
	productRepo := implementation.NewProductRepository(db)
	orderRepo := implementation.NewOrderRepository(db)
	userRepo := implementation.NewUserRepository(db)

	var searchProvider search.SearchProvider
	if cfg.Search.Provider == "chroma" {
		searchProvider = chroma.NewChromaProvider(cfg.Search.ChromaBaseURL, cfg.Search.Collection)
		log.Printf("[INFO] Using Search Provider: CHROMA (%s)", cfg.Search.Collection)
	} else {
		searchProvider = pgvec.NewPgvectorProvider(embeddingProvider, productRepo)
		log.Printf("[INFO] Using Search Provider: PGVECTOR")
	}

	// Session storage
	var sessionRepo contract.SessionRepository
	if cfg.Session.Backend == "redis" {
		redisSessions, err := redisstore.NewSessionRepository(cfg.App.RedisURL)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Redis session store: %v", err)
		}
		sessionRepo = redisSessions
		log.Printf("[INFO] Using Session Backend: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}

	// 3.5 Infrastructure
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 4. Pipelines
	productPipeline := pipeline.NewProductPipeline(llmProvider, searchProvider, sysLogger)
	orderPipeline := pipeline.NewOrderPipeline(llmProvider, cfg.Ai.VisionModel, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.DecisionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.DecisionTopic,
		wsHub,
		emailService,
		cfg.App.SupportEmail,
		natsPub,
	)

	authService := service.NewAuthService(userRepo, sysLogger)
	chatService := service.NewChatService(sessionRepo, productPipeline, llmProvider, sysLogger)
	orderService := service.NewOrderService(orderRepo, orderPipeline, publisherService, sysLogger)
	productService := service.NewProductService(productRepo)

	alertHandler := handler.NewAlertHandler(wsHub, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ChatController:    controller.NewChatController(chatService),
		OrderController:   controller.NewOrderController(orderService),
		ProductController: controller.NewProductController(productService),

		ConsumerService: consumerService,

		AlertHandler: alertHandler,
		WebSocketHub: wsHub,
	}
}
