package bootstrap

import (
	"context"
	"log"
	"os"

	"ai-recorddesk-be/internal/config"
	"ai-recorddesk-be/internal/controller"
	"ai-recorddesk-be/internal/pkg/logger"
	"ai-recorddesk-be/internal/repository/gateway"
	"ai-recorddesk-be/internal/repository/memory"
	"ai-recorddesk-be/internal/repository/unitofwork"
	"ai-recorddesk-be/internal/service"
	"ai-recorddesk-be/pkg/authz"
	"ai-recorddesk-be/pkg/conversation"
	"ai-recorddesk-be/pkg/llm"
	"ai-recorddesk-be/pkg/llm/factory"
	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/understand"

	pktNats "ai-recorddesk-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// auditTopic is the in-process topic carrying completed-operation journal
// entries from the request path to the audit consumer.
const auditTopic = "record-audit"

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	ChatController   controller.IChatController
	RecordController controller.IRecordController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Domain Core
	registry := schema.Default()

	// Initialize LLM Provider based on Config. The text understanding
	// adapter degrades to its deterministic fallback when the provider is
	// unavailable, so a failure here is not fatal.
	var llmProvider llm.LLMProvider
	if cfg.Ai.LLMProvider != "" {
		baseURL := cfg.Ai.OllamaBaseURL
		if cfg.Ai.LLMProvider == "gemini" {
			baseURL = cfg.Ai.GeminiBaseURL
		}
		p, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			baseURL,
			cfg.Ai.GeminiAPIKey,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize LLM Provider: %v (deterministic fallback only)", err)
		} else {
			llmProvider = p
			log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
		}
	}

	adapter := understand.NewAdapter(llmProvider, registry, log.New(os.Stdout, "[understand] ", log.LstdFlags))

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
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
	}

	sessionRepo := memory.NewSessionRepository(rdb, cfg.Session.TTLMinutes)
	recordGateway := gateway.NewRecordGateway(uowFactory)

	// Authorization resolves identity from the database on every check.
	actorDirectory := service.NewActorDirectory(uowFactory)
	authEngine := authz.NewEngine(registry, actorDirectory)

	machine := conversation.NewMachine(
		registry,
		authEngine,
		adapter,
		sessionRepo,
		recordGateway,
		log.New(os.Stdout, "[conversation] ", log.LstdFlags),
	)

	// 4. Services
	publisherService := service.NewPublisherService(auditTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, auditTopic, uowFactory)

	authService := service.NewAuthService(uowFactory, natsPub, cfg.Auth.TokenTTLHours)
	chatService := service.NewChatService(machine, uowFactory, publisherService, natsPub, sysLogger)
	recordService := service.NewRecordService(registry, authEngine, recordGateway, publisherService, natsPub, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		ChatController:   controller.NewChatController(chatService),
		RecordController: controller.NewRecordController(recordService),

		ConsumerService: consumerService,
	}
}
