package bootstrap

import (
	"log"
	"time"

	"chimera-chat-be/internal/config"
	"chimera-chat-be/internal/controller"
	"chimera-chat-be/internal/pkg/logger"
	"chimera-chat-be/internal/pkg/ratelimit"
	"chimera-chat-be/internal/pkg/serverutils"
	"chimera-chat-be/internal/pkg/token"
	"chimera-chat-be/internal/repository/unitofwork"
	"chimera-chat-be/internal/service"
	"chimera-chat-be/pkg/events"
	"chimera-chat-be/pkg/llm/factory"
	"chimera-chat-be/pkg/media"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const auditTopic = "audit.events"

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	tokens := token.NewService(cfg.Auth.JwtSecret, cfg.Auth.AccessTokenTTL)
	jwtMiddleware := serverutils.NewJwtMiddleware(tokens)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	eventPublisher := events.NewPublisher(pubSub, auditTopic)

	// 3. Infrastructure
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	mediaStore, err := media.NewStore(cfg.Media.UploadDir, cfg.Media.EncodeCacheTTL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize media store: %v", err)
	}

	var limiter *ratelimit.FixedWindowLimiter
	if cfg.App.RedisURL != "" {
		limiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.App.RedisURL,
			"api",
			cfg.Chat.RateLimitPerMinute,
			time.Minute,
		)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis, rate limiting disabled: %v", err)
			limiter = nil
		}
	} else {
		log.Println("[WARN] REDIS_URL not set, rate limiting disabled")
	}

	// 4. Services
	authService := service.NewAuthService(uowFactory, tokens, eventPublisher, sysLogger)
	chatService := service.NewChatService(uowFactory, llmProvider, mediaStore, eventPublisher, sysLogger, cfg.Chat.ModelTimeout)
	consumerService := service.NewConsumerService(pubSub, auditTopic, sysLogger)

	// 5. Controllers
	authController := controller.NewAuthController(authService, limiter, jwtMiddleware)
	chatController := controller.NewChatController(chatService, limiter, sysLogger, jwtMiddleware, cfg.Media.MaxUploadMB)

	return &Container{
		AuthController:  authController,
		ChatController:  chatController,
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
