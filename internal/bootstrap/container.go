package bootstrap

import (
	"context"
	"time"

	"chameleon-be/internal/config"
	"chameleon-be/internal/controller"
	"chameleon-be/internal/handler"
	"chameleon-be/internal/pkg/logger"
	"chameleon-be/internal/pkg/serverutils"
	"chameleon-be/internal/repository/contract"
	"chameleon-be/internal/repository/memory"
	"chameleon-be/internal/repository/redisstore"
	"chameleon-be/internal/service"
	"chameleon-be/internal/websocket"
	"chameleon-be/pkg/editor"
	"chameleon-be/pkg/llm"
	"chameleon-be/pkg/llm/factory"
	pktNats "chameleon-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	HealthController       controller.IHealthController
	AutocompleteController controller.IAutocompleteController
	AuthController         controller.IAuthController
	DocumentController     controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	EditorHandler *handler.EditorHandler
	WebSocketHub  *websocket.Hub

	closers []func()
}

// Close releases external connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis, falling back to in-memory stores", map[string]interface{}{"error": err.Error()})
		rdb.Close()
		return nil
	}
	return rdb
}

func NewContainer(cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Infrastructure
	rdb := connectRedis(cfg.App.RedisURL, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	var cache contract.SuggestionCache = memory.NewSuggestionCache(cfg.Cache.TTL)
	var tokens contract.TokenRepository = memory.NewTokenRepository()
	if rdb != nil {
		tokens = redisstore.NewTokenRepository(rdb)
		if cfg.Cache.Backend == "redis" {
			cache = redisstore.NewSuggestionCache(rdb, cfg.Cache.TTL, sysLogger)
		}
	}
	users := memory.NewUserRepository(cfg.Auth.Users)
	jwtAuth := serverutils.NewJwtAuth(cfg.Auth.JWTSecret, tokens)

	// NATS is optional; without it analytics events are not exported.
	var remote service.RemotePublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			remote = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. LLM Provider. A missing credential is reported per request, not at startup.
	var llmProvider llm.LLMProvider
	if cfg.LLMCredential() != "" {
		var baseURL string
		switch cfg.Ai.LLMProvider {
		case "openai", "":
			baseURL = cfg.Ai.OpenAIBaseURL
		case "ollama":
			baseURL = cfg.Ai.OllamaBaseURL
		}
		p, err := factory.NewLLMProvider(factory.ProviderConfig{
			Provider: cfg.Ai.LLMProvider,
			Model:    cfg.Ai.LLMModel,
			APIKey:   cfg.LLMCredential(),
			BaseURL:  baseURL,
			Timeout:  cfg.Ai.Timeout,
		})
		if err != nil {
			sysLogger.Error("Bootstrap", "Failed to initialize LLM provider", map[string]interface{}{"error": err.Error()})
		} else {
			llmProvider = p
			sysLogger.Info("Bootstrap", "Using LLM provider", map[string]interface{}{
				"provider": cfg.Ai.LLMProvider,
				"model":    cfg.Ai.LLMModel,
			})
		}
	}

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, remote, sysLogger)
	autocompleteService := service.NewAutocompleteService(llmProvider, cache, publisherService, service.AutocompleteConfig{
		ProviderName:    cfg.Ai.LLMProvider,
		Credential:      cfg.LLMCredential(),
		MaxTokens:       cfg.Ai.MaxTokens,
		Temperature:     cfg.Ai.Temperature,
		PresencePenalty: cfg.Ai.PresencePenalty,
	}, sysLogger)
	authService := service.NewAuthService(users, tokens, jwtAuth, publisherService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, sysLogger)
	documentService := service.NewDocumentService(sysLogger)

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	wsHub := websocket.NewHub(rdb, cfg.App.InstanceID, wsLogger)
	c.WebSocketHub = wsHub
	c.ConsumerService = service.NewConsumerService(pubSub, service.SessionEventsTopic, wsHub, wsLogger)

	editorCfg := editor.DefaultConfig()
	editorCfg.DebounceDelay = cfg.Editor.Debounce
	editorCfg.MinContext = cfg.Editor.MinContext
	editorCfg.ContextWindow = cfg.Editor.ContextWindow
	editorCfg.RequestTimeout = cfg.Ai.Timeout
	c.EditorHandler = handler.NewEditorHandler(wsHub, service.NewEditorSuggester(autocompleteService), editorCfg, jwtAuth, wsLogger)

	// 6. Controllers
	c.HealthController = controller.NewHealthController()
	c.AutocompleteController = controller.NewAutocompleteController(autocompleteService)
	c.AuthController = controller.NewAuthController(authService, jwtAuth)
	c.DocumentController = controller.NewDocumentController(documentService, authService, jwtAuth)

	return c
}
