package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/controller"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/memory"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/embedding/tei"
	"rag-chat-be/pkg/llm/factory"
	"rag-chat-be/pkg/rag/prompt"
	"rag-chat-be/pkg/rag/retriever"
	"rag-chat-be/pkg/storage"
	"rag-chat-be/pkg/store"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background services (exposed for main.go to run)
	RehydrateService *service.RehydrateService
	Subscriber       message.Subscriber

	// Exposed for the ingest CLI
	IngestService *service.IngestService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "tei" {
		embeddingProvider = tei.NewTEIProvider(cfg.Ai.EmbeddingBaseURL, "")
		log.Printf("[INFO] Using Embedding Provider: TEI (%s)", cfg.Ai.EmbeddingBaseURL)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.EmbeddingBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	// 4. LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Retriever backend
	var ret retriever.Retriever
	if cfg.Chat.Retriever == "pgvector" {
		ret = retriever.NewPgvectorRetriever(embeddingProvider, uowFactory)
		log.Printf("[INFO] Using Retriever: PGVECTOR")
	} else {
		ret = retriever.NewMemoryRetriever(embeddingProvider)
		log.Printf("[INFO] Using Retriever: MEMORY")
	}

	// 6. Object storage
	var objects storage.ObjectStore
	if cfg.Storage.Backend == "minio" {
		minioStore, err := storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.Storage.MinioEndpoint,
			AccessKey: cfg.Storage.MinioAccessKey,
			SecretKey: cfg.Storage.MinioSecretKey,
			Bucket:    cfg.Storage.MinioBucket,
			UseSSL:    cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize MinIO storage: %v", err)
		}
		objects = minioStore
		log.Printf("[INFO] Using Storage: MINIO (%s/%s)", cfg.Storage.MinioEndpoint, cfg.Storage.MinioBucket)
	} else {
		objects = storage.NewLocalStore(cfg.Storage.LocalDir)
		log.Printf("[INFO] Using Storage: LOCAL (%s)", cfg.Storage.LocalDir)
	}

	// 7. Conversation composer
	var composer prompt.Composer
	if cfg.Chat.Strategy == "chain" {
		composer = prompt.NewChainComposer(llmProvider)
		log.Printf("[INFO] Using Chat Strategy: CHAIN")
	} else {
		composer = prompt.NewTemplateComposer(llmProvider)
		log.Printf("[INFO] Using Chat Strategy: TEMPLATE")
	}

	// 8. Shared state
	flags := store.NewFlags(
		cfg.Chat.ReferenceEnabled,
		cfg.Chat.ConversationModeEnabled,
		cfg.Chat.RAGEnabled,
	)
	conversations := memory.NewConversationRepository()

	// 9. Services
	ingestService := service.NewIngestService(objects, ret, llmProvider, sysLogger)
	rehydrateService := service.NewRehydrateService(conversations, uowFactory, sysLogger)
	chatService := service.NewChatService(
		flags,
		conversations,
		ret,
		composer,
		llmProvider,
		ingestService,
		rehydrateService,
		uowFactory,
		pubSub,
		sysLogger,
	)

	return &Container{
		ChatController:   controller.NewChatController(chatService),
		RehydrateService: rehydrateService,
		Subscriber:       pubSub,
		IngestService:    ingestService,
		Logger:           sysLogger,
	}
}
