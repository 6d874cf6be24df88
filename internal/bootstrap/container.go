package bootstrap

import (
	"github.com/cihanuluisik/Dge-Advisor/internal/config"
	"github.com/cihanuluisik/Dge-Advisor/internal/controller"
	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/implementation"
	"github.com/cihanuluisik/Dge-Advisor/internal/service"
	"github.com/cihanuluisik/Dge-Advisor/pkg/embedding"
	"github.com/cihanuluisik/Dge-Advisor/pkg/llm/ollama"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag/guardrail"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag/pipeline"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag/reranker"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag/retriever"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag/synthesis"

	"gorm.io/gorm"
)

type Container struct {
	ChatController controller.IChatController
	Logger         logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Repositories
	sessionRepo := implementation.NewChatSessionRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	chunkRepo := implementation.NewDocumentChunkRepository(db)

	// External model providers
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)

	// Pipeline stages
	classifier := guardrail.NewClassifier(llmProvider, sysLogger)
	hybridRetriever := retriever.NewHybridRetriever(embeddingProvider, chunkRepo, retriever.Config{
		DenseTopK:  cfg.Rag.DenseTopK,
		SparseTopK: cfg.Rag.SparseTopK,
		Alpha:      cfg.Rag.HybridAlpha,
	}, sysLogger)
	rerank := reranker.New()
	synthesizer := synthesis.NewSynthesizer(llmProvider, synthesis.Config{
		Temperature: cfg.Rag.Temperature,
		Timeout:     cfg.Rag.SynthesisTimeout,
	}, sysLogger)

	executor := pipeline.NewExecutor(classifier, hybridRetriever, rerank, synthesizer, pipeline.Config{
		MinScore:        cfg.Rag.MinScore,
		ClassifyTimeout: cfg.Rag.ClassifyTimeout,
		RetrieveTimeout: cfg.Rag.RetrieveTimeout,
	}, sysLogger)

	chatService := service.NewChatService(sessionRepo, messageRepo, executor, cfg.Rag.HistoryWindow, sysLogger)

	return &Container{
		ChatController: controller.NewChatController(chatService, cfg.Rag, sysLogger),
		Logger:         sysLogger,
	}
}
