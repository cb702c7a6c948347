package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/interfaces"
	"github.com/ternarybob/ordino/internal/services/categorizer"
	"github.com/ternarybob/ordino/internal/services/classify"
	"github.com/ternarybob/ordino/internal/services/llm"
	"github.com/ternarybob/ordino/internal/services/normalizer"
	"github.com/ternarybob/ordino/internal/services/summary"
	"github.com/ternarybob/ordino/internal/services/topics"
	badgerstorage "github.com/ternarybob/ordino/internal/storage/badger"
	"github.com/ternarybob/ordino/internal/taxonomy"
)

// App owns the wired service graph of the categorization engine.
type App struct {
	Config      *common.Config
	Logger      arbor.ILogger
	Taxonomy    *taxonomy.Taxonomy
	LLMService  interfaces.LLMService
	Categorizer interfaces.CategorizerService

	// Results is nil when no storage path is configured.
	Results *badgerstorage.ResultStorage

	db *badgerstorage.BadgerDB
}

// New wires the engine from configuration. Taxonomy and LLM availability
// problems degrade (default taxonomy, disabled provider) rather than fail;
// only unusable explicit configuration returns an error.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	tax, err := taxonomy.Load(config.Taxonomy.Path)
	if err != nil {
		logger.Warn().Err(err).Str("path", config.Taxonomy.Path).Msg("Using built-in default taxonomy")
	} else {
		logger.Info().Str("path", config.Taxonomy.Path).Int("categories", len(tax.Primary)).Msg("Taxonomy loaded")
	}

	llmService, err := llm.NewService(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM service: %w", err)
	}

	var (
		db            *badgerstorage.BadgerDB
		resultStorage *badgerstorage.ResultStorage
		cache         interfaces.EmbeddingCache
	)
	if config.Storage.Path != "" {
		db, err = badgerstorage.NewBadgerDB(logger, &config.Storage)
		if err != nil {
			llmService.Close()
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		resultStorage = badgerstorage.NewResultStorage(db, logger)
		cache = badgerstorage.NewEmbeddingCache(db, logger)
	}

	norm := normalizer.NewService(logger)
	summarizer := summary.NewService(llmService, config, logger)
	primary := classify.NewEmbeddingClassifier(llmService, tax, cache, config, logger)
	subcats := classify.NewSubcategoryService(llmService, tax, logger)
	zeroShot := classify.NewZeroShotClient(config, logger)
	labels := classify.NewLabelClassifier(zeroShot, logger)
	topicClusterer := topics.NewService(logger)

	categorizerService := categorizer.NewService(norm, summarizer, primary, subcats, topicClusterer, labels, tax, config, logger)

	return &App{
		Config:      config,
		Logger:      logger,
		Taxonomy:    tax,
		LLMService:  llmService,
		Categorizer: categorizerService,
		Results:     resultStorage,
		db:          db,
	}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	var err error
	if a.LLMService != nil {
		err = a.LLMService.Close()
	}
	if a.db != nil {
		if gcErr := a.db.RunGC(); gcErr != nil {
			a.Logger.Warn().Err(gcErr).Msg("Value log GC failed on shutdown")
		}
		if dbErr := a.db.Close(); err == nil {
			err = dbErr
		}
	}
	return err
}
