package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/shoplist/internal/audit"
	"github.com/vbonduro/shoplist/internal/command"
	"github.com/vbonduro/shoplist/internal/config"
	"github.com/vbonduro/shoplist/internal/db"
	"github.com/vbonduro/shoplist/internal/importer"
	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/logging"
	"github.com/vbonduro/shoplist/internal/nlp"
	claudenlp "github.com/vbonduro/shoplist/internal/nlp/claude"
	"github.com/vbonduro/shoplist/internal/nlp/keyword"
	ollamanlp "github.com/vbonduro/shoplist/internal/nlp/ollama"
	"github.com/vbonduro/shoplist/internal/service"
	"github.com/vbonduro/shoplist/internal/store"
)

// app holds everything a subcommand needs. close releases it in reverse
// order of construction.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	list     *service.ListService
	commands *command.Interpreter
	importer *importer.Importer
	closers  []func()
}

func openApp(cfg *config.Config, logLevel string) (*app, error) {
	logger, cleanup, err := logging.New(logLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []func(){cleanup}}

	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, func() { closeDB(database, logger) })

	a.list, err = service.NewListService(store.NewItemStore(database), store.NewHistoryStore(database), lex, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	translator, extractor, err := newLanguageBackend(cfg, lex, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	var sink audit.Sink = audit.Discard{}
	if cfg.AuditLog != "" {
		fs := audit.NewFileSink(cfg.AuditLog)
		a.closers = append(a.closers, func() { _ = fs.Close() })
		sink = fs
	}

	a.commands = command.NewInterpreter(a.list, translator, extractor, lex, sink, logger)
	a.importer = importer.New(a.list, logger)
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func closeDB(database *sql.DB, logger *slog.Logger) {
	if err := database.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}

// newLanguageBackend picks the translator and intent extractor named by
// NLP_BACKEND. The keyword backend works offline and is the default.
func newLanguageBackend(cfg *config.Config, lex *lexicon.Lexicon, logger *slog.Logger) (nlp.Translator, nlp.IntentExtractor, error) {
	switch cfg.NLPBackend {
	case "", "keyword":
		logger.Debug("using keyword language backend")
		return keyword.NewGlossary(lex), keyword.NewExtractor(lex), nil
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			return nil, nil, fmt.Errorf("CLAUDE_API_KEY is required when NLP_BACKEND=claude")
		}
		logger.Info("using Claude language backend", "model", cfg.ClaudeModel)
		b := claudenlp.NewClaudeBackend(cfg.ClaudeAPIKey, cfg.ClaudeModel)
		return b, b, nil
	case "ollama":
		logger.Info("using Ollama language backend", "model", cfg.OllamaModel)
		b := ollamanlp.NewOllamaBackend(cfg.OllamaHost, cfg.OllamaModel)
		return b, b, nil
	default:
		return nil, nil, fmt.Errorf("unknown NLP_BACKEND %q", cfg.NLPBackend)
	}
}
