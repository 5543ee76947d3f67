package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/shoplist/internal/command"
	"github.com/vbonduro/shoplist/internal/importer"
	"github.com/vbonduro/shoplist/internal/service"
)

// Options carries the HTTP-level settings taken from config.
type Options struct {
	AllowOrigins   []string
	MaxUploadBytes int64
}

type Server struct {
	list     *service.ListService
	commands *command.Interpreter
	importer *importer.Importer
	router   chi.Router
	opts     Options
	logger   *slog.Logger
}

func NewServer(
	list *service.ListService,
	commands *command.Interpreter,
	imp *importer.Importer,
	opts Options,
	logger *slog.Logger,
) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	s := &Server{
		list:     list,
		commands: commands,
		importer: imp,
		opts:     opts,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	// Order matters: recover wraps everything so panics in later
	// middleware are caught too.
	r.Use(recoverer(s.logger))
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(securityHeaders)
	r.Use(cors(s.opts.AllowOrigins))
	r.Use(limitBytes(s.opts.MaxUploadBytes))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/items", s.handleListItems)
		r.Post("/items", s.handleAddItem)
		r.Post("/items/remove", s.handleRemoveItem)
		r.Get("/suggestions", s.handleSuggestions)
		r.Get("/search", s.handleSearch)
		r.Get("/history", s.handleHistory)

		r.Post("/command", s.handleCommand)
		r.Post("/translate", s.handleTranslate)
		r.Post("/unmapped", s.handleUnmapped)

		r.Post("/import", s.handleImport)
		r.Get("/export", s.handleExport)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
