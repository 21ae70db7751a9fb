package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/mverhey/confidant/internal/api/handler"
	customMiddleware "github.com/mverhey/confidant/internal/api/middleware"
	"github.com/mverhey/confidant/internal/config"
	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/export"
	"github.com/mverhey/confidant/internal/llm"
	"github.com/mverhey/confidant/internal/llm/anthropic"
	"github.com/mverhey/confidant/internal/llm/deepseek"
	"github.com/mverhey/confidant/internal/llm/gemini"
	"github.com/mverhey/confidant/internal/llm/ollama"
	"github.com/mverhey/confidant/internal/llm/openai"
	"github.com/mverhey/confidant/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, sessions domain.SessionStore, profiles domain.ProfileStore, exporter export.Exporter) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS, open for the local front-end
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	llmRouter := NewLLMRouter(cfg.LLM)

	// Core services
	assembler := service.NewContextAssembler(sessions, cfg.Context.CrossSessionWindow)
	personality := service.NewPersonalityManager(profiles, sessions, llmRouter, cfg.Context.PersonalityWindow)
	identity := service.NewSessionIdentity(sessions, llmRouter)
	summarizer := service.NewSummarizer(llmRouter)

	manager := service.NewManager(func(name string) *service.ConversationEngine {
		return service.NewConversationEngine(sessions, assembler, personality, identity, summarizer, exporter, llmRouter, name)
	})

	// Handlers
	sessionHandler := handler.NewSessionHandler(sessions, manager)
	personalityHandler := handler.NewPersonalityHandler(personality)
	setupHandler := handler.NewSetupHandler(profiles)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/llm-providers", handler.ListProviders(llmRouter))

		r.Post("/setup", setupHandler.Create)

		r.Route("/personality", func(r chi.Router) {
			r.Get("/", personalityHandler.Get)
			r.Post("/rebuild", personalityHandler.Rebuild)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Post("/", sessionHandler.Create)

			r.Route("/{name}", func(r chi.Router) {
				r.Get("/turns", sessionHandler.GetTurns)
				r.Delete("/", sessionHandler.Delete)
				r.Post("/messages", sessionHandler.Send)
				r.Post("/export", sessionHandler.Export)
			})
		})
	})

	return r
}

// NewLLMRouter registers every configured completion provider
func NewLLMRouter(cfg config.LLMConfig) *llm.Router {
	llmRouter := llm.NewRouter(cfg.DefaultProvider)

	log.Info().Msgf("Initializing completion providers. Default: %s", cfg.DefaultProvider)

	if cfg.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	}
	if cfg.Anthropic.APIKey != "" {
		llmRouter.RegisterProvider(anthropic.NewProvider(cfg.Anthropic.APIKey, cfg.Anthropic.Model))
	}
	if cfg.DeepSeek.APIKey != "" {
		llmRouter.RegisterProvider(deepseek.NewProvider(cfg.DeepSeek.APIKey, cfg.DeepSeek.Model))
	}
	if cfg.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.Gemini.APIKey, cfg.Gemini.Model))
	}
	if cfg.Ollama.Host != "" {
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.Ollama.Host, cfg.Ollama.DefaultModel))
	}

	return llmRouter
}
