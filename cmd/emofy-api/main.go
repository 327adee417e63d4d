package main

import (
	"context"
	"log"
	"net/http"

	"github.com/emofy/emofy-api/internal/adapters/catalog"
	httpadapter "github.com/emofy/emofy-api/internal/adapters/http"
	"github.com/emofy/emofy-api/internal/adapters/llm"
	firestorestore "github.com/emofy/emofy-api/internal/adapters/storage/firestore"
	memstore "github.com/emofy/emofy-api/internal/adapters/storage/memory"
	"github.com/emofy/emofy-api/internal/app/account"
	"github.com/emofy/emofy-api/internal/app/recommend"
	"github.com/emofy/emofy-api/internal/app/sentiment"
	sessionapp "github.com/emofy/emofy-api/internal/app/session"
	"github.com/emofy/emofy-api/internal/auth"
	"github.com/emofy/emofy-api/internal/config"
	"github.com/emofy/emofy-api/internal/domain"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	// Conversational model: mock, Gemini API or Vertex AI
	var model domain.ModelClient
	switch cfg.Model.Backend {
	case "mock":
		log.Println("[LLM] Using mock model client")
		model = llm.NewMockClient()
	default:
		log.Printf("[LLM] Using %s backend (model=%s)", cfg.Model.Backend, cfg.Model.Name)
		model, err = llm.NewGeminiClient(ctx, llm.Config{
			Model:     cfg.Model.Name,
			APIKey:    cfg.Model.APIKey,
			Project:   cfg.Model.GCPProject,
			Location:  cfg.Model.GCPLocation,
			UseVertex: cfg.Model.Backend == "vertex",
		})
		if err != nil {
			log.Fatalf("error initializing model client: %v", err)
		}
	}

	// User storage: Firestore or memory
	var users domain.UserStore
	switch cfg.Storage.Backend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.Storage.GCPProject)
		users, err = firestorestore.NewStore(ctx, cfg.Storage.GCPProject)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
	default:
		log.Println("[STORE] Using in-memory storage")
		users = memstore.NewUserStore()
	}

	sessions := memstore.NewSessionStore(cfg.Session.HistoryWindow)

	// Recommendation catalogs
	movies := catalog.NewOMDBClient(cfg.Catalog.OMDBBaseURL, cfg.Catalog.OMDBAPIKey, cfg.Catalog.Timeout)
	books := catalog.NewBooksClient(cfg.Catalog.BooksBaseURL, cfg.Catalog.Timeout)

	// Auth
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("error initializing token manager: %v", err)
	}

	// Application services
	engine := sentiment.NewEngine(model)
	aggregator := recommend.NewAggregator(movies, books)
	orchestrator := sessionapp.NewOrchestrator(engine, aggregator, sessions, users)
	accounts := account.NewService(users, tokens)

	handler := httpadapter.NewServer(accounts, orchestrator, auth.NewMiddleware(tokens), httpadapter.Options{
		CookieTTL:       cfg.Auth.TokenTTL,
		LoginRateLimit:  cfg.Auth.LoginRateLimit,
		LoginRateWindow: cfg.Auth.LoginRateWindow,
	})

	addr := ":" + cfg.Server.Port
	log.Println("Emofy API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
