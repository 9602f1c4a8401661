package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MoodFM/cache"
	"MoodFM/config"
	"MoodFM/core/agent"
	"MoodFM/core/auth"
	"MoodFM/core/deezer"
	"MoodFM/core/memory"
	"MoodFM/core/recommend"
	"MoodFM/db"
	"MoodFM/logger"
	"MoodFM/model"
	"MoodFM/repository"
	"MoodFM/storage"

	"github.com/gorilla/mux"
)

// Start initializes dependencies and runs the HTTP server until interrupted.
func Start() {
	cfg := config.Load()

	auth.Init(cfg.JWTSecret)

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	if err := storage.InitMinio(cfg); err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	if err := cache.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.CloseRedis()

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(&model.User{}, &model.RecommendationHistory{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	deezerClient := deezer.NewClient(cfg)
	recommender := recommend.New(deezerClient, cfg)
	memStore := memory.NewStore(cache.RedisClient, storage.GetMinioClient(), cfg.MinioBucket)

	userRepo := repository.NewGormUserRepository(db.GormDB)
	historyRepo := repository.NewGormHistoryRepository(db.GormDB)

	apiHandler := NewAPIHandler(recommender, memStore, userRepo, historyRepo, cfg)
	chatHandler := NewChatHandler(&agent.MusicAgentConfig{
		APIBaseURL:  cfg.AgentAPIBaseURL,
		APIKey:      cfg.AgentAPIKey,
		Model:       cfg.AgentModel,
		MaxTokens:   cfg.AgentMaxTokens,
		Temperature: 0.7,
	}, recommender, memStore, apiHandler)

	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Auth
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)

	// Sessions and search
	router.HandleFunc("/api/session", apiHandler.CreateSessionHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/search/artist", apiHandler.OptionalAuthMiddleware(apiHandler.SearchArtistHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/search/genre", apiHandler.OptionalAuthMiddleware(apiHandler.SearchGenreHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/search/mood", apiHandler.OptionalAuthMiddleware(apiHandler.SearchMoodHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/search/track", apiHandler.OptionalAuthMiddleware(apiHandler.SearchTrackHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/search/more", apiHandler.OptionalAuthMiddleware(apiHandler.SearchMoreHandler)).Methods(http.MethodGet)

	// History and health
	router.HandleFunc("/api/history", apiHandler.OptionalAuthMiddleware(apiHandler.HistoryHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/health", apiHandler.HealthHandler).Methods(http.MethodGet)

	// Streaming chat
	router.HandleFunc("/api/chat/ws", chatHandler.WebSocketChatHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
