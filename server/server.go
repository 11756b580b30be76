package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"OpenMusic/cache"
	"OpenMusic/config"
	"OpenMusic/core/access"
	"OpenMusic/core/album"
	"OpenMusic/core/auth"
	"OpenMusic/core/export"
	"OpenMusic/core/playlist"
	"OpenMusic/core/song"
	"OpenMusic/db"
	"OpenMusic/logger"
	"OpenMusic/repository"
	"OpenMusic/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     cfg.LogMaxAge,
		Compress:   true,
	})

	auth.InitJWT(cfg.JWTSecret)

	// Connect to the database.
	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.CloseDB()

	// GORM owns the schema; repositories run raw SQL over db.DB.
	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()
	if err := db.AutoMigrate(); err != nil {
		logger.Fatal("Failed to migrate database schema", logger.ErrorField(err))
	}

	// Connect to Redis.
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer cache.CloseRedis()
	logger.Info("Successfully connected to Redis")

	// Cover storage.
	covers, err := storage.NewCoverStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize cover storage", logger.ErrorField(err))
	}

	// Export queue publisher; dials lazily on first publish.
	publisher := export.NewRabbitPublisher(cfg.RabbitMQURL)
	defer publisher.Close()

	// Repositories.
	userRepo := repository.NewMySQLUserRepository(db.DB)
	albumRepo := repository.NewMySQLAlbumRepository(db.DB)
	songRepo := repository.NewMySQLSongRepository(db.DB)
	likeRepo := repository.NewMySQLAlbumLikeRepository(db.DB)
	playlistRepo := repository.NewMySQLPlaylistRepository(db.DB)
	collabRepo := repository.NewMySQLCollaborationRepository(db.DB)

	// Services.
	evaluator := access.NewEvaluator(playlistRepo, collabRepo)
	likeCache := cache.NewAlbumLikeCache(cache.RedisClient)
	albumService := album.NewService(albumRepo, songRepo, likeRepo, likeCache)
	songService := song.NewService(songRepo, albumRepo)
	playlistService := playlist.NewService(evaluator, playlistRepo, collabRepo, songRepo, userRepo)
	exportDispatcher := export.NewDispatcher(evaluator, publisher)

	apiHandler := NewAPIHandler(cfg, userRepo, albumService, songService, playlistService, exportDispatcher, covers)

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	registerRoutes(router, apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", logger.ErrorField(err))
		}
	}()

	// Block until interrupted, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
}

// registerRoutes wires the API endpoints.
func registerRoutes(router *mux.Router, h *APIHandler) {
	// Users and authentication.
	router.HandleFunc("/api/users", h.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", h.LoginHandler).Methods(http.MethodPost)

	// Albums.
	router.HandleFunc("/api/albums", h.CreateAlbumHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/albums/{id}", h.GetAlbumHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/albums/{id}", h.UpdateAlbumHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/albums/{id}", h.DeleteAlbumHandler).Methods(http.MethodDelete)
	router.HandleFunc("/api/albums/{id}/covers", h.AuthMiddleware(h.UploadCoverHandler)).Methods(http.MethodPost)

	// Album likes.
	router.HandleFunc("/api/albums/{id}/likes", h.AuthMiddleware(h.LikeAlbumHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/albums/{id}/likes", h.AuthMiddleware(h.UnlikeAlbumHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/albums/{id}/likes", h.GetAlbumLikesHandler).Methods(http.MethodGet)

	// Songs.
	router.HandleFunc("/api/songs", h.CreateSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/songs", h.ListSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", h.GetSongHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", h.UpdateSongHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/songs/{id}", h.DeleteSongHandler).Methods(http.MethodDelete)

	// Playlists.
	router.HandleFunc("/api/playlists", h.AuthMiddleware(h.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists", h.AuthMiddleware(h.ListPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", h.AuthMiddleware(h.DeletePlaylistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/songs", h.AuthMiddleware(h.AddPlaylistSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/songs", h.AuthMiddleware(h.GetPlaylistSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}/songs", h.AuthMiddleware(h.RemovePlaylistSongHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/activities", h.AuthMiddleware(h.GetPlaylistActivitiesHandler)).Methods(http.MethodGet)

	// Collaborations.
	router.HandleFunc("/api/collaborations", h.AuthMiddleware(h.AddCollaborationHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/collaborations", h.AuthMiddleware(h.RemoveCollaborationHandler)).Methods(http.MethodDelete)

	// Export.
	router.HandleFunc("/api/export/playlists/{id}", h.AuthMiddleware(h.ExportPlaylistHandler)).Methods(http.MethodPost)
}

// corsMiddleware sets permissive CORS headers and answers preflights.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "X-Data-Source")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
