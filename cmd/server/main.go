package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/skillswap/skillswap-server/internal/assistant"
	"github.com/skillswap/skillswap-server/internal/config"
	"github.com/skillswap/skillswap-server/internal/database"
	"github.com/skillswap/skillswap-server/internal/handlers"
	"github.com/skillswap/skillswap-server/internal/relay"
	"github.com/skillswap/skillswap-server/internal/repository"
	"github.com/skillswap/skillswap-server/internal/services"
	"github.com/skillswap/skillswap-server/pkg/cache"
	"github.com/skillswap/skillswap-server/pkg/logger"
	"github.com/skillswap/skillswap-server/pkg/middleware"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Optional search cache
	cache.InitRedis(cfg.RedisAddr)

	// Real-time relay hub
	hub := relay.NewHub()
	go hub.Run()

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	friendService := services.NewFriendService(friendshipRepo, userRepo, hub)
	chatService := services.NewChatService(messageRepo, hub)
	swapService := services.NewSwapService(swapRepo, userRepo, hub)
	ratingService := services.NewRatingService(ratingRepo, swapRepo, userRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	friendHandler := handlers.NewFriendHandler(friendService)
	chatHandler := handlers.NewChatHandler(chatService)
	swapHandler := handlers.NewSwapHandler(swapService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	assistantHandler := handlers.NewAssistantHandler(assistant.NewClient(cfg.GeminiAPIKey), userService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/search", userHandler.SearchUsersHandler).Methods("GET")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/profile", userHandler.GetProfileHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/profile", userHandler.UpdateProfileHandler).Methods("PUT")

	// Friend routes
	protectedFriendRoutes := router.PathPrefix("/friends").Subrouter()
	protectedFriendRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedFriendRoutes.HandleFunc("/request", friendHandler.SendFriendRequestHandler).Methods("POST")
	protectedFriendRoutes.HandleFunc("/requests/{id}", friendHandler.RespondToFriendRequestHandler).Methods("PUT")
	protectedFriendRoutes.HandleFunc("/all", friendHandler.GetFriendsHandler).Methods("GET")

	// Chat routes
	protectedChatRoutes := router.PathPrefix("/chat").Subrouter()
	protectedChatRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedChatRoutes.HandleFunc("/messages", chatHandler.SendMessageHandler).Methods("POST")
	protectedChatRoutes.HandleFunc("/{friendshipId}", chatHandler.GetConversationHandler).Methods("GET")

	// Swap routes
	protectedSwapRoutes := router.PathPrefix("/swaps").Subrouter()
	protectedSwapRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedSwapRoutes.HandleFunc("", swapHandler.CreateSwapHandler).Methods("POST")
	protectedSwapRoutes.HandleFunc("", swapHandler.ListSwapsHandler).Methods("GET")
	protectedSwapRoutes.HandleFunc("/{id}", swapHandler.SwapActionHandler).Methods("PUT")
	protectedSwapRoutes.HandleFunc("/{id}", swapHandler.DeleteSwapHandler).Methods("DELETE")

	// Rating routes
	protectedRatingRoutes := router.PathPrefix("/ratings").Subrouter()
	protectedRatingRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedRatingRoutes.HandleFunc("", ratingHandler.CreateRatingHandler).Methods("POST")
	protectedRatingRoutes.HandleFunc("", ratingHandler.GetRatingsHandler).Methods("GET")

	// Assistant route
	protectedAssistantRoutes := router.PathPrefix("/assistant").Subrouter()
	protectedAssistantRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAssistantRoutes.HandleFunc("", assistantHandler.AskHandler).Methods("POST")

	// Real-time relay endpoint (token auth via query parameter)
	router.HandleFunc("/ws", relay.ServeWS(hub, cfg.JWTSecret)).Methods("GET")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")
	adminRoutes.HandleFunc("/users/{id}/status", userHandler.AdminSetUserStatusHandler).Methods("PUT")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
