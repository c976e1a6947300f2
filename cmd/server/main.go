package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/nartbayev/wishwell/internal/config"
	"github.com/nartbayev/wishwell/internal/database"
	"github.com/nartbayev/wishwell/internal/handlers"
	"github.com/nartbayev/wishwell/internal/repository"
	"github.com/nartbayev/wishwell/internal/services"
	"github.com/nartbayev/wishwell/pkg/logger"
	"github.com/nartbayev/wishwell/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	wishRepo := repository.NewWishRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	wishService := services.NewWishService(wishRepo, offerRepo, userRepo)
	offerService := services.NewOfferService(offerRepo, wishRepo, userRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, wishRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, wishService, cfg)
	wishHandler := handlers.NewWishHandler(wishService)
	offerHandler := handlers.NewOfferHandler(offerService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)

	router := mux.NewRouter()

	// Public auth routes
	router.HandleFunc("/signup", userHandler.SignupHandler).Methods("POST")
	router.HandleFunc("/signin", userHandler.SigninHandler).Methods("POST")

	// Public wish feeds
	router.HandleFunc("/wishes/last", wishHandler.GetLastWishesHandler).Methods("GET")
	router.HandleFunc("/wishes/top", wishHandler.GetTopWishesHandler).Methods("GET")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetOwnProfileHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me", userHandler.UpdateOwnProfileHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/me/wishes", userHandler.GetOwnWishesHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/find", userHandler.FindUsersHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/{username}", userHandler.GetProfileHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{username}/wishes", userHandler.GetUserWishesHandler).Methods("GET")

	// Protected wish routes
	protectedWishRoutes := router.PathPrefix("/wishes").Subrouter()
	protectedWishRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedWishRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedWishRoutes.HandleFunc("", wishHandler.CreateWishHandler).Methods("POST")
	protectedWishRoutes.HandleFunc("", wishHandler.GetWishesHandler).Methods("GET")
	protectedWishRoutes.HandleFunc("/{id}", wishHandler.GetWishHandler).Methods("GET")
	protectedWishRoutes.HandleFunc("/{id}", wishHandler.UpdateWishHandler).Methods("PATCH")
	protectedWishRoutes.HandleFunc("/{id}", wishHandler.DeleteWishHandler).Methods("DELETE")
	protectedWishRoutes.HandleFunc("/{id}/copy", wishHandler.CopyWishHandler).Methods("POST")

	// Protected offer routes
	protectedOfferRoutes := router.PathPrefix("/offers").Subrouter()
	protectedOfferRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedOfferRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedOfferRoutes.HandleFunc("", offerHandler.CreateOfferHandler).Methods("POST")
	protectedOfferRoutes.HandleFunc("", offerHandler.GetOffersHandler).Methods("GET")
	protectedOfferRoutes.HandleFunc("/{id}", offerHandler.GetOfferHandler).Methods("GET")

	// Protected wishlist routes
	protectedWishlistRoutes := router.PathPrefix("/wishlists").Subrouter()
	protectedWishlistRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedWishlistRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedWishlistRoutes.HandleFunc("", wishlistHandler.CreateWishlistHandler).Methods("POST")
	protectedWishlistRoutes.HandleFunc("", wishlistHandler.GetWishlistsHandler).Methods("GET")
	protectedWishlistRoutes.HandleFunc("/{id}", wishlistHandler.GetWishlistHandler).Methods("GET")
	protectedWishlistRoutes.HandleFunc("/{id}", wishlistHandler.UpdateWishlistHandler).Methods("PATCH")
	protectedWishlistRoutes.HandleFunc("/{id}", wishlistHandler.DeleteWishlistHandler).Methods("DELETE")

	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
