package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/AnshRaj112/hireon-backend/internal/config"
	"github.com/AnshRaj112/hireon-backend/internal/database"
	"github.com/AnshRaj112/hireon-backend/internal/handlers"
	"github.com/AnshRaj112/hireon-backend/internal/middleware"
	"github.com/AnshRaj112/hireon-backend/internal/routes"
	"github.com/AnshRaj112/hireon-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	if cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Println("⚠️  WARNING: SECRET_KEY not set. Using the default signing secret.")
		log.Println("   Set it in your environment: SECRET_KEY=<generated-key>")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Ensure the unique email index before serving traffic
	if err := services.EnsureUserIndexes(context.Background()); err != nil {
		log.Fatal("Failed to ensure MongoDB user indexes:", err)
	}
	log.Println("✅ MongoDB user indexes ensured")

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Initialize Cloudinary service
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	// Session tokens: secret injected from config, 24h validity
	tokens := services.NewTokenService([]byte(cfg.JWTSecret), services.SessionDuration)
	handlers.InitServices(services.NewMongoUserStore(), tokens)

	// Setup router
	r := chi.NewRouter()

	// CORS must allow credentials so the session cookie travels cross-site
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r, tokens)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/v1/user/register")
	log.Println("  POST /api/v1/user/login")
	log.Println("  GET  /api/v1/user/logout")
	log.Println("  GET  /api/v1/user/me")
	log.Println("  POST /api/v1/user/profile/update")

	log.Printf("🚀 Hireon backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
