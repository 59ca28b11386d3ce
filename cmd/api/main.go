// cmd/api/main.go
// Main entry point for the application
// Bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studycircleapp/studycircle-backend/internal/auth"
	"github.com/studycircleapp/studycircle-backend/internal/common/database"
	"github.com/studycircleapp/studycircle-backend/internal/config"
	"github.com/studycircleapp/studycircle-backend/internal/matching"
	"github.com/studycircleapp/studycircle-backend/internal/partners"
	"github.com/studycircleapp/studycircle-backend/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting StudyCircle API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without caching", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize authentication
	log.Println("\n🔐 Step 7: Initializing authentication system...")
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, redisClient, &auth.Config{
		JWTSecret:           cfg.JWTSecret,
		BCryptCost:          cfg.BCryptCost,
		AccessTokenExpiry:   cfg.AccessTokenExpiry,
		RefreshTokenExpiry:  cfg.RefreshTokenExpiry,
		LoginAttemptsMax:    cfg.LoginAttemptsMax,
		LoginAttemptsWindow: cfg.LoginAttemptsWindow,
	})
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication system ready")

	// 8. Initialize profiles
	log.Println("\n👤 Step 8: Initializing Profile module...")
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, &profile.Config{
		MaxSubjects:  cfg.MaxSubjects,
		MaxInterests: cfg.MaxInterests,
	})
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profile module ready")

	// 9. Initialize partner matching
	log.Println("\n🤝 Step 9: Initializing Partner Matching module...")
	engine := matching.NewDefaultEngine()
	partnersRepo := partners.NewPostgresRepository(db)
	partnersService := partners.NewService(partnersRepo, engine, redisClient, &partners.Config{
		DiscoverFeedSize: cfg.DiscoverFeedSize,
		DailyPicksCount:  cfg.DailyPicksCount,
		MinMatchScore:    cfg.MinMatchScore,
		CandidatePool:    cfg.CandidatePool,
		FeedCacheTTL:     cfg.FeedCacheTTL,
	})
	partnersHandler := partners.NewHandler(partnersService)
	log.Println("✅ Partner Matching module ready")

	// 10. Set up routes
	log.Println("\n🛣️  Step 10: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth.RegisterRoutes(router, authHandler, authMiddleware)
	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	partners.RegisterRoutes(router, partnersHandler, authMiddleware)

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)
	log.Println("✅ Routes registered")

	// 11. Background jobs
	log.Println("\n⏰ Step 11: Starting background jobs...")
	stopJobs := make(chan struct{})
	go runDailyPickJobs(partnersService, stopJobs)
	log.Println("✅ Background jobs running")

	// 12. Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("\n🌐 Server listening on port %s (%s)", cfg.Port, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server failed:", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")
	close(stopJobs)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("👋 Server stopped gracefully")
}

// runDailyPickJobs regenerates recommendations once an hour and prunes
// expired picks. The generator itself skips users who already have picks
// for the current day.
func runDailyPickJobs(service partners.Service, stop <-chan struct{}) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	// First run shortly after startup so fresh deployments have picks
	initial := time.NewTimer(1 * time.Minute)
	defer initial.Stop()

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := service.CleanupExpiredPicks(ctx); err != nil {
			log.Printf("⚠️  Daily pick cleanup failed: %v", err)
		}
		if err := service.GenerateDailyPicks(ctx); err != nil {
			log.Printf("⚠️  Daily pick generation failed: %v", err)
		}
	}

	for {
		select {
		case <-initial.C:
			run()
		case <-ticker.C:
			run()
		case <-stop:
			return
		}
	}
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// requestIDMiddleware tags every request for log correlation
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			username VARCHAR(30) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			is_profile_complete BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			device_info TEXT,
			ip_address VARCHAR(45),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS study_profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			display_name VARCHAR(100) NOT NULL,
			bio TEXT,
			about TEXT,
			age INT,
			subjects TEXT[] DEFAULT '{}',
			interests TEXT[] DEFAULT '{}',
			goals TEXT[] DEFAULT '{}',
			available_days TEXT[] DEFAULT '{}',
			available_hours TEXT[] DEFAULT '{}',
			languages TEXT[] DEFAULT '{}',
			strengths TEXT[] DEFAULT '{}',
			weaknesses TEXT[] DEFAULT '{}',
			skill_level VARCHAR(20),
			study_style VARCHAR(20),
			role VARCHAR(10),
			school VARCHAR(150),
			location_city VARCHAR(100),
			location_country VARCHAR(100),
			location_lat DOUBLE PRECISION,
			location_lng DOUBLE PRECISION,
			timezone VARCHAR(30),
			is_looking_for_partner BOOLEAN DEFAULT TRUE,
			last_study_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS partner_requests (
			id BIGSERIAL PRIMARY KEY,
			sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			message TEXT,
			subject VARCHAR(100),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			declined_reason TEXT,
			response_message TEXT,
			responded_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS connections (
			id BIGSERIAL PRIMARY KEY,
			user1_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user2_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			match_score INT,
			session_count INT DEFAULT 0,
			last_session_at TIMESTAMPTZ,
			is_active BOOLEAN DEFAULT TRUE,
			disconnected_by BIGINT,
			disconnected_at TIMESTAMPTZ,
			connected_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS daily_picks (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			recommended_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			score INT NOT NULL,
			reason TEXT,
			breakdown JSONB,
			is_seen BOOLEAN DEFAULT FALSE,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_refresh_token ON sessions(refresh_token)`,
		`CREATE INDEX IF NOT EXISTS idx_study_profiles_looking ON study_profiles(is_looking_for_partner)`,
		`CREATE INDEX IF NOT EXISTS idx_study_profiles_subjects ON study_profiles USING GIN(subjects)`,
		`CREATE INDEX IF NOT EXISTS idx_partner_requests_receiver ON partner_requests(receiver_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_connections_users ON connections(user1_id, user2_id)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_picks_user ON daily_picks(user_id, created_at)`,
	}

	for i, migration := range migrations {
		log.Printf("   - Running migration %d/%d...", i+1, len(migrations))
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
