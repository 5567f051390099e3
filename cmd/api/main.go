package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cantouch/socialflow-backend/internal/config"
	"github.com/cantouch/socialflow-backend/internal/domain"
	"github.com/cantouch/socialflow-backend/internal/genai"
	"github.com/cantouch/socialflow-backend/internal/handler"
	"github.com/cantouch/socialflow-backend/internal/middleware"
	"github.com/cantouch/socialflow-backend/internal/repository"
	"github.com/cantouch/socialflow-backend/internal/service"
	pkglogger "github.com/cantouch/socialflow-backend/pkg/logger"
	pkgredis "github.com/cantouch/socialflow-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           SocialFlow Backend API
// @version         1.0
// @description     AI social media campaign generator - Backend API
//
// @license.name    MIT
//
// @host            localhost:8080
// @BasePath        /api/v1

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL: generation history only, the API works without it
	var historyRepo *repository.GenerationRepository
	if cfg.Database.Enabled {
		db, dbErr := initDB(cfg)
		if dbErr != nil {
			pkglogger.Warn("Failed to connect to database: %v (continuing without history)", dbErr)
		} else {
			pkglogger.Info("Connected to MySQL")
			if err := db.AutoMigrate(&domain.GenerationRecord{}); err != nil {
				pkglogger.Warn("Migration warning: %v", err)
			}
			historyRepo = repository.NewGenerationRepository(db)
		}
	}

	// Redis backs the shared schedule; fall back to in-memory when unavailable
	var store repository.ScheduleStore
	if cfg.Redis.Enabled {
		redisClient, redisErr := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if redisErr != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (schedule will not survive restarts)", redisErr)
		} else {
			pkglogger.Info("Connected to Redis")
			store = repository.NewRedisScheduleStore(redisClient, cfg.Schedule.Namespace)
		}
	}
	if store == nil {
		store = repository.NewMemoryScheduleStore()
	}

	geminiClient := genai.NewClient(cfg.Gemini.BaseURL)
	generator := service.NewGenerator(geminiClient, historyRepo, service.GeneratorConfig{
		TextModel:   cfg.Gemini.TextModel,
		ImageModel:  cfg.Gemini.ImageModel,
		Temperature: cfg.Gemini.Temperature,
	})
	scheduleService := service.NewScheduleService(context.Background(), store)
	sessionManager := service.NewSessionManager(cfg.Gemini.APIKey)

	sessionHandler := handler.NewSessionHandler(sessionManager)
	generateHandler := handler.NewGenerateHandler(generator, historyRepo)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", middleware.SessionHeader},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:           86400,
	}))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "socialflow-backend",
			"time":    time.Now().Unix(),
		})
	})

	api := router.Group("/api/v1")
	api.POST("/sessions", sessionHandler.Create)

	authed := api.Group("")
	authed.Use(middleware.Session(sessionManager))

	authed.PUT("/sessions/credential", sessionHandler.SaveCredential)

	authed.POST("/generate", generateHandler.Generate)
	authed.POST("/generate/regenerate", generateHandler.Regenerate)
	authed.GET("/generate/result", generateHandler.Result)
	authed.GET("/generate/export", generateHandler.ExportCSV)
	authed.GET("/generate/history", generateHandler.History)
	authed.PATCH("/generate/posts/:index", generateHandler.UpdatePost)
	authed.POST("/generate/posts/:index/refine", generateHandler.RefinePost)
	authed.POST("/generate/posts/:index/image", generateHandler.GenerateImage)

	authed.POST("/schedule", scheduleHandler.Save)
	authed.GET("/schedule", scheduleHandler.List)
	authed.DELETE("/schedule/:id", scheduleHandler.Delete)
	authed.POST("/schedule/:id/duplicate", scheduleHandler.Duplicate)

	// Drop sessions idle for over an hour
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := sessionManager.PruneIdle(time.Hour); n > 0 {
				pkglogger.Info("Pruned %d idle sessions", n)
			}
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s string, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// initDB opens the MySQL connection used for generation history
func initDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
