// main.go
package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sumerpunjabi/reelbot-api/config"
	"github.com/sumerpunjabi/reelbot-api/internal/platform"
	"github.com/sumerpunjabi/reelbot-api/models"
	"github.com/sumerpunjabi/reelbot-api/tasks"
)

type Server struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Cfg    config.Config
	Router *gin.Engine
}

func NewServer() (*Server, error) {
	// Use the shared connection initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	cfg := config.Load()

	if err := db.AutoMigrate(&models.Reel{}, &models.Post{}); err != nil {
		return nil, err
	}

	router := gin.Default()

	server := &Server{
		DB:     db,
		Redis:  rdb,
		Cfg:    cfg,
		Router: router,
	}

	server.setupRoutes()

	return server, nil
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		sqlDB, err := s.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		if err := sqlDB.Ping(); err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	})

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Reelbot API v1"})
	})

	reelRoutes := s.Router.Group("/reels")
	{
		reelRoutes.POST("", s.CreateReel)
		reelRoutes.GET("", s.ListReels)
		reelRoutes.GET("/:id", s.GetReel)
	}

	s.Router.POST("/posts/image", s.CreateImagePost)
}

// CreateReel records a reel job for a reddit post URL and queues it for
// generation.
func (s *Server) CreateReel(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	rec := models.Reel{
		ReelID:    newReelID(),
		RedditURL: req.URL,
		Status:    "pending",
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		c.JSON(500, gin.H{"error": "failed to create reel record"})
		return
	}

	payload, err := tasks.Marshal(tasks.GenerateTaskPayload{ReelID: rec.ID})
	if err != nil {
		c.JSON(500, gin.H{"error": "failed to marshal task"})
		return
	}
	if err := s.Redis.LPush(c.Request.Context(), tasks.QueueReelGenerate, payload).Err(); err != nil {
		s.DB.Model(&rec).Update("status", "failed_queue")
		c.JSON(500, gin.H{"error": "failed to queue reel"})
		return
	}

	c.JSON(201, rec)
}

// ListReels returns all reel jobs, newest first.
func (s *Server) ListReels(c *gin.Context) {
	var reels []models.Reel
	if err := s.DB.Order("created_at DESC").Find(&reels).Error; err != nil {
		c.JSON(500, gin.H{"error": "failed to list reels"})
		return
	}
	c.JSON(200, reels)
}

// GetReel returns one reel job by its numeric id.
func (s *Server) GetReel(c *gin.Context) {
	var rec models.Reel
	if err := s.DB.First(&rec, c.Param("id")).Error; err != nil {
		c.JSON(404, gin.H{"error": "reel not found"})
		return
	}
	c.JSON(200, rec)
}

// CreateImagePost queues one run of the legacy image pipeline.
func (s *Server) CreateImagePost(c *gin.Context) {
	var req struct {
		Subreddit string `json:"subreddit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	payload, err := tasks.Marshal(tasks.ImagePostTaskPayload{Subreddit: req.Subreddit})
	if err != nil {
		c.JSON(500, gin.H{"error": "failed to marshal task"})
		return
	}
	if err := s.Redis.LPush(c.Request.Context(), tasks.QueueImagePost, payload).Err(); err != nil {
		c.JSON(500, gin.H{"error": "failed to queue image post"})
		return
	}

	c.JSON(202, gin.H{"status": "queued"})
}

// newReelID gives each job a short id used to namespace its temp files
// and output name.
func newReelID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (s *Server) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	return s.Router.Run(":" + port)
}

func main() {
	server, err := NewServer()
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	if err := server.Run(); err != nil {
		log.Fatal("Failed to run server:", err)
	}
}
