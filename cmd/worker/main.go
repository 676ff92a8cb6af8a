package main

import (
	"context"
	"log"

	"github.com/sumerpunjabi/reelbot-api/config"
	"github.com/sumerpunjabi/reelbot-api/instagram"
	"github.com/sumerpunjabi/reelbot-api/internal/platform"
	"github.com/sumerpunjabi/reelbot-api/models"
	"github.com/sumerpunjabi/reelbot-api/reddit"
	"github.com/sumerpunjabi/reelbot-api/reel"
	"github.com/sumerpunjabi/reelbot-api/tasks"
	"github.com/sumerpunjabi/reelbot-api/tts"
	"github.com/sumerpunjabi/reelbot-api/worker"
)

func main() {
	// Use the shared initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	cfg := config.Load()
	ctx := context.Background()

	if err := db.AutoMigrate(&models.Reel{}, &models.Post{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	redditClient, err := reddit.NewClient(&cfg)
	if err != nil {
		log.Fatalf("Reddit client: %v", err)
	}

	narrator, err := tts.New(cfg.TTSProvider)
	if err != nil {
		log.Fatalf("TTS engine: %v", err)
	}

	gen, err := reel.NewGenerator(cfg, redditClient, narrator)
	if err != nil {
		log.Fatalf("Generator: %v", err)
	}

	uploader, err := instagram.NewUploader(&cfg)
	if err != nil {
		log.Fatalf("Instagram uploader: %v", err)
	}

	p := worker.NewProcessor(db, rdb, cfg, gen, uploader, redditClient)
	p.Register(tasks.QueueReelGenerate, p.HandleReelGenerate)
	p.Register(tasks.QueueReelPublish, p.HandleReelPublish)
	p.Register(tasks.QueueImagePost, p.HandleImagePost)

	log.Println("Worker started, waiting for queue tasks...")
	p.Listen(ctx, tasks.QueueReelGenerate, tasks.QueueReelPublish, tasks.QueueImagePost)
}
