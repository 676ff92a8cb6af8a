package main

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/sumerpunjabi/reelbot-api/config"
	"github.com/sumerpunjabi/reelbot-api/internal/platform"
	"github.com/sumerpunjabi/reelbot-api/models"
	"github.com/sumerpunjabi/reelbot-api/reddit"
	"github.com/sumerpunjabi/reelbot-api/tasks"
)

func main() {
	// Use the shared initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	cfg := config.Load()
	ctx := context.Background()

	redditClient, err := reddit.NewClient(&cfg)
	if err != nil {
		log.Fatalf("Reddit client: %v", err)
	}

	c := cron.New()

	// Daily reel: scan the configured subreddits, pick the best unseen
	// post, record it and queue the generation pipeline.
	_, err = c.AddFunc(cfg.ScheduleSpec, func() {
		log.Printf("Scanning %v for the next reel", cfg.Subreddits)

		candidates, err := redditClient.ScanTop(ctx, cfg.Subreddits, 25)
		if err != nil {
			log.Printf("Error scanning subreddits: %v", err)
			return
		}

		processed, err := reddit.LoadProcessedIDs(cfg.ProcessedIDsFile)
		if err != nil {
			log.Printf("Error loading processed ids: %v", err)
			return
		}

		best := reddit.SelectBest(candidates, processed, cfg.AllowNSFW)
		if best == nil {
			log.Println("No new candidate post found today")
			return
		}

		// The permalink always points at the comments page; URL is the
		// link target for link posts and useless to the fetcher.
		rec := models.Reel{
			ReelID:    newReelID(),
			RedditURL: best.Permalink,
			PostID:    best.ID,
			Status:    "pending",
		}
		if err := db.Create(&rec).Error; err != nil {
			log.Printf("Error creating reel record: %v", err)
			return
		}

		payload, err := tasks.Marshal(tasks.GenerateTaskPayload{ReelID: rec.ID})
		if err != nil {
			log.Printf("Error marshalling reel task: %v", err)
			return
		}
		if err := rdb.LPush(ctx, tasks.QueueReelGenerate, payload).Err(); err != nil {
			log.Printf("Error pushing reel task to queue: %v", err)
			return
		}

		if err := reddit.AppendProcessedID(cfg.ProcessedIDsFile, best.ID); err != nil {
			log.Printf("Error recording processed id %s: %v", best.ID, err)
		}
		log.Printf("Queued reel %s for post %s from r/%s", rec.ReelID, best.ID, best.Subreddit)
	})
	if err != nil {
		log.Fatalf("Error scheduling reel job: %v", err)
	}

	// Daily image post through the legacy pipeline.
	_, err = c.AddFunc(cfg.ScheduleSpec, func() {
		payload, err := tasks.Marshal(tasks.ImagePostTaskPayload{})
		if err != nil {
			log.Printf("Error marshalling image post task: %v", err)
			return
		}
		if err := rdb.LPush(ctx, tasks.QueueImagePost, payload).Err(); err != nil {
			log.Printf("Error pushing image post task to queue: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Error scheduling image post job: %v", err)
	}

	c.Start()
	defer c.Stop()

	log.Printf("Scheduler started with spec %q", cfg.ScheduleSpec)
	// Keep the main thread alive
	select {}
}

func newReelID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
