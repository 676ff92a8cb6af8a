package worker

import (
	"context"
	"encoding/json"
	"log"

	"github.com/sumerpunjabi/reelbot-api/models"
	"github.com/sumerpunjabi/reelbot-api/processing"
	"github.com/sumerpunjabi/reelbot-api/reddit"
	"github.com/sumerpunjabi/reelbot-api/tasks"
)

// HandleReelGenerate processes tasks from QueueReelGenerate: it runs
// the full pipeline for the stored reddit URL and chains the finished
// reel to the publish queue.
func (p *Processor) HandleReelGenerate(ctx context.Context, payload string) error {
	var task tasks.GenerateTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return err
	}

	log.Printf("Processing reel %d", task.ReelID)
	var rec models.Reel
	if err := p.DB.First(&rec, task.ReelID).Error; err != nil {
		return err
	}

	p.DB.Model(&rec).Update("status", "processing_generate")

	result, err := p.Gen.Generate(ctx, rec.RedditURL, rec.ReelID)
	if err != nil {
		p.DB.Model(&rec).Updates(map[string]interface{}{
			"status": "failed_generate",
			"error":  err.Error(),
		})
		return err
	}

	caption, err := processing.GenerateCaption(ctx, p.Cfg.OpenAIAPIKey, result.Title)
	if err != nil {
		log.Printf("Caption generation for reel %d failed, using title: %v", rec.ID, err)
		caption = result.Title
	}

	if err := p.DB.Model(&rec).Updates(map[string]interface{}{
		"output_path": result.OutputPath,
		"caption":     caption,
	}).Error; err != nil {
		return err
	}
	log.Printf("Generated reel %d at %s (%.1fs)", rec.ID, result.OutputPath, result.Duration)

	nextTask := tasks.PublishTaskPayload{ReelID: rec.ID}
	if err := p.Enqueue(ctx, tasks.QueueReelPublish, nextTask); err != nil {
		p.DB.Model(&rec).Update("status", "failed_queue_publish")
		return err
	}

	log.Printf("Queued reel %d for publish", rec.ID)
	p.DB.Model(&rec).Update("status", "pending_publish")
	return nil
}

// HandleReelPublish processes tasks from QueueReelPublish: it pushes
// the finished video through the resumable upload and records the
// resulting media id.
func (p *Processor) HandleReelPublish(ctx context.Context, payload string) error {
	var task tasks.PublishTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return err
	}

	log.Printf("Publishing reel %d", task.ReelID)
	var rec models.Reel
	if err := p.DB.First(&rec, task.ReelID).Error; err != nil {
		return err
	}

	if rec.OutputPath == "" {
		p.DB.Model(&rec).Update("status", "failed_publish_no_output")
		return nil
	}

	p.DB.Model(&rec).Update("status", "processing_publish")

	mediaID, err := p.Uploader.UploadReel(ctx, rec.OutputPath, rec.Caption)
	if err != nil {
		p.DB.Model(&rec).Updates(map[string]interface{}{
			"status": "failed_publish",
			"error":  err.Error(),
		})
		return err
	}

	if err := p.DB.Model(&rec).Updates(map[string]interface{}{
		"media_id": mediaID,
		"status":   "complete",
	}).Error; err != nil {
		return err
	}
	log.Printf("Published reel %d as media %s", rec.ID, mediaID)
	return nil
}

// HandleImagePost processes tasks from QueueImagePost: the legacy
// pipeline that posts a top image post as a photo instead of a reel.
func (p *Processor) HandleImagePost(ctx context.Context, payload string) error {
	var task tasks.ImagePostTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return err
	}

	subreddits := p.Cfg.Subreddits
	if task.Subreddit != "" {
		subreddits = []string{task.Subreddit}
	}

	candidates, err := p.Reddit.ScanTop(ctx, subreddits, 25)
	if err != nil {
		return err
	}
	candidates = reddit.FilterImages(candidates)

	// Posted ids live in the posts table for this pipeline.
	processed := map[string]bool{}
	for _, c := range candidates {
		posted, err := models.AlreadyPosted(p.DB, c.ID)
		if err != nil {
			return err
		}
		if posted {
			processed[c.ID] = true
		}
	}

	best := reddit.SelectBest(candidates, processed, p.Cfg.AllowNSFW)
	if best == nil {
		log.Printf("No postable image candidate found in %v", subreddits)
		return nil
	}

	mediaID, err := p.Uploader.PublishImage(ctx, best.URL, best.Title)
	if err != nil {
		return err
	}
	log.Printf("Published image post %s from r/%s as media %s", best.ID, best.Subreddit, mediaID)

	return p.DB.Create(&models.Post{
		ID:          best.ID,
		Subreddit:   best.Subreddit,
		Title:       best.Title,
		URL:         best.URL,
		Score:       best.Score,
		UpvoteRatio: float64(best.UpvoteRatio),
	}).Error
}
