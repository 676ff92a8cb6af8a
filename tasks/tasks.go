package tasks

import "encoding/json"

// ---
// QUEUE DEFINITIONS
// ---
// We define all queue names as constants here.
const (
	// QueueReelGenerate runs the full reel pipeline for one reddit post.
	QueueReelGenerate = "q_reel_generate"

	// QueueReelPublish uploads a finished reel video to Instagram.
	QueueReelPublish = "q_reel_publish"

	// QueueImagePost runs the legacy single-image pipeline.
	QueueImagePost = "q_image_post"
)

// ---
// TASK PAYLOADS
// ---
// These are the structs that will be JSON-marshalled and sent to Redis.

// GenerateTaskPayload is the payload for QueueReelGenerate.
type GenerateTaskPayload struct {
	ReelID uint `json:"reel_id"`
}

// PublishTaskPayload is the payload for QueueReelPublish.
type PublishTaskPayload struct {
	ReelID uint `json:"reel_id"`
}

// ImagePostTaskPayload is the payload for QueueImagePost. Subreddit is
// optional; empty means the configured default list.
type ImagePostTaskPayload struct {
	Subreddit string `json:"subreddit,omitempty"`
}

// ---
// HELPER FUNCTIONS
// ---

// Marshal creates a JSON payload for a task.
func Marshal(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
