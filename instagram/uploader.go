package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sumerpunjabi/reelbot-api/config"
)

const (
	defaultGraphURL   = "https://graph.facebook.com/v19.0"
	defaultRuploadURL = "https://rupload.facebook.com/ig-api-upload"
)

// UploadError reports a failed Graph API exchange.
type UploadError struct {
	Step string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("instagram %s failed: %v", e.Step, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Uploader publishes reels through the resumable upload protocol and
// images through the legacy two-step publish.
type Uploader struct {
	AccessToken string
	UserID      string
	HTTP        *http.Client
	GraphURL    string
	RuploadURL  string
	Poll        Poller
}

// NewUploader validates the Instagram settings and returns an Uploader
// with production endpoints and polling cadence.
func NewUploader(cfg *config.Config) (*Uploader, error) {
	if err := cfg.ValidateInstagram(); err != nil {
		return nil, err
	}
	return &Uploader{
		AccessToken: cfg.InstagramAccessToken,
		UserID:      cfg.InstagramUserID,
		HTTP:        &http.Client{Timeout: 5 * time.Minute},
		GraphURL:    defaultGraphURL,
		RuploadURL:  defaultRuploadURL,
		Poll:        Poller{MaxAttempts: 30, Interval: 10 * time.Second},
	}, nil
}

// UploadReel runs the resumable protocol end to end: create a REELS
// container, push the video bytes, wait for processing, publish, then
// wait for the published status. Returns the media id.
func (u *Uploader) UploadReel(ctx context.Context, videoPath, caption string) (string, error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		return "", &UploadError{Step: "stat video", Err: err}
	}

	containerID, err := u.createReelContainer(ctx, caption)
	if err != nil {
		return "", err
	}
	log.Printf("Instagram container %s created", containerID)

	if err := u.pushVideo(ctx, containerID, videoPath, info.Size()); err != nil {
		return "", err
	}

	if err := u.waitForStatus(ctx, containerID, "FINISHED"); err != nil {
		return "", err
	}

	mediaID, err := u.publish(ctx, containerID)
	if err != nil {
		return "", err
	}

	if err := u.waitForStatus(ctx, mediaID, "PUBLISHED"); err != nil {
		// Publishing already succeeded; a stuck status poll is only
		// worth a warning.
		log.Printf("Instagram media %s: status poll after publish: %v", mediaID, err)
	}
	return mediaID, nil
}

// PublishImage posts a single image by URL with the two-step container
// flow used for feed photos. Returns the media id.
func (u *Uploader) PublishImage(ctx context.Context, imageURL, caption string) (string, error) {
	form := url.Values{}
	form.Set("image_url", imageURL)
	form.Set("caption", caption)
	form.Set("access_token", u.AccessToken)

	var created struct {
		ID string `json:"id"`
	}
	if err := u.postForm(ctx, fmt.Sprintf("%s/%s/media", u.GraphURL, u.UserID), form, &created); err != nil {
		return "", &UploadError{Step: "create image container", Err: err}
	}
	if created.ID == "" {
		return "", &UploadError{Step: "create image container", Err: errors.New("no container id in response")}
	}
	return u.publish(ctx, created.ID)
}

func (u *Uploader) createReelContainer(ctx context.Context, caption string) (string, error) {
	form := url.Values{}
	form.Set("media_type", "REELS")
	form.Set("upload_type", "resumable")
	form.Set("caption", caption)
	form.Set("access_token", u.AccessToken)

	var created struct {
		ID string `json:"id"`
	}
	if err := u.postForm(ctx, fmt.Sprintf("%s/%s/media", u.GraphURL, u.UserID), form, &created); err != nil {
		return "", &UploadError{Step: "create container", Err: err}
	}
	if created.ID == "" {
		return "", &UploadError{Step: "create container", Err: errors.New("no container id in response")}
	}
	return created.ID, nil
}

func (u *Uploader) pushVideo(ctx context.Context, containerID, videoPath string, size int64) error {
	f, err := os.Open(videoPath)
	if err != nil {
		return &UploadError{Step: "upload video", Err: err}
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s", u.RuploadURL, containerID), f)
	if err != nil {
		return &UploadError{Step: "upload video", Err: err}
	}
	req.ContentLength = size
	req.Header.Set("Authorization", "OAuth "+u.AccessToken)
	req.Header.Set("offset", "0")
	req.Header.Set("file_size", fmt.Sprintf("%d", size))

	resp, err := u.HTTP.Do(req)
	if err != nil {
		return &UploadError{Step: "upload video", Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &UploadError{Step: "upload video",
			Err: errors.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}
	return nil
}

// waitForStatus polls the container or media node until status_code
// reaches want. ERROR and EXPIRED are terminal.
func (u *Uploader) waitForStatus(ctx context.Context, nodeID, want string) error {
	check := func() (bool, error) {
		q := url.Values{}
		q.Set("fields", "status,status_code")
		q.Set("access_token", u.AccessToken)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/%s?%s", u.GraphURL, nodeID, q.Encode()), nil)
		if err != nil {
			return false, &UploadError{Step: "poll status", Err: err}
		}
		resp, err := u.HTTP.Do(req)
		if err != nil {
			return false, &UploadError{Step: "poll status", Err: err}
		}
		defer resp.Body.Close()

		var status struct {
			Status     string `json:"status"`
			StatusCode string `json:"status_code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return false, &UploadError{Step: "poll status", Err: err}
		}
		switch status.StatusCode {
		case want:
			return true, nil
		case "ERROR", "EXPIRED":
			return false, &UploadError{Step: "poll status",
				Err: errors.Errorf("node %s entered %s: %s", nodeID, status.StatusCode, status.Status)}
		}
		return false, nil
	}
	if err := u.Poll.Do(ctx, check); err != nil {
		if _, ok := err.(*UploadError); ok {
			return err
		}
		return &UploadError{Step: "poll status", Err: err}
	}
	return nil
}

func (u *Uploader) publish(ctx context.Context, containerID string) (string, error) {
	form := url.Values{}
	form.Set("creation_id", containerID)
	form.Set("access_token", u.AccessToken)

	var published struct {
		ID string `json:"id"`
	}
	if err := u.postForm(ctx, fmt.Sprintf("%s/%s/media_publish", u.GraphURL, u.UserID), form, &published); err != nil {
		return "", &UploadError{Step: "publish", Err: err}
	}
	if published.ID == "" {
		return "", &UploadError{Step: "publish", Err: errors.New("no media id in response")}
	}
	return published.ID, nil
}

func (u *Uploader) postForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}
