package reddit

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/vartanbeno/go-reddit/v2/reddit"
)

func TestSelectBestPicksHighestScore(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Score: 100},
		{ID: "b", Score: 500},
		{ID: "c", Score: 250},
	}
	best := SelectBest(candidates, nil, false)
	if best == nil || best.ID != "b" {
		t.Fatalf("expected candidate b, got %+v", best)
	}
}

func TestSelectBestSkipsStickied(t *testing.T) {
	candidates := []Candidate{
		{ID: "pinned", Score: 9999, Stickied: true},
		{ID: "normal", Score: 10},
	}
	best := SelectBest(candidates, nil, false)
	if best == nil || best.ID != "normal" {
		t.Fatalf("stickied post selected: %+v", best)
	}
}

func TestSelectBestSkipsProcessed(t *testing.T) {
	candidates := []Candidate{
		{ID: "seen", Score: 500},
		{ID: "new", Score: 100},
	}
	best := SelectBest(candidates, map[string]bool{"seen": true}, false)
	if best == nil || best.ID != "new" {
		t.Fatalf("already processed post selected: %+v", best)
	}
}

func TestSelectBestNSFWFilter(t *testing.T) {
	candidates := []Candidate{
		{ID: "nsfw", Score: 500, NSFW: true},
		{ID: "sfw", Score: 100},
	}
	if best := SelectBest(candidates, nil, false); best == nil || best.ID != "sfw" {
		t.Fatalf("NSFW post selected with filter on: %+v", best)
	}
	if best := SelectBest(candidates, nil, true); best == nil || best.ID != "nsfw" {
		t.Fatalf("NSFW post skipped with filter off: %+v", best)
	}
}

func TestSelectBestNothingQualifies(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Score: 1, Stickied: true},
		{ID: "b", Score: 2, NSFW: true},
	}
	if best := SelectBest(candidates, nil, false); best != nil {
		t.Fatalf("expected nil, got %+v", best)
	}
	if best := SelectBest(nil, nil, true); best != nil {
		t.Fatalf("expected nil for no candidates, got %+v", best)
	}
}

func TestAbsolutePermalink(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/r/pics/comments/abc123/title/", "https://www.reddit.com/r/pics/comments/abc123/title/"},
		{"https://www.reddit.com/r/pics/comments/abc123/", "https://www.reddit.com/r/pics/comments/abc123/"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := absolutePermalink(tt.in); got != tt.want {
			t.Errorf("absolutePermalink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://i.redd.it/abcd1234.jpg", true},
		{"https://i.imgur.com/xyz.png", true},
		{"https://example.com/photo.jpeg", true},
		{"https://i.redd.it/abcd1234.gif", false},
		{"https://i.imgur.com/xyz.gifv", false},
		{"https://en.wikipedia.org/wiki/Article", false},
		{"https://www.reddit.com/r/pics/comments/abc/title/", false},
	}
	for _, tt := range tests {
		if got := IsImageURL(tt.url); got != tt.want {
			t.Errorf("IsImageURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestFilterImages(t *testing.T) {
	candidates := []Candidate{
		{ID: "article", URL: "https://example.com/story"},
		{ID: "pic", URL: "https://i.redd.it/abc.jpg"},
		{ID: "gif", URL: "https://i.redd.it/abc.gif"},
	}
	got := FilterImages(candidates)
	if len(got) != 1 || got[0].ID != "pic" {
		t.Fatalf("expected only the image candidate, got %+v", got)
	}
}

// fakeTopPoster scripts per-subreddit results for ScanTop.
type fakeTopPoster struct {
	posts map[string][]*reddit.Post
	errs  map[string]error
}

func (f fakeTopPoster) TopPosts(ctx context.Context, subreddit string, opts *reddit.ListPostOptions) ([]*reddit.Post, *reddit.Response, error) {
	if err := f.errs[subreddit]; err != nil {
		return nil, nil, err
	}
	return f.posts[subreddit], nil, nil
}

func TestScanTopAllSubredditsFailed(t *testing.T) {
	c := &Client{top: fakeTopPoster{errs: map[string]error{
		"pics": errors.New("rate limited"),
		"aww":  errors.New("rate limited"),
	}}}
	if _, err := c.ScanTop(context.Background(), []string{"pics", "aww"}, 10); err == nil {
		t.Fatal("expected an error when every scan failed")
	}
}

func TestScanTopPartialFailure(t *testing.T) {
	c := &Client{top: fakeTopPoster{
		posts: map[string][]*reddit.Post{
			"aww": {{ID: "p1", SubredditName: "aww", Title: "cat", Permalink: "/r/aww/comments/p1/cat/"}},
		},
		errs: map[string]error{"pics": errors.New("rate limited")},
	}}
	got, err := c.ScanTop(context.Background(), []string{"pics", "aww"}, 10)
	if err != nil {
		t.Fatalf("partial failure should not error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected the surviving subreddit's candidate, got %+v", got)
	}
	if got[0].Permalink != "https://www.reddit.com/r/aww/comments/p1/cat/" {
		t.Errorf("permalink not absolutized: %q", got[0].Permalink)
	}
}
