package reddit

import "testing"

func TestParsePostID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://www.reddit.com/r/Showerthoughts/comments/1abc23/some_title/", want: "1abc23"},
		{url: "https://old.reddit.com/r/LifeProTips/comments/xyz789/", want: "xyz789"},
		{url: "https://reddit.com/comments/q1w2e3", want: "q1w2e3"},
		{url: "https://www.reddit.com/r/Showerthoughts/", wantErr: true},
		{url: "not a url", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePostID(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePostID(%q) accepted", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePostID(%q): %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePostID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
