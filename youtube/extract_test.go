package youtube

import (
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url    string
		wantID string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=abc_DEF-123", "abc_DEF-123", true},
		// Host is irrelevant; the pattern is what matters.
		{"https://example.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/", "", false},
		{"not a url at all", "", false},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		id, ok := ExtractVideoID(tt.url)
		if ok != tt.wantOK || id != tt.wantID {
			t.Errorf("ExtractVideoID(%q) = (%q, %v), want (%q, %v)", tt.url, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestExtractVideoIDLeftmostWins(t *testing.T) {
	// Two candidates: the leftmost match is returned.
	url := "https://example.com/AAAAAAAAAAA/watch?v=BBBBBBBBBBB"
	id, ok := ExtractVideoID(url)
	if !ok {
		t.Fatal("expected a match")
	}
	if id != "AAAAAAAAAAA" {
		t.Errorf("expected leftmost match AAAAAAAAAAA, got %q", id)
	}
}
