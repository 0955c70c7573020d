package db

import (
	"context"
	"os"
	"testing"
)

const testDBPath = "/tmp/yt-summary-db-test.db"

func TestMain(m *testing.M) {
	if err := InitializeDB(testDBPath); err != nil {
		panic("Failed to initialize database: " + err.Error())
	}

	code := m.Run()

	DB.Close()
	os.Remove(testDBPath)
	os.Exit(code)
}

func TestTranscriptRoundTrip(t *testing.T) {
	ctx := context.Background()

	text, language, err := GetTranscript(ctx, "AAAAAAAAAAA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" || language != "" {
		t.Errorf("expected empty result for unknown video, got (%q, %q)", text, language)
	}

	if err := SetTranscript(ctx, "AAAAAAAAAAA", "en", `[{"start":0,"text":"Hello."}]`); err != nil {
		t.Fatalf("SetTranscript failed: %v", err)
	}

	text, language, err = GetTranscript(ctx, "AAAAAAAAAAA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if language != "en" {
		t.Errorf("expected language en, got %q", language)
	}
	if text != `[{"start":0,"text":"Hello."}]` {
		t.Errorf("unexpected text: %q", text)
	}

	// Upsert replaces, not duplicates.
	if err := SetTranscript(ctx, "AAAAAAAAAAA", "ko", "updated"); err != nil {
		t.Fatalf("SetTranscript upsert failed: %v", err)
	}
	text, language, _ = GetTranscript(ctx, "AAAAAAAAAAA")
	if language != "ko" || text != "updated" {
		t.Errorf("upsert not applied: (%q, %q)", text, language)
	}
}

func TestSummaryPerModeIsolation(t *testing.T) {
	ctx := context.Background()

	if err := SetSummary(ctx, "BBBBBBBBBBB", "key_points", "m1", "key points summary"); err != nil {
		t.Fatalf("SetSummary failed: %v", err)
	}
	if err := SetSummary(ctx, "BBBBBBBBBBB", "timeline", "m1", "timeline summary"); err != nil {
		t.Fatalf("SetSummary failed: %v", err)
	}

	// Updating one mode leaves the other untouched.
	if err := SetSummary(ctx, "BBBBBBBBBBB", "key_points", "m1", "revised"); err != nil {
		t.Fatalf("SetSummary upsert failed: %v", err)
	}

	got, err := GetSummary(ctx, "BBBBBBBBBBB", "timeline", "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "timeline summary" {
		t.Errorf("timeline summary clobbered: %q", got)
	}

	got, _ = GetSummary(ctx, "BBBBBBBBBBB", "key_points", "m1")
	if got != "revised" {
		t.Errorf("expected revised key_points summary, got %q", got)
	}

	// A different model name is a different cache row.
	got, _ = GetSummary(ctx, "BBBBBBBBBBB", "key_points", "m2")
	if got != "" {
		t.Errorf("expected empty for other model, got %q", got)
	}
}

func TestDeleteSummaries(t *testing.T) {
	ctx := context.Background()

	if err := SetSummary(ctx, "CCCCCCCCCCC", "keywords", "m1", "to be deleted"); err != nil {
		t.Fatalf("SetSummary failed: %v", err)
	}
	if err := DeleteSummaries(ctx, "CCCCCCCCCCC"); err != nil {
		t.Fatalf("DeleteSummaries failed: %v", err)
	}

	got, err := GetSummary(ctx, "CCCCCCCCCCC", "keywords", "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected summary deleted, got %q", got)
	}
}
