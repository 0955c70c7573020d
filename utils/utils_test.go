package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{5.9, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{150, "02:30"},
		{3599, "59:59"},
		{3725, "62:05"}, // minutes roll past 59
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestHandleError(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleError(rr, "something broke", 500)

	if rr.Code != 500 {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "something broke" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}
