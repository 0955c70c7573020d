package youtube

import (
	"errors"
	"testing"
)

func TestSelectTrack(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		priority  []string
		wantLang  string
		wantErr   error
	}{
		{"both available ko first", []string{"ko", "en"}, []string{"ko", "en"}, "ko", nil},
		{"both available en first", []string{"ko", "en"}, []string{"en", "ko"}, "en", nil},
		{"only second priority", []string{"en"}, []string{"ko", "en"}, "en", nil},
		{"none compatible", []string{"fr"}, []string{"ko", "en"}, "", ErrNoCompatibleTrack},
		{"empty set", nil, []string{"ko", "en"}, "", ErrNoCompatibleTrack},
		{"exact match only", []string{"en-US"}, []string{"en"}, "", ErrNoCompatibleTrack},
	}

	for _, tt := range tests {
		tracks := make([]CaptionTrack, 0, len(tt.available))
		for _, lang := range tt.available {
			tracks = append(tracks, CaptionTrack{LanguageCode: lang})
		}

		track, err := SelectTrack(tracks, tt.priority)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if track.LanguageCode != tt.wantLang {
			t.Errorf("%s: expected language %q, got %q", tt.name, tt.wantLang, track.LanguageCode)
		}
	}
}
