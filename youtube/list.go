package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Caption listing works by scraping the watch page and pulling the caption
// track list out of the embedded ytInitialPlayerResponse JSON. This needs no
// API key and works from any IP.

const playerResponseMarker = "ytInitialPlayerResponse = "

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []playerCaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type playerCaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

// ListTracks returns the caption tracks available for a video.
// Failure taxonomy:
//   - transport or parse failure        → ErrUnavailable (cause preserved)
//   - playability status not OK         → ErrVideoUnavailable
//   - video plays but has no captions   → ErrNoCaptions
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.WatchBase+videoID, nil)
	if err != nil {
		return nil, unavailable("build request", err)
	}
	req.Header.Set("User-Agent", desktopUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, unavailable("fetch watch page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrUnavailable, "watch page status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, unavailable("read watch page", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, errors.Wrap(ErrUnavailable, "ytInitialPlayerResponse not found")
	}

	raw := extractJSON(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, errors.Wrap(ErrUnavailable, "malformed ytInitialPlayerResponse")
	}

	var pr playerResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, unavailable("decode player response", err)
	}

	if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Status != "" && pr.PlayabilityStatus.Status != "OK" {
		reason := pr.PlayabilityStatus.Reason
		if reason == "" {
			reason = pr.PlayabilityStatus.Status
		}
		return nil, errors.Wrap(ErrVideoUnavailable, reason)
	}

	if pr.Captions == nil {
		return nil, ErrNoCaptions
	}
	rawTracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(rawTracks) == 0 {
		return nil, ErrNoCaptions
	}

	tracks := make([]CaptionTrack, 0, len(rawTracks))
	for _, t := range rawTracks {
		tracks = append(tracks, CaptionTrack{
			LanguageCode:  t.LanguageCode,
			Name:          t.Name.SimpleText,
			BaseURL:       t.BaseURL,
			AutoGenerated: t.Kind == "asr",
		})
	}

	logrus.WithFields(logrus.Fields{
		"video_id":  videoID,
		"languages": Languages(tracks),
	}).Info("Caption tracks listed")

	return tracks, nil
}

// Languages returns the language codes of tracks in listing order.
func Languages(tracks []CaptionTrack) []string {
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		langs = append(langs, t.LanguageCode)
	}
	return langs
}

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// extractJSON returns the complete JSON object starting at b[0] == '{',
// tracking brace depth and string escapes.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	esc := false
	for i, c := range b {
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
